package iogenerate

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"

	"github.com/armadaops/armada/pkg/inventory"
)

// listAccounts pages through the Organizations ListAccounts API and
// returns an account ID to record map.
func (g *Generator) listAccounts(ctx context.Context) (map[string]inventory.Account, error) {
	accounts := make(map[string]inventory.Account)

	var nextToken *string
	for {
		out, err := g.org.ListAccounts(ctx, &organizations.ListAccountsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, ListAccountsError(err)
		}

		for _, acct := range out.Accounts {
			id := aws.ToString(acct.Id)
			record := inventory.Account{
				ID:           id,
				Arn:          aws.ToString(acct.Arn),
				Email:        aws.ToString(acct.Email),
				Name:         aws.ToString(acct.Name),
				Status:       string(acct.Status),
				JoinedMethod: string(acct.JoinedMethod),
			}
			if acct.JoinedTimestamp != nil {
				record.JoinedTimestamp = acct.JoinedTimestamp.
					UTC().Format(time.RFC3339)
			}
			accounts[id] = record
		}

		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	return accounts, nil
}

// listOrgUnits walks the OU tree under parentID depth-first and
// returns a map of OU ID to OU display name. The organization root
// itself maps to "ROOT".
func (g *Generator) listOrgUnits(ctx context.Context, parentID string) (map[string]string, error) {
	ouNames := map[string]string{
		g.cfg.Generator.OrgRootID: "ROOT",
	}
	if err := g.walkOrgUnits(ctx, parentID, ouNames); err != nil {
		return nil, err
	}
	return ouNames, nil
}

func (g *Generator) walkOrgUnits(
	ctx context.Context,
	parentID string,
	ouNames map[string]string,
) error {
	var nextToken *string
	for {
		out, err := g.org.ListOrganizationalUnitsForParent(ctx,
			&organizations.ListOrganizationalUnitsForParentInput{
				ParentId:  aws.String(parentID),
				NextToken: nextToken,
			})
		if err != nil {
			return ListOUsError(parentID, err)
		}

		for _, ou := range out.OrganizationalUnits {
			id := aws.ToString(ou.Id)
			ouNames[id] = aws.ToString(ou.Name)
			if err := g.walkOrgUnits(ctx, id, ouNames); err != nil {
				return err
			}
		}

		nextToken = out.NextToken
		if nextToken == nil {
			return nil
		}
	}
}
