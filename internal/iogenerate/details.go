package iogenerate

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"golang.org/x/sync/errgroup"

	"github.com/armadaops/armada/pkg/inventory"
)

// fetchDetails enriches every account record with its tags, parent OU
// chain and enabled regions. Accounts are processed concurrently by
// cfg.JobsNumber workers; any worker failure cancels the rest.
func (g *Generator) fetchDetails(
	ctx context.Context,
	accounts map[string]inventory.Account,
	ouNames map[string]string,
) error {
	jobsNum := g.cfg.JobsNumber
	if jobsNum <= 0 {
		jobsNum = 20
	}

	var bar progressBar = noProgress{}
	if g.showProgress {
		bar = newProgressBar(len(accounts), "accounts")
	}
	defer bar.Finish()

	g2, gCtx := errgroup.WithContext(ctx)
	g2.SetLimit(jobsNum)

	// Each worker updates its own account; the map itself is only
	// written after all workers are done.
	var mu sync.Mutex
	for id := range accounts {
		g2.Go(func() error {
			tags, parents, err := g.fetchTagsAndParents(gCtx, id, ouNames)
			if err != nil {
				return err
			}

			regions, err := g.fetchRegions(gCtx, id)
			if err != nil {
				return err
			}

			mu.Lock()
			record := accounts[id]
			record.Tags = tags
			record.Parents = parents
			record.Regions = regions
			accounts[id] = record
			mu.Unlock()

			bar.Increment()
			return nil
		})
	}

	return g2.Wait()
}

// fetchTagsAndParents collects the tags and the parent OU chain of one
// account. Parent names are resolved through the OU map; the chain is
// completed up to the organization root when the API does not return
// it.
func (g *Generator) fetchTagsAndParents(
	ctx context.Context,
	accountID string,
	ouNames map[string]string,
) (map[string]string, []inventory.OrgUnit, error) {
	tags := make(map[string]string)

	var nextToken *string
	for {
		out, err := g.org.ListTagsForResource(ctx,
			&organizations.ListTagsForResourceInput{
				ResourceId: aws.String(accountID),
				NextToken:  nextToken,
			})
		if err != nil {
			return nil, nil, AccountDetailsError(accountID, err)
		}
		for _, tag := range out.Tags {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	var parents []inventory.OrgUnit
	hasRoot := false
	nextToken = nil
	for {
		out, err := g.org.ListParents(ctx, &organizations.ListParentsInput{
			ChildId:   aws.String(accountID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, nil, AccountDetailsError(accountID, err)
		}

		for _, parent := range out.Parents {
			if parent.Type == orgtypes.ParentTypeRoot {
				hasRoot = true
			}
			id := aws.ToString(parent.Id)
			parents = append(parents, inventory.OrgUnit{
				ID:   id,
				Type: string(parent.Type),
				Name: ouNames[id],
			})
		}

		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	if !hasRoot {
		parents = append(parents, inventory.OrgUnit{
			ID:   g.cfg.Generator.OrgRootID,
			Type: string(orgtypes.ParentTypeRoot),
			Name: "ROOT",
		})
	}

	return tags, parents, nil
}

// fetchRegions lists the enabled regions of one account through an
// assumed role there.
func (g *Generator) fetchRegions(ctx context.Context, accountID string) ([]string, error) {
	client, err := g.regions(ctx, accountID)
	if err != nil {
		return nil, DescribeRegionsError(accountID, err)
	}

	out, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, DescribeRegionsError(accountID, err)
	}

	regions := make([]string, 0, len(out.Regions))
	for _, region := range out.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	sort.Strings(regions)

	return regions, nil
}
