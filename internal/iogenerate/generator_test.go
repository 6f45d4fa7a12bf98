package iogenerate_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaops/armada/internal/iogenerate"
	"github.com/armadaops/armada/pkg/config"
	"github.com/armadaops/armada/pkg/errcode"
	"github.com/armadaops/armada/pkg/inventory"
)

// fakeOrg serves a small fixed organization:
//
//	r-abcd (root)
//	├── ou-1234-aaaa "Prod"
//	│   └── account 000000000001
//	└── account 000000000002 (directly under the root)
//
// ListAccounts is paginated to exercise the NextToken loop.
type fakeOrg struct {
	listAccountsErr error
	listParentsErr  error
}

func (f *fakeOrg) ListAccounts(
	_ context.Context,
	params *organizations.ListAccountsInput,
	_ ...func(*organizations.Options),
) (*organizations.ListAccountsOutput, error) {
	if f.listAccountsErr != nil {
		return nil, f.listAccountsErr
	}

	if params.NextToken == nil {
		return &organizations.ListAccountsOutput{
			Accounts: []orgtypes.Account{
				{
					Id:     aws.String("000000000001"),
					Arn:    aws.String("arn:aws:organizations::000000000020:account/o-abcdefghij/000000000001"),
					Email:  aws.String("account1@company.com"),
					Name:   aws.String("Account 1"),
					Status: orgtypes.AccountStatusActive,
				},
			},
			NextToken: aws.String("page-2"),
		}, nil
	}

	return &organizations.ListAccountsOutput{
		Accounts: []orgtypes.Account{
			{
				Id:     aws.String("000000000002"),
				Arn:    aws.String("arn:aws:organizations::000000000020:account/o-abcdefghij/000000000002"),
				Email:  aws.String("account2@company.com"),
				Name:   aws.String("Account 2"),
				Status: orgtypes.AccountStatusActive,
			},
		},
	}, nil
}

func (f *fakeOrg) ListOrganizationalUnitsForParent(
	_ context.Context,
	params *organizations.ListOrganizationalUnitsForParentInput,
	_ ...func(*organizations.Options),
) (*organizations.ListOrganizationalUnitsForParentOutput, error) {
	var ous []orgtypes.OrganizationalUnit
	if aws.ToString(params.ParentId) == "r-abcd" {
		ous = []orgtypes.OrganizationalUnit{
			{Id: aws.String("ou-1234-aaaa"), Name: aws.String("Prod")},
		}
	}
	return &organizations.ListOrganizationalUnitsForParentOutput{
		OrganizationalUnits: ous,
	}, nil
}

func (f *fakeOrg) ListTagsForResource(
	_ context.Context,
	params *organizations.ListTagsForResourceInput,
	_ ...func(*organizations.Options),
) (*organizations.ListTagsForResourceOutput, error) {
	var tags []orgtypes.Tag
	if aws.ToString(params.ResourceId) == "000000000001" {
		tags = []orgtypes.Tag{
			{Key: aws.String("Environment"), Value: aws.String("prod")},
		}
	}
	return &organizations.ListTagsForResourceOutput{Tags: tags}, nil
}

func (f *fakeOrg) ListParents(
	_ context.Context,
	params *organizations.ListParentsInput,
	_ ...func(*organizations.Options),
) (*organizations.ListParentsOutput, error) {
	if f.listParentsErr != nil {
		return nil, f.listParentsErr
	}

	var parents []orgtypes.Parent
	switch aws.ToString(params.ChildId) {
	case "000000000001":
		parents = []orgtypes.Parent{
			{Id: aws.String("ou-1234-aaaa"), Type: orgtypes.ParentTypeOrganizationalUnit},
		}
	case "000000000002":
		parents = []orgtypes.Parent{
			{Id: aws.String("r-abcd"), Type: orgtypes.ParentTypeRoot},
		}
	}
	return &organizations.ListParentsOutput{Parents: parents}, nil
}

type fakeRegions struct{}

func (f fakeRegions) DescribeRegions(
	_ context.Context,
	_ *ec2.DescribeRegionsInput,
	_ ...func(*ec2.Options),
) (*ec2.DescribeRegionsOutput, error) {
	return &ec2.DescribeRegionsOutput{
		Regions: []ec2types.Region{
			{RegionName: aws.String("us-west-2")},
			{RegionName: aws.String("us-east-1")},
		},
	}, nil
}

type fakePutter struct {
	puts   int
	bucket string
	key    string
	body   []byte
}

func (f *fakePutter) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	f.puts++
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)

	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body

	return &s3.PutObjectOutput{}, nil
}

func generatorCfg() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptGeneratorOrgAccountID("000000000020"),
		config.OptGeneratorOrgAccountRole("inventory-reader"),
		config.OptGeneratorOrgRootID("r-abcd"),
		config.OptGeneratorDescribeRegionsRole("region-reader"),
		config.OptGeneratorInventoryBucket("org-inventory"),
		config.OptGeneratorInventoryBucketRegion("us-east-1"),
		config.OptJobsNumber(2),
	})
	return cfg
}

func regionsFactory(_ context.Context, _ string) (iogenerate.RegionsAPI, error) {
	return fakeRegions{}, nil
}

func TestGenerateDryRun(t *testing.T) {
	putter := &fakePutter{}
	gen := iogenerate.NewWithClients(generatorCfg(), &fakeOrg{}, putter, regionsFactory)

	snap, err := gen.Generate(context.Background(), false)
	require.NoError(t, err)

	assert.Zero(t, putter.puts, "dry run must not upload")
	assert.NotEmpty(t, snap.Generated)
	require.Len(t, snap.Accounts, 2)

	acct1 := snap.Accounts["000000000001"]
	assert.Equal(t, "Account 1", acct1.Name)
	assert.Equal(t, "ACTIVE", acct1.Status)
	assert.Equal(t, map[string]string{"Environment": "prod"}, acct1.Tags)
	assert.Equal(t, []string{"us-east-1", "us-west-2"}, acct1.Regions,
		"regions are sorted")

	// The OU parent chain is name-resolved and completed up to the
	// organization root.
	require.Len(t, acct1.Parents, 2)
	assert.Equal(t, "ou-1234-aaaa", acct1.Parents[0].ID)
	assert.Equal(t, "Prod", acct1.Parents[0].Name)
	assert.Equal(t, "r-abcd", acct1.Parents[1].ID)
	assert.Equal(t, "ROOT", acct1.Parents[1].Name)

	// An account living directly under the root keeps a single parent.
	acct2 := snap.Accounts["000000000002"]
	require.Len(t, acct2.Parents, 1)
	assert.Equal(t, "r-abcd", acct2.Parents[0].ID)
	assert.Equal(t, "ROOT", acct2.Parents[0].Name)
	assert.Empty(t, acct2.Tags)
}

func TestGenerateCommitUploads(t *testing.T) {
	putter := &fakePutter{}
	gen := iogenerate.NewWithClients(generatorCfg(), &fakeOrg{}, putter, regionsFactory)

	_, err := gen.Generate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, putter.puts)
	assert.Equal(t, "org-inventory", putter.bucket)
	assert.Equal(t, config.DefaultObjectPath, putter.key)

	// The uploaded document round-trips through the snapshot decoder.
	snap, err := inventory.Decode(putter.body)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Generated)
	assert.Len(t, snap.Accounts, 2)
}

func TestGenerateListAccountsFailure(t *testing.T) {
	org := &fakeOrg{listAccountsErr: errors.New("AccessDenied")}
	gen := iogenerate.NewWithClients(generatorCfg(), org, &fakePutter{}, regionsFactory)

	snap, err := gen.Generate(context.Background(), false)
	assert.Nil(t, snap)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.GenListAccountsError, gnErr.Code)
}

func TestGenerateDetailFailureCancels(t *testing.T) {
	org := &fakeOrg{listParentsErr: errors.New("TooManyRequests")}
	putter := &fakePutter{}
	gen := iogenerate.NewWithClients(generatorCfg(), org, putter, regionsFactory)

	snap, err := gen.Generate(context.Background(), true)
	assert.Nil(t, snap)
	assert.Zero(t, putter.puts, "failed generation must not upload")

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.GenAccountDetailsError, gnErr.Code)
}
