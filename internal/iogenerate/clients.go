package iogenerate

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"

	"github.com/armadaops/armada/pkg/config"
)

// OrganizationsAPI is the slice of the AWS Organizations API the
// generator uses. Tests inject fakes; production uses
// *organizations.Client with an assumed role in the management
// account.
type OrganizationsAPI interface {
	ListAccounts(
		ctx context.Context,
		params *organizations.ListAccountsInput,
		optFns ...func(*organizations.Options),
	) (*organizations.ListAccountsOutput, error)

	ListOrganizationalUnitsForParent(
		ctx context.Context,
		params *organizations.ListOrganizationalUnitsForParentInput,
		optFns ...func(*organizations.Options),
	) (*organizations.ListOrganizationalUnitsForParentOutput, error)

	ListTagsForResource(
		ctx context.Context,
		params *organizations.ListTagsForResourceInput,
		optFns ...func(*organizations.Options),
	) (*organizations.ListTagsForResourceOutput, error)

	ListParents(
		ctx context.Context,
		params *organizations.ListParentsInput,
		optFns ...func(*organizations.Options),
	) (*organizations.ListParentsOutput, error)
}

// RegionsAPI lists the enabled regions of one member account.
type RegionsAPI interface {
	DescribeRegions(
		ctx context.Context,
		params *ec2.DescribeRegionsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeRegionsOutput, error)
}

// ObjectPutter uploads the finished inventory object.
type ObjectPutter interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

// RegionsClientFactory returns a RegionsAPI scoped to the given member
// account, normally by assuming the describe-regions role there.
type RegionsClientFactory func(ctx context.Context, accountID string) (RegionsAPI, error)

// sessionName builds a unique STS session name so concurrent runs are
// distinguishable in CloudTrail.
func sessionName() string {
	return "armada-indexer-" + uuid.NewString()[:8]
}

func roleArn(accountID, role string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, role)
}

// newOrgClient builds an Organizations client that assumes the
// configured role in the management account.
func newOrgClient(ctx context.Context, gc config.GeneratorConfig) (OrganizationsAPI, error) {
	base, err := awsconfig.LoadDefaultConfig(
		ctx, awsconfig.WithRegion(gc.DeploymentRegion),
	)
	if err != nil {
		return nil, AssumeRoleError(gc.OrgAccountID, gc.OrgAccountRole, err)
	}

	provider := stscreds.NewAssumeRoleProvider(
		sts.NewFromConfig(base),
		roleArn(gc.OrgAccountID, gc.OrgAccountRole),
		func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = sessionName()
		},
	)

	assumed := base.Copy()
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return organizations.NewFromConfig(assumed), nil
}

// newRegionsFactory returns a factory producing EC2 clients that
// assume the describe-regions role in each member account.
func newRegionsFactory(ctx context.Context, gc config.GeneratorConfig) (RegionsClientFactory, error) {
	base, err := awsconfig.LoadDefaultConfig(
		ctx, awsconfig.WithRegion(gc.DeploymentRegion),
	)
	if err != nil {
		return nil, AssumeRoleError("", gc.DescribeRegionsRole, err)
	}
	stsClient := sts.NewFromConfig(base)

	return func(_ context.Context, accountID string) (RegionsAPI, error) {
		provider := stscreds.NewAssumeRoleProvider(
			stsClient,
			roleArn(accountID, gc.DescribeRegionsRole),
			func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = sessionName()
			},
		)

		assumed := base.Copy()
		assumed.Credentials = aws.NewCredentialsCache(provider)

		return ec2.NewFromConfig(assumed), nil
	}, nil
}

// newInventoryUploader builds an S3 client in the inventory bucket's
// region.
func newInventoryUploader(ctx context.Context, gc config.GeneratorConfig) (ObjectPutter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx, awsconfig.WithRegion(gc.InventoryBucketRegion),
	)
	if err != nil {
		return nil, PutInventoryError(gc.InventoryBucket, gc.ObjectPath, err)
	}
	return s3.NewFromConfig(awsCfg), nil
}
