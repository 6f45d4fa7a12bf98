package iogenerate

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// ListAccountsError creates an error for a failed Organizations
// ListAccounts call.
func ListAccountsError(err error) error {
	msg := `Cannot list the accounts of the organization

<em>Possible causes:</em>
  - The org account role cannot be assumed
  - The role lacks organizations:ListAccounts

<em>How to fix:</em>
  1. Check generator.org_account_id and generator.org_account_role
  2. Verify the role's trust policy and permissions`

	return &gn.Error{
		Code: errcode.GenListAccountsError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot list accounts: %w", err),
	}
}

// ListOUsError creates an error for a failed OU listing under the
// given parent.
func ListOUsError(parentID string, err error) error {
	msg := `Cannot list organizational units

<em>Parent:</em> %s

Check generator.org_root_id and the role's
organizations:ListOrganizationalUnitsForParent permission.`

	vars := []any{parentID}

	return &gn.Error{
		Code: errcode.GenListOUsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot list OUs under %q: %w", parentID, err),
	}
}

// AccountDetailsError creates an error for failed tag or parent
// fetching for one account.
func AccountDetailsError(accountID string, err error) error {
	msg := `Cannot fetch tags and parents for an account

<em>Account ID:</em> %s`

	vars := []any{accountID}

	return &gn.Error{
		Code: errcode.GenAccountDetailsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot fetch details for account %q: %w", accountID, err),
	}
}

// DescribeRegionsError creates an error for a failed region listing in
// one account.
func DescribeRegionsError(accountID string, err error) error {
	msg := `Cannot list the enabled regions of an account

<em>Account ID:</em> %s

Check that generator.describe_regions_role exists in the account and
allows ec2:DescribeRegions.`

	vars := []any{accountID}

	return &gn.Error{
		Code: errcode.GenDescribeRegionsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot describe regions for account %q: %w", accountID, err),
	}
}

// AssumeRoleError creates an error for a role that cannot be assumed.
func AssumeRoleError(accountID, role string, err error) error {
	msg := `Cannot assume an AWS role

<em>Account ID:</em> %s
<em>Role:</em> %s

Check the AWS credentials in the environment and the role's trust
policy.`

	vars := []any{accountID, role}

	return &gn.Error{
		Code: errcode.GenAssumeRoleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot assume role %q in account %q: %w", role, accountID, err),
	}
}

// PutInventoryError creates an error for a failed inventory upload.
func PutInventoryError(bucket, path string, err error) error {
	msg := `Cannot save the inventory to S3

<em>Bucket:</em> %s
<em>Object path:</em> %s

Check generator.inventory_bucket and the caller's s3:PutObject
permission.`

	vars := []any{bucket, path}

	return &gn.Error{
		Code: errcode.GenPutInventoryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot save inventory to s3://%s/%s: %w", bucket, path, err),
	}
}
