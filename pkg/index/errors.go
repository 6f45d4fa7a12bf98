package index

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// EmptySnapshotError creates an error for a snapshot with no accounts.
func EmptySnapshotError() error {
	msg := `The inventory snapshot contains no accounts

An index cannot be built from an empty inventory: there is no account
to derive the organization root from.

<em>How to fix:</em>
  1. Verify the snapshot bucket and object path in the configuration
  2. Regenerate the inventory with 'armada generate --commit'`

	return &gn.Error{
		Code: errcode.SnapshotEmptyError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("empty inventory snapshot"),
	}
}

// MalformedRecordError creates an error for an account record missing
// a field the index depends on.
func MalformedRecordError(accountID string) error {
	msg := `Cannot index a malformed account record

<em>Account ID:</em> %s

The record is missing its Name, Arn, or a parent OU Id/Name.`

	vars := []any{accountID}

	return &gn.Error{
		Code: errcode.MalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot index malformed account record %q", accountID),
	}
}

// OrgRootError creates an error for a failed organization root
// derivation.
func OrgRootError(accountID string, err error) error {
	msg := `Cannot derive the organization root

<em>Account ID:</em> %s

The account's ARN does not match the AWS Organizations account ARN
format.`

	vars := []any{accountID}

	return &gn.Error{
		Code: errcode.OrgRootParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("organization root for account %q: %w", accountID, err),
	}
}
