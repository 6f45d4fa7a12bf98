package inventory

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// DecodeError creates an error for an inventory document that is not
// valid JSON or does not have the expected structure.
func DecodeError(err error) error {
	msg := `Cannot decode the account inventory document

<em>Possible causes:</em>
  - The object is not the output of 'armada generate'
  - The document was truncated or corrupted in transit

<em>How to fix:</em>
  1. Regenerate the inventory with 'armada generate --commit'
  2. Verify the snapshot bucket and object path in the configuration`

	return &gn.Error{
		Code: errcode.SnapshotDecodeError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot decode inventory: %w", err),
	}
}

// MalformedAccountError creates an error for an account record that is
// missing a required field.
func MalformedAccountError(accountID string, err error) error {
	msg := `Malformed account record in the inventory document

<em>Account ID:</em> %s

The record is missing a required field (Name, Arn, or a parent OU
Id/Name). Regenerate the inventory, or fix the record if the snapshot
was produced by hand.`

	vars := []any{accountID}

	return &gn.Error{
		Code: errcode.MalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed account record %q: %w", accountID, err),
	}
}

// OrgRootError creates an error for an account ARN that does not carry
// an organization root segment.
func OrgRootError(arn string) error {
	msg := `Cannot derive the organization root from an account ARN

<em>ARN:</em> %s

Expected the form:
  arn:aws:organizations::MGMT-ACCOUNT-ID:account/ORG-ID/ACCOUNT-ID`

	vars := []any{arn}

	return &gn.Error{
		Code: errcode.OrgRootParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no organization root in ARN %q", arn),
	}
}
