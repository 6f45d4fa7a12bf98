// Package inventory defines the account inventory document: the JSON
// snapshot produced by the generator and consumed by the index builder.
//
// The wire format is an envelope with a generation timestamp and a map
// of account ID to account record:
//
//	{
//	  "generated": "2026-08-01T10:00:00Z",
//	  "accounts": {
//	    "000000000001": {
//	      "Id": "000000000001",
//	      "Arn": "arn:aws:organizations::000000000020:account/o-abcdefghij/000000000001",
//	      "Name": "Account 1",
//	      "Tags": {"Environment": "prod"},
//	      "Parents": [{"Id": "ou-1234-abcd", "Type": "ORGANIZATIONAL_UNIT", "Name": "Prod"}],
//	      "Regions": ["us-east-1", "us-west-2"]
//	    }
//	  }
//	}
//
// Account fields keep the PascalCase keys of the AWS Organizations API
// blobs they originate from. A bare id->record map without the envelope
// is also accepted for compatibility with hand-made snapshots.
package inventory

import (
	"regexp"

	"github.com/gnames/gnfmt"
	"github.com/go-playground/validator/v10"
)

// OrgUnit is one entry in an account's parent chain. Id and Name are
// both usable as lookup keys downstream, so both are required.
type OrgUnit struct {
	ID   string `json:"Id" validate:"required"`
	Type string `json:"Type,omitempty"`
	Name string `json:"Name" validate:"required"`
}

// Account is a single account record in the inventory document.
type Account struct {
	ID              string            `json:"Id,omitempty"`
	Arn             string            `json:"Arn" validate:"required"`
	Email           string            `json:"Email,omitempty"`
	Name            string            `json:"Name" validate:"required"`
	Status          string            `json:"Status,omitempty"`
	JoinedMethod    string            `json:"JoinedMethod,omitempty"`
	JoinedTimestamp string            `json:"JoinedTimestamp,omitempty"`
	Tags            map[string]string `json:"Tags,omitempty"`
	Parents         []OrgUnit         `json:"Parents,omitempty" validate:"dive"`
	Regions         []string          `json:"Regions,omitempty"`
}

// Snapshot is a point-in-time inventory of all known accounts.
type Snapshot struct {
	Generated string             `json:"generated,omitempty"`
	Accounts  map[string]Account `json:"accounts"`
}

var validate = validator.New()

// orgArnRe matches account ARNs of the form
// arn:aws:organizations::MGMT-ACCOUNT-ID:account/ORG-ID/ACCOUNT-ID
// and captures the management account ID, which identifies the
// organization root.
var orgArnRe = regexp.MustCompile(`^arn:aws:organizations::(\d+):account/`)

// Decode parses inventory bytes into a Snapshot. It accepts either the
// generator envelope or a bare id->record map. Every record is checked
// for the fields the index builder depends on; the first malformed
// record fails the decode with its account ID.
func Decode(data []byte) (*Snapshot, error) {
	enc := gnfmt.GNjson{}

	var snap Snapshot
	if err := enc.Decode(data, &snap); err != nil {
		return nil, DecodeError(err)
	}

	if snap.Accounts == nil {
		// No envelope: try the document as a bare account map.
		var accounts map[string]Account
		if err := enc.Decode(data, &accounts); err != nil {
			return nil, DecodeError(err)
		}
		snap = Snapshot{Accounts: accounts}
	}

	for id, account := range snap.Accounts {
		if err := validate.Struct(account); err != nil {
			return nil, MalformedAccountError(id, err)
		}
	}

	return &snap, nil
}

// ParseOrgRoot extracts the organization root (the management account
// ID) from an account ARN.
func ParseOrgRoot(arn string) (string, error) {
	m := orgArnRe.FindStringSubmatch(arn)
	if m == nil {
		return "", OrgRootError(arn)
	}
	return m[1], nil
}
