// Package errcode defines error codes for all Armada error conditions.
// Codes are attached to gn.Error values so that callers can branch on
// the kind of failure instead of matching message strings.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration errors
	ConfigMissingError
	ConfigInvalidError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Snapshot errors
	SnapshotFetchError
	SnapshotDecodeError
	SnapshotEmptyError

	// Index errors
	MalformedRecordError
	OrgRootParseError

	// Generator errors
	GenListAccountsError
	GenListOUsError
	GenAccountDetailsError
	GenDescribeRegionsError
	GenAssumeRoleError
	GenPutInventoryError
)
