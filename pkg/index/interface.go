package index

import (
	"context"

	"github.com/armadaops/armada/pkg/inventory"
)

// AccountIndex is the query surface consumed by account/region
// selection logic when resolving which accounts a task should target.
// Implementations are immutable and safe for concurrent readers.
type AccountIndex interface {
	// AccountsByIDs returns the subset of candidate IDs present in
	// the inventory.
	AccountsByIDs(ids []string) AccountSet

	// AccountsByAliases resolves display names to account IDs,
	// case-insensitively.
	AccountsByAliases(aliases []string) AccountSet

	// AccountsByTag returns accounts carrying the tag pair,
	// case-insensitive on both name and value.
	AccountsByTag(name, value string) AccountSet

	// AccountsByOU returns accounts in the OU; the key is an OU ID or
	// display name, interchangeably.
	AccountsByOU(key string) AccountSet

	// AccountsByRegions returns accounts per requested region; every
	// requested region is a key of the result.
	AccountsByRegions(regions []string) RegionMap

	// AllAccountsByRegion returns the complete region mapping.
	AllAccountsByRegion() RegionMap

	// AllAccounts returns every known account ID.
	AllAccounts() AccountSet

	// OrgRoots returns the organization root as a singleton set.
	OrgRoots() AccountSet
}

// SnapshotSource supplies the raw inventory snapshot, typically from
// S3. Fetching may block on the network; everything after the fetch is
// in-memory.
type SnapshotSource interface {
	Fetch(ctx context.Context) (*inventory.Snapshot, error)
}
