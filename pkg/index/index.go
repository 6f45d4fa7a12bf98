// Package index builds and queries the in-memory account index.
//
// The index is constructed once per task-dispatch cycle from an
// inventory snapshot and is immutable afterwards, so any number of
// goroutines may query it concurrently without locking. A new snapshot
// always produces a new Index; there is no in-place rebuild.
package index

import "strings"

// Index answers account-selection queries over a frozen snapshot.
// All lookup keys for aliases, OUs and tags are lower-cased at build
// time; queries lower-case their inputs the same way, so lookups are
// case-insensitive. Region codes are used verbatim.
//
// Absence of a match is always an empty result, never an error.
type Index struct {
	accounts AccountSet
	aliases  map[string]string
	ous      map[string]AccountSet
	regions  map[string]AccountSet
	tags     map[string]map[string]AccountSet
	orgRoot  string
}

// AccountsByIDs returns the subset of the candidate IDs that exist in
// the inventory. Unknown IDs are dropped silently.
func (x *Index) AccountsByIDs(ids []string) AccountSet {
	res := make(AccountSet)
	for _, id := range ids {
		if x.accounts.Has(id) {
			res.Add(id)
		}
	}
	return res
}

// AccountsByAliases resolves account display names to account IDs.
// Aliases without a match are skipped.
func (x *Index) AccountsByAliases(aliases []string) AccountSet {
	res := make(AccountSet)
	for _, alias := range aliases {
		if id, ok := x.aliases[strings.ToLower(alias)]; ok {
			res.Add(id)
		}
	}
	return res
}

// AccountsByTag returns the accounts carrying the given tag name/value
// pair.
func (x *Index) AccountsByTag(name, value string) AccountSet {
	return x.tags[strings.ToLower(name)][strings.ToLower(value)].Clone()
}

// AccountsByOU returns the accounts that are members of the given OU.
// The key may be either the OU ID or its display name.
func (x *Index) AccountsByOU(key string) AccountSet {
	return x.ous[strings.ToLower(key)].Clone()
}

// AccountsByRegions returns the accounts present in each requested
// region. Every requested region appears as a key, even when no
// account is enabled there.
func (x *Index) AccountsByRegions(regions []string) RegionMap {
	res := make(RegionMap, len(regions))
	for _, region := range regions {
		res[region] = x.regions[region].Clone()
	}
	return res
}

// AllAccountsByRegion returns the full region to accounts mapping.
func (x *Index) AllAccountsByRegion() RegionMap {
	res := make(RegionMap, len(x.regions))
	for region, accounts := range x.regions {
		res[region] = accounts.Clone()
	}
	return res
}

// AllAccounts returns the IDs of every account in the inventory.
func (x *Index) AllAccounts() AccountSet {
	return x.accounts.Clone()
}

// OrgRoots returns the organization root derived from the snapshot.
// The snapshot is assumed to cover exactly one organization, so the
// set always has one element; it is a set for uniformity with the
// other queries.
func (x *Index) OrgRoots() AccountSet {
	return NewAccountSet(x.orgRoot)
}
