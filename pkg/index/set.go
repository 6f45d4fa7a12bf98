package index

import "sort"

// AccountSet is a set of account IDs.
type AccountSet map[string]struct{}

// NewAccountSet creates a set from the given IDs.
func NewAccountSet(ids ...string) AccountSet {
	s := make(AccountSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an ID into the set.
func (s AccountSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether the ID is in the set.
func (s AccountSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set. A nil set clones to an
// empty, non-nil set so callers never receive nil results.
func (s AccountSet) Clone() AccountSet {
	res := make(AccountSet, len(s))
	for id := range s {
		res[id] = struct{}{}
	}
	return res
}

// Equal reports whether both sets hold the same IDs.
func (s AccountSet) Equal(other AccountSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Slice returns the IDs sorted, for stable output.
func (s AccountSet) Slice() []string {
	res := make([]string, 0, len(s))
	for id := range s {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

// RegionMap maps a region code to the accounts present in it.
type RegionMap map[string]AccountSet
