package index

import (
	"strings"

	"github.com/armadaops/armada/pkg/inventory"
)

// Build transforms an inventory snapshot into a frozen Index in a
// single pass. It either returns a complete, internally consistent
// Index or an error; a partially populated Index is never exposed.
//
// Build holds no state between calls and may be invoked repeatedly to
// produce independent Index instances.
func Build(snap *inventory.Snapshot) (*Index, error) {
	if snap == nil || len(snap.Accounts) == 0 {
		return nil, EmptySnapshotError()
	}

	x := &Index{
		accounts: make(AccountSet, len(snap.Accounts)),
		aliases:  make(map[string]string, len(snap.Accounts)),
		ous:      make(map[string]AccountSet),
		regions:  make(map[string]AccountSet),
		tags:     make(map[string]map[string]AccountSet),
	}

	for id, account := range snap.Accounts {
		if account.Name == "" || account.Arn == "" {
			return nil, MalformedRecordError(id)
		}

		x.accounts.Add(id)

		// Last write wins when two accounts share a lower-cased name.
		x.aliases[strings.ToLower(account.Name)] = id

		// Region codes are already canonical tokens, no case folding.
		for _, region := range account.Regions {
			addToSet(x.regions, region, id)
		}

		// Both the OU ID and its display name key the same set, so
		// callers can query by either form.
		for _, ou := range account.Parents {
			if ou.ID == "" || ou.Name == "" {
				return nil, MalformedRecordError(id)
			}
			ouID := strings.ToLower(ou.ID)
			ouName := strings.ToLower(ou.Name)
			addToSet(x.ous, ouID, id)
			x.ous[ouName] = x.ous[ouID]
		}

		for name, value := range account.Tags {
			tagName := strings.ToLower(name)
			values := x.tags[tagName]
			if values == nil {
				values = make(map[string]AccountSet)
				x.tags[tagName] = values
			}
			addToSet(values, strings.ToLower(value), id)
		}
	}

	// The snapshot is assumed to span a single organization, so any
	// account's ARN carries the organization root. The pick is
	// arbitrary and not cross-validated against the other accounts.
	for id, account := range snap.Accounts {
		root, err := inventory.ParseOrgRoot(account.Arn)
		if err != nil {
			return nil, OrgRootError(id, err)
		}
		x.orgRoot = root
		break
	}

	return x, nil
}

func addToSet(m map[string]AccountSet, key, id string) {
	s := m[key]
	if s == nil {
		s = make(AccountSet)
		m[key] = s
	}
	s.Add(id)
}
