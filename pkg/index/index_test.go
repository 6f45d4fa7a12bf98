package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaops/armada/pkg/index"
)

// Compile-time check: the built index satisfies the query surface.
var _ index.AccountIndex = (*index.Index)(nil)

func TestAccountsByIDs(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	tests := []struct {
		msg string
		ids []string
		res []string
	}{
		{"known ids pass through", []string{"000000000001"}, []string{"000000000001"}},
		{"unknown ids are dropped", []string{"000000000001", "999999999999"}, []string{"000000000001"}},
		{"all unknown", []string{"999999999999"}, []string{}},
		{"empty input", []string{}, []string{}},
	}

	for _, v := range tests {
		res := idx.AccountsByIDs(v.ids)
		assert.Equal(t, v.res, res.Slice(), v.msg)

		// The result is always a subset of the input and of the
		// inventory.
		all := idx.AllAccounts()
		for id := range res {
			assert.Contains(t, v.ids, id, v.msg)
			assert.True(t, all.Has(id), v.msg)
		}
	}
}

func TestAccountsByAliases(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	tests := []struct {
		msg     string
		aliases []string
		res     []string
	}{
		{"exact case", []string{"Alpha"}, []string{"000000000001"}},
		{"lower case", []string{"alpha"}, []string{"000000000001"}},
		{"upper case", []string{"ALPHA"}, []string{"000000000001"}},
		{"several aliases", []string{"alpha", "beta"}, []string{"000000000001", "000000000002"}},
		{"unknown alias is skipped", []string{"alpha", "gamma"}, []string{"000000000001"}},
		{"empty query", []string{}, []string{}},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, idx.AccountsByAliases(v.aliases).Slice(), v.msg)
	}
}

func TestAccountsByTagUnknown(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	assert.Empty(t, idx.AccountsByTag("missing", "prod"))
	assert.Empty(t, idx.AccountsByTag("environment", "missing"))
}

func TestAccountsByOUUnknown(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	assert.Empty(t, idx.AccountsByOU("ou-none"))
}

func TestAccountsByRegions(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	res := idx.AccountsByRegions([]string{"us-east-1", "eu-central-1"})

	// Every requested region is a key, even with no accounts in it.
	require.Len(t, res, 2)
	assert.Equal(t,
		[]string{"000000000001", "000000000002"},
		res["us-east-1"].Slice(),
	)
	require.Contains(t, res, "eu-central-1")
	assert.Empty(t, res["eu-central-1"])
	assert.NotNil(t, res["eu-central-1"])
}

func TestAllAccountsByRegion(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	res := idx.AllAccountsByRegion()
	require.Len(t, res, 2)
	assert.Equal(t,
		[]string{"000000000001", "000000000002"},
		res["us-east-1"].Slice(),
	)
	assert.Equal(t, []string{"000000000001"}, res["us-west-2"].Slice())
}

func TestIndexIsFrozen(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	// Mutating query results must not leak into the index.
	idx.AllAccounts().Add("999999999999")
	idx.AccountsByOU("prod").Add("999999999999")
	idx.AccountsByTag("environment", "prod").Add("999999999999")
	delete(idx.AllAccountsByRegion(), "us-east-1")

	assert.Equal(t,
		[]string{"000000000001", "000000000002"},
		idx.AllAccounts().Slice(),
	)
	assert.Equal(t, []string{"000000000001"}, idx.AccountsByOU("prod").Slice())
	assert.Equal(t,
		[]string{"000000000001"},
		idx.AccountsByTag("environment", "prod").Slice(),
	)
	assert.Contains(t, idx.AllAccountsByRegion(), "us-east-1")
}

func TestIndexConcurrentReads(t *testing.T) {
	idx, err := index.Build(testSnapshot())
	require.NoError(t, err)

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 100 {
				idx.AccountsByIDs([]string{"000000000001"})
				idx.AccountsByAliases([]string{"alpha"})
				idx.AccountsByTag("environment", "prod")
				idx.AccountsByOU("dev")
				idx.AccountsByRegions([]string{"us-east-1"})
				idx.AllAccountsByRegion()
				idx.AllAccounts()
				idx.OrgRoots()
			}
		}()
	}
	for range 8 {
		<-done
	}
}
