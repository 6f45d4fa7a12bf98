package index

import (
	"context"
	"sync"
)

// Manager owns the index for one task-dispatch cycle. It fetches the
// snapshot and builds the index at most once, then hands out read
// access to any number of callers. A failed build is terminal for the
// manager: later calls return the same error, and a fresh cycle uses a
// fresh Manager.
type Manager struct {
	src  SnapshotSource
	once sync.Once
	idx  *Index
	err  error
}

// NewManager creates a Manager over the given snapshot source.
func NewManager(src SnapshotSource) *Manager {
	return &Manager{src: src}
}

// Index returns the account index, building it on first use. The
// sync.Once publication guarantees that a fully constructed index is
// visible to every caller.
func (m *Manager) Index(ctx context.Context) (AccountIndex, error) {
	m.once.Do(func() {
		snap, err := m.src.Fetch(ctx)
		if err != nil {
			m.err = err
			return
		}
		m.idx, m.err = Build(snap)
	})

	if m.err != nil {
		return nil, m.err
	}
	return m.idx, nil
}
