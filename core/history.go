package core

import (
	"github.com/riversh/riversh/core/shell"
	"github.com/riversh/riversh/core/store"
)

// BoltHistory is a history buffer backed by the persistent command store.
// Reads are served from an in-memory cache seeded from the store's tail;
// writes go to both.
type BoltHistory struct {
	store *store.Store
	cache *shell.MemoryHistory
}

var _ shell.History = (*BoltHistory)(nil)

// NewBoltHistory seeds the cache with the newest limit commands from the
// store. A limit of zero loads everything.
func NewBoltHistory(st *store.Store, limit int) (*BoltHistory, error) {
	cache := shell.NewMemoryHistory(limit)
	n := limit
	if n == 0 {
		n = -1
	}
	cmds, err := st.TailCmds(n)
	if err != nil {
		return nil, err
	}
	for _, cmd := range cmds {
		cache.Add(cmd.Text)
	}
	return &BoltHistory{store: st, cache: cache}, nil
}

// Add records the line in the store and the cache. Store failures are
// swallowed so a read-only database still gives session history.
func (h *BoltHistory) Add(line string) {
	_, _ = h.store.AddCmd(line)
	h.cache.Add(line)
}

func (h *BoltHistory) Newest() (string, bool) {
	return h.cache.Newest()
}

func (h *BoltHistory) Lines() []string {
	return h.cache.Lines()
}
