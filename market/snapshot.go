package market

import (
	"sync"
	"time"
)

// Snapshot is an immutable view of the tradable assets at one feed refresh.
// Lookups are keyed by symbol end-to-end; display names are not unique.
type Snapshot struct {
	taken    time.Time
	assets   []Asset
	bySymbol map[string]int
}

// NewSnapshot builds a snapshot from a feed result. Assets that fail
// validation are dropped. If two assets share a symbol the first wins.
func NewSnapshot(taken time.Time, assets []Asset) *Snapshot {
	s := &Snapshot{
		taken:    taken,
		assets:   make([]Asset, 0, len(assets)),
		bySymbol: make(map[string]int, len(assets)),
	}
	for _, a := range assets {
		if !a.Valid() {
			continue
		}
		if _, dup := s.bySymbol[a.Symbol]; dup {
			continue
		}
		s.bySymbol[a.Symbol] = len(s.assets)
		s.assets = append(s.assets, a)
	}
	return s
}

// Taken returns the time the snapshot was fetched.
func (s *Snapshot) Taken() time.Time { return s.taken }

// Assets returns the assets in feed order. Callers must not mutate the slice.
func (s *Snapshot) Assets() []Asset { return s.assets }

// Len returns the number of assets in the snapshot.
func (s *Snapshot) Len() int { return len(s.assets) }

// Lookup finds an asset by symbol.
func (s *Snapshot) Lookup(symbol string) (Asset, bool) {
	i, ok := s.bySymbol[symbol]
	if !ok {
		return Asset{}, false
	}
	return s.assets[i], true
}

// SnapshotStore holds the most recent snapshot. Each successful feed poll
// replaces the whole snapshot atomically; there is no incremental merge.
type SnapshotStore struct {
	mu  sync.RWMutex
	cur *Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{cur: NewSnapshot(time.Time{}, nil)}
}

func (ss *SnapshotStore) Replace(s *Snapshot) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.cur = s
}

// Current returns the latest snapshot. Before the first successful poll it
// returns an empty snapshot, never nil.
func (ss *SnapshotStore) Current() *Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.cur
}
