package market

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the feed is refreshed.
const DefaultPollInterval = 15 * time.Second

// Poller refreshes a SnapshotStore from a Source on a fixed interval.
// The first poll happens immediately; cancellation of the run context stops
// the ticker and aborts any in-flight fetch.
type Poller struct {
	src      Source
	store    *SnapshotStore
	interval time.Duration
	log      *zap.Logger
	onUpdate func(*Snapshot) // optional, called after each successful replace
}

func NewPoller(src Source, store *SnapshotStore, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{src: src, store: store, interval: interval, log: log}
}

// SetUpdateHook registers a callback invoked after every successful refresh.
// Must be called before Run.
func (p *Poller) SetUpdateHook(fn func(*Snapshot)) { p.onUpdate = fn }

// Run polls until ctx is cancelled and returns ctx.Err(). A failed poll
// leaves the previous snapshot in place; the next tick is the only retry.
func (p *Poller) Run(ctx context.Context) error {
	p.poll(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	assets, err := p.src.Markets(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn("feed poll failed, keeping previous snapshot", zap.Error(err))
		return
	}

	snap := NewSnapshot(time.Now(), assets)
	p.store.Replace(snap)
	p.log.Debug("snapshot replaced",
		zap.Int("assets", snap.Len()),
		zap.Time("taken", snap.Taken()),
	)

	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
}
