package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns one result per call, in order, then repeats the
// last one.
type scriptedSource struct {
	mu      sync.Mutex
	results []func() ([]Asset, error)
	calls   int
	polled  chan struct{}
}

func newScriptedSource(results ...func() ([]Asset, error)) *scriptedSource {
	return &scriptedSource{
		results: results,
		polled:  make(chan struct{}, 64),
	}
}

func (s *scriptedSource) Markets(ctx context.Context) ([]Asset, error) {
	s.mu.Lock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	fn := s.results[i]
	s.mu.Unlock()

	defer func() { s.polled <- struct{}{} }()
	return fn()
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func waitPoll(t *testing.T, s *scriptedSource) {
	t.Helper()
	select {
	case <-s.polled:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a poll")
	}
}

func TestPollerPollsImmediately(t *testing.T) {
	src := newScriptedSource(func() ([]Asset, error) {
		return []Asset{{Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000}}, nil
	})
	ss := NewSnapshotStore()

	// Interval long enough that only the immediate poll can fire.
	p := NewPoller(src, ss, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitPoll(t, src)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, 1, src.callCount())
	assert.Equal(t, 1, ss.Current().Len())
}

func TestPollerKeepsPreviousSnapshotOnFailure(t *testing.T) {
	src := newScriptedSource(
		func() ([]Asset, error) {
			return []Asset{{Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000}}, nil
		},
		func() ([]Asset, error) {
			return nil, errors.New("feed down")
		},
	)
	ss := NewSnapshotStore()
	p := NewPoller(src, ss, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitPoll(t, src) // successful immediate poll
	waitPoll(t, src) // failing tick
	cancel()
	<-done

	snap := ss.Current()
	require.Equal(t, 1, snap.Len())
	a, ok := snap.Lookup("btc")
	require.True(t, ok)
	assert.Equal(t, 50000.0, a.CurrentPrice)
}

func TestPollerUpdateHook(t *testing.T) {
	src := newScriptedSource(func() ([]Asset, error) {
		return []Asset{{Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000}}, nil
	})
	ss := NewSnapshotStore()
	p := NewPoller(src, ss, time.Hour, nil)

	updates := make(chan *Snapshot, 1)
	p.SetUpdateHook(func(s *Snapshot) { updates <- s })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case snap := <-updates:
		assert.Equal(t, 1, snap.Len())
	case <-time.After(2 * time.Second):
		t.Fatal("update hook never fired")
	}

	cancel()
	<-done
}

func TestPollerStopsOnCancel(t *testing.T) {
	src := newScriptedSource(func() ([]Asset, error) {
		return nil, nil
	})
	p := NewPoller(src, NewSnapshotStore(), time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitPoll(t, src)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}
