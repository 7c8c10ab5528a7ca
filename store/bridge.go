package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Bridge pushes ledger state to an AccountStore after every mutation.
// Pushes are fire-and-forget: a failure is logged and surfaced through the
// alert hook, never retried, and never blocks or rolls back the local
// ledger.
type Bridge struct {
	store   AccountStore
	log     *zap.Logger
	timeout time.Duration
	alert   func(error) // optional observability hook
	wg      sync.WaitGroup
}

func NewBridge(s AccountStore, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{
		store:   s,
		log:     log,
		timeout: 10 * time.Second,
	}
}

// SetAlertHook registers a callback invoked when a push fails. Must be set
// before the first Push.
func (b *Bridge) SetAlertHook(fn func(error)) { b.alert = fn }

// Push writes the patch in the background. A push with an empty account id
// is a no-op; there is nothing to sync without a session.
func (b *Bridge) Push(accountID string, patch LedgerPatch) {
	if accountID == "" || b.store == nil {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := b.store.UpdateLedger(ctx, accountID, patch); err != nil {
			b.log.Warn("account sync failed",
				zap.String("account", accountID),
				zap.Error(err),
			)
			if b.alert != nil {
				b.alert(err)
			}
		}
	}()
}

// Wait blocks until all in-flight pushes finish. Called at shutdown and in
// tests; trade paths never wait.
func (b *Bridge) Wait() {
	b.wg.Wait()
}
