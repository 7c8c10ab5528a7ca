// Package sim executes simulated market buys and sells against live prices
// and keeps the resulting holdings ledger and its valuation consistent.
package sim

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"coinsim/ledger"
	"coinsim/market"
	"coinsim/store"
)

// closeOutFraction decides when a sell closes the whole position: once the
// requested cash value reaches this share of the position's market value the
// remainder would only be float dust.
const closeOutFraction = 0.99999

// Engine validates and executes trades against the current snapshot and the
// active session's ledger. All operations are serialized by the mutex so
// overlapping requests cannot lose updates.
type Engine struct {
	mu        sync.Mutex
	snapshots *market.SnapshotStore
	ledger    *ledger.Ledger
	session   *Session
	bridge    *store.Bridge
	log       *zap.Logger
	listener  TradeListener

	holdings float64 // mark-to-market value of positions, rounded to 2dp
	stale    bool    // true when a held asset had no price in the snapshot
}

func NewEngine(snapshots *market.SnapshotStore, bridge *store.Bridge, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		snapshots: snapshots,
		ledger:    ledger.New(),
		bridge:    bridge,
		log:       log,
	}
}

// SetTradeListener sets an optional listener notified after successful
// trades. The callback runs after the engine lock is released.
func (e *Engine) SetTradeListener(l TradeListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

// Login hydrates the engine from a stored account record. Any previous
// session is discarded first so nothing leaks between accounts.
func (e *Engine) Login(s Session, rec store.AccountRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ledger.Reset()
	e.session = &Session{AccountID: s.AccountID, Name: s.Name}
	e.ledger.Cash = rec.Cash
	e.ledger.Investment = rec.InvestmentAmount
	for _, p := range store.PositionsFromCoins(rec.Coins) {
		e.ledger.Add(p)
	}
	e.revalueLocked()
}

// Logout zeroes the ledger and drops the session. No ledger exists while
// logged out.
func (e *Engine) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = nil
	e.ledger.Reset()
	e.holdings = 0
	e.stale = false
}

// Session returns the active session, if any.
func (e *Engine) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// Deposit adds simulated funds to the active account.
func (e *Engine) Deposit(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	if amount <= 0 {
		return fmt.Errorf("deposit %.2f: %w", amount, ErrInvalidAmount)
	}

	e.ledger.Deposit(amount)
	e.syncLocked()
	return nil
}

// Buy spends amount of cash on the asset with the given symbol at its
// current snapshot price. Rejections leave the ledger unchanged.
func (e *Engine) Buy(amount float64, symbol string) (TradeReceipt, error) {
	e.mu.Lock()

	if e.session == nil {
		e.mu.Unlock()
		return TradeReceipt{}, ErrNoSession
	}
	if amount <= 0 {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("buy %q: %w", symbol, ErrInvalidAmount)
	}

	asset, ok := e.snapshots.Current().Lookup(symbol)
	if !ok || asset.CurrentPrice <= 0 {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("buy %q: %w", symbol, ErrUnresolvedPrice)
	}
	if amount > e.ledger.Cash {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("buy %q for %.2f: %w", symbol, amount, ErrInsufficientFunds)
	}

	units := amount / asset.CurrentPrice
	e.ledger.Add(ledger.Position{
		Symbol: asset.Symbol,
		Name:   asset.Name,
		Image:  asset.Image,
		Units:  units,
	})
	e.ledger.Cash -= amount

	e.revalueLocked()
	e.syncLocked()

	r := TradeReceipt{
		Side:      SideBuy,
		Symbol:    asset.Symbol,
		AssetName: asset.Name,
		Amount:    amount,
		Units:     units,
		Price:     asset.CurrentPrice,
		Cash:      e.ledger.Cash,
		NetWorth:  e.ledger.Cash + e.holdings,
	}
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		listener.OnTrade(r)
	}
	return r, nil
}

// Sell converts amount of cash worth of a held position back into cash at
// the current snapshot price. When the requested value covers effectively
// the whole position the position is closed outright rather than leaving
// dust behind.
func (e *Engine) Sell(amount float64, symbol string) (TradeReceipt, error) {
	e.mu.Lock()

	if e.session == nil {
		e.mu.Unlock()
		return TradeReceipt{}, ErrNoSession
	}
	if amount <= 0 {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("sell %q: %w", symbol, ErrInvalidAmount)
	}

	pos, held := e.ledger.Position(symbol)
	if !held {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("sell %q: %w", symbol, ErrInsufficientHoldings)
	}

	asset, ok := e.snapshots.Current().Lookup(symbol)
	if !ok || asset.CurrentPrice <= 0 {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("sell %q: %w", symbol, ErrUnresolvedPrice)
	}

	value := pos.Value(asset.CurrentPrice)
	if amount > value {
		e.mu.Unlock()
		return TradeReceipt{}, fmt.Errorf("sell %q for %.2f (held %.2f): %w",
			symbol, amount, value, ErrInsufficientHoldings)
	}

	units := amount / asset.CurrentPrice
	if amount >= value*closeOutFraction {
		e.ledger.Close(symbol)
	} else {
		e.ledger.Reduce(symbol, units)
	}
	e.ledger.Cash += amount

	e.revalueLocked()
	e.syncLocked()

	r := TradeReceipt{
		Side:      SideSell,
		Symbol:    asset.Symbol,
		AssetName: asset.Name,
		Amount:    amount,
		Units:     units,
		Price:     asset.CurrentPrice,
		Cash:      e.ledger.Cash,
		NetWorth:  e.ledger.Cash + e.holdings,
	}
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		listener.OnTrade(r)
	}
	return r, nil
}

// Positions returns the held positions sorted by symbol.
func (e *Engine) Positions() []ledger.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Positions()
}

// Cash returns the current cash balance.
func (e *Engine) Cash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Cash
}

// Investment returns the cumulative deposited funds.
func (e *Engine) Investment() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Investment
}

// OnSnapshot recomputes the valuation after a feed refresh. Register it as
// the poller's update hook.
func (e *Engine) OnSnapshot(*market.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.revalueLocked()
}

// syncLocked pushes the ledger to the remote store. Fire-and-forget; a
// failed push never touches local state.
func (e *Engine) syncLocked() {
	if e.session == nil || e.bridge == nil {
		return
	}
	e.bridge.Push(e.session.AccountID, store.LedgerPatch{
		InvestmentAmount: e.ledger.Investment,
		Cash:             e.ledger.Cash,
		Coins:            store.CoinsFromPositions(e.ledger.Positions()),
	})
}
