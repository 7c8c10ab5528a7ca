package sim

import (
	"math"

	"go.uber.org/zap"
)

// Valuation is the derived worth of the active account. Holdings is a
// presentation value rounded to two decimals; it never feeds back into the
// ledger.
type Valuation struct {
	Cash       float64
	Investment float64
	Holdings   float64
	NetWorth   float64
	Stale      bool // a held asset had no price in the current snapshot
}

// Valuation returns the current derived account worth.
func (e *Engine) Valuation() Valuation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Valuation{
		Cash:       e.ledger.Cash,
		Investment: e.ledger.Investment,
		Holdings:   e.holdings,
		NetWorth:   e.ledger.Cash + e.holdings,
		Stale:      e.stale,
	}
}

// NetWorth returns cash plus the mark-to-market value of all positions.
// Exactly the cash balance when no positions are held.
func (e *Engine) NetWorth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Cash + e.holdings
}

// revalueLocked marks every position to the current snapshot. An asset
// missing from the snapshot (feed not loaded yet, or delisted) contributes
// zero and flags the valuation stale instead of failing.
func (e *Engine) revalueLocked() {
	snap := e.snapshots.Current()

	total := 0.0
	stale := false
	for _, pos := range e.ledger.Positions() {
		asset, ok := snap.Lookup(pos.Symbol)
		if !ok {
			stale = true
			e.log.Warn("held asset missing from snapshot, valuing at zero",
				zap.String("symbol", pos.Symbol),
			)
			continue
		}
		total += pos.Value(asset.CurrentPrice)
	}

	e.holdings = round2(total)
	e.stale = stale
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
