// Package ledger holds the per-account record of cash, cumulative
// investment, and positions. It is pure state; validation and price lookups
// live in the trade engine.
package ledger

import "sort"

// unitsEpsilon absorbs float representation error when a reduce lands on
// what should be exactly zero.
const unitsEpsilon = 1e-9

// Position is the held quantity of one asset, keyed by symbol.
type Position struct {
	Symbol string
	Name   string
	Image  string
	Units  float64
}

// Value marks the position to market at the given price.
func (p Position) Value(price float64) float64 {
	return p.Units * price
}

// Ledger is the authoritative holdings record for one account session.
// Cash never goes negative as the result of a trade; the engine rejects the
// trade before touching the ledger.
type Ledger struct {
	Cash       float64
	Investment float64 // cumulative deposits, monotonic non-decreasing

	positions map[string]Position
}

func New() *Ledger {
	return &Ledger{positions: make(map[string]Position)}
}

// Deposit adds simulated funds: cash and cumulative investment move together.
func (l *Ledger) Deposit(amount float64) {
	l.Cash += amount
	l.Investment += amount
}

// Add merges a purchase into the ledger. If a position for the symbol
// already exists only its units grow; name and image stay as first recorded
// so later feed metadata cannot diverge the position.
func (l *Ledger) Add(p Position) {
	if held, ok := l.positions[p.Symbol]; ok {
		held.Units += p.Units
		l.positions[p.Symbol] = held
		return
	}
	l.positions[p.Symbol] = p
}

// Reduce removes units from a position, deleting it once the remainder is
// indistinguishable from zero.
func (l *Ledger) Reduce(symbol string, units float64) {
	held, ok := l.positions[symbol]
	if !ok {
		return
	}
	held.Units -= units
	if held.Units <= unitsEpsilon {
		delete(l.positions, symbol)
		return
	}
	l.positions[symbol] = held
}

// Close removes a position entirely.
func (l *Ledger) Close(symbol string) {
	delete(l.positions, symbol)
}

// Position looks up a held position by symbol.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	return p, ok
}

// Positions returns the held positions sorted by symbol.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of open positions.
func (l *Ledger) Len() int { return len(l.positions) }

// Reset zeroes the ledger. Used at logout so no state leaks into the next
// session.
func (l *Ledger) Reset() {
	l.Cash = 0
	l.Investment = 0
	l.positions = make(map[string]Position)
}
