// Package store persists account records keyed by account identifier.
package store

import (
	"context"
	"errors"

	"coinsim/ledger"
)

// ErrNotFound is returned when no record exists for an account id.
var ErrNotFound = errors.New("account not found")

// Coin is the wire shape of one held position in an account record.
type Coin struct {
	Name  string  `json:"name"`
	Short string  `json:"short"`
	Image string  `json:"image"`
	Amt   float64 `json:"amt"`
}

// AccountRecord is the full remote record for one account.
type AccountRecord struct {
	Name             string  `json:"name,omitempty"`
	InvestmentAmount float64 `json:"investmentAmount"`
	Cash             float64 `json:"cash"`
	Coins            []Coin  `json:"coins"`
}

// LedgerPatch carries only the fields written after a ledger mutation.
// Updates apply it as a merge so unrelated record fields survive.
type LedgerPatch struct {
	InvestmentAmount float64 `json:"investmentAmount"`
	Cash             float64 `json:"cash"`
	Coins            []Coin  `json:"coins"`
}

// AccountStore is the remote account record store.
type AccountStore interface {
	// Create writes a fresh record at registration.
	Create(ctx context.Context, id string, rec AccountRecord) error
	// Load reads the full record, e.g. at login.
	Load(ctx context.Context, id string) (AccountRecord, error)
	// UpdateLedger merges the ledger fields into the record.
	UpdateLedger(ctx context.Context, id string, patch LedgerPatch) error
	Close() error
}

// CoinsFromPositions converts ledger positions to the wire shape.
func CoinsFromPositions(positions []ledger.Position) []Coin {
	coins := make([]Coin, 0, len(positions))
	for _, p := range positions {
		coins = append(coins, Coin{
			Name:  p.Name,
			Short: p.Symbol,
			Image: p.Image,
			Amt:   p.Units,
		})
	}
	return coins
}

// PositionsFromCoins converts a stored record back into ledger positions.
func PositionsFromCoins(coins []Coin) []ledger.Position {
	positions := make([]ledger.Position, 0, len(coins))
	for _, c := range coins {
		positions = append(positions, ledger.Position{
			Symbol: c.Short,
			Name:   c.Name,
			Image:  c.Image,
			Units:  c.Amt,
		})
	}
	return positions
}
