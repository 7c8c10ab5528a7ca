package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSQLiteCreateAndLoad(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := AccountRecord{
		Name:             "Tester",
		InvestmentAmount: 1000,
		Cash:             800,
		Coins: []Coin{
			{Name: "Bitcoin", Short: "btc", Image: "btc.png", Amt: 0.004},
			{Name: "Ethereum", Short: "eth", Image: "eth.png", Amt: 1.5},
		},
	}
	require.NoError(t, s.Create(ctx, "acct-1", rec))

	got, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSQLiteLoadMissingAccount(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteUpdateLedgerMergesFields(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "acct-1", AccountRecord{
		Name:             "Keep Me",
		InvestmentAmount: 1000,
		Cash:             1000,
		Coins:            []Coin{{Name: "Bitcoin", Short: "btc", Amt: 1}},
	}))

	require.NoError(t, s.UpdateLedger(ctx, "acct-1", LedgerPatch{
		InvestmentAmount: 1500,
		Cash:             700,
		Coins: []Coin{
			{Name: "Ethereum", Short: "eth", Image: "eth.png", Amt: 2},
		},
	}))

	got, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)

	// Ledger fields replaced, the unrelated name field untouched.
	assert.Equal(t, "Keep Me", got.Name)
	assert.Equal(t, 1500.0, got.InvestmentAmount)
	assert.Equal(t, 700.0, got.Cash)
	require.Len(t, got.Coins, 1)
	assert.Equal(t, "eth", got.Coins[0].Short)
}

func TestSQLiteUpdateLedgerMissingAccount(t *testing.T) {
	s := newTestSQLite(t)

	err := s.UpdateLedger(context.Background(), "nope", LedgerPatch{Cash: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteUpdateLedgerClearsHoldings(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "acct-1", AccountRecord{
		Name:  "Tester",
		Cash:  100,
		Coins: []Coin{{Name: "Bitcoin", Short: "btc", Amt: 1}},
	}))

	// Selling everything leaves an empty holdings set.
	require.NoError(t, s.UpdateLedger(ctx, "acct-1", LedgerPatch{Cash: 150}))

	got, err := s.Load(ctx, "acct-1")
	require.NoError(t, err)
	assert.Empty(t, got.Coins)
}
