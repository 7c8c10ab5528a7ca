package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps account records in a local sqlite database. Useful for
// offline runs and tests; the production path is the Firebase store.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, id string, rec AccountRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, name, investment, cash)
		VALUES (?, ?, ?, ?)`,
		id, rec.Name, rec.InvestmentAmount, rec.Cash,
	)
	if err != nil {
		return fmt.Errorf("create account %q: %w", id, err)
	}

	if err := insertHoldings(ctx, tx, id, rec.Coins); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (AccountRecord, error) {
	var rec AccountRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT name, investment, cash FROM accounts WHERE id = ?`, id,
	).Scan(&rec.Name, &rec.InvestmentAmount, &rec.Cash)
	if err == sql.ErrNoRows {
		return AccountRecord{}, ErrNotFound
	}
	if err != nil {
		return AccountRecord{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, image, units FROM holdings
		WHERE account_id = ? ORDER BY symbol`, id)
	if err != nil {
		return AccountRecord{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var c Coin
		if err := rows.Scan(&c.Short, &c.Name, &c.Image, &c.Amt); err != nil {
			return AccountRecord{}, err
		}
		rec.Coins = append(rec.Coins, c)
	}

	return rec, rows.Err()
}

// UpdateLedger merges the ledger fields into the stored record: investment,
// cash, and the holdings set. The account name column is left untouched.
func (s *SQLiteStore) UpdateLedger(ctx context.Context, id string, patch LedgerPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET investment = ?, cash = ? WHERE id = ?`,
		patch.InvestmentAmount, patch.Cash, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE account_id = ?`, id); err != nil {
		return err
	}
	if err := insertHoldings(ctx, tx, id, patch.Coins); err != nil {
		return err
	}

	return tx.Commit()
}

func insertHoldings(ctx context.Context, tx *sql.Tx, id string, coins []Coin) error {
	for _, c := range coins {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO holdings (account_id, symbol, name, image, units)
			VALUES (?, ?, ?, ?, ?)`,
			id, c.Short, c.Name, c.Image, c.Amt,
		)
		if err != nil {
			return fmt.Errorf("insert holding %q: %w", c.Short, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
