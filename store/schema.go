// store/schema.go
package store

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	investment REAL NOT NULL,
	cash REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS holdings (
	account_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	name TEXT NOT NULL,
	image TEXT NOT NULL,
	units REAL NOT NULL,
	PRIMARY KEY (account_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_holdings_account ON holdings(account_id);
`
