package storage

// journal.go — per-game trade journal.
//
// Three append-only tables: one row per submitted order, one per fill,
// one per finished game. The journal is never read back to rebuild
// strategy state — the strategy is in-memory only — it exists so a
// session leaves an auditable record on disk.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alejandrodnm/courtbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id     TEXT,
    ticker       TEXT    NOT NULL,
    side         TEXT    NOT NULL,
    kind         TEXT    NOT NULL,
    qty          REAL    NOT NULL,
    price        REAL    NOT NULL DEFAULT 0,
    ioc          INTEGER NOT NULL DEFAULT 0,
    reason       TEXT,
    submitted_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS fills (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    side          TEXT    NOT NULL,
    price         REAL    NOT NULL,
    qty           REAL    NOT NULL,
    capital_after REAL    NOT NULL,
    filled_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS games (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    position       REAL    NOT NULL,
    avg_cost       REAL    NOT NULL,
    realized_pnl   REAL    NOT NULL,
    unrealized_pnl REAL    NOT NULL,
    capital        REAL    NOT NULL,
    orders         INTEGER NOT NULL,
    fills          INTEGER NOT NULL,
    ended_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_at ON orders(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_fills_at  ON fills(filled_at DESC);
CREATE INDEX IF NOT EXISTS idx_games_at  ON games(ended_at DESC);
`

// Journal implements ports.Journal on SQLite (pure Go, no CGo).
type Journal struct {
	db *sql.DB
}

// NewJournal opens (or creates) the journal database at the given DSN
// and applies the schema.
func NewJournal(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewJournal: open %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewJournal: apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// RecordOrder appends one submitted order.
func (j *Journal) RecordOrder(ctx context.Context, rec domain.OrderRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, ticker, side, kind, qty, price, ioc, reason, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Ticker), string(rec.Side), rec.Kind,
		rec.Qty, rec.Price, boolToInt(rec.IOC), rec.Reason, rec.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.Journal.RecordOrder: %w", err)
	}
	return nil
}

// RecordFill appends one fill.
func (j *Journal) RecordFill(ctx context.Context, rec domain.FillRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO fills (side, price, qty, capital_after, filled_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(rec.Side), rec.Price, rec.Qty, rec.CapitalAfter, rec.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.Journal.RecordFill: %w", err)
	}
	return nil
}

// RecordGame appends the end-of-game summary.
func (j *Journal) RecordGame(ctx context.Context, s domain.GameSummary) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO games (position, avg_cost, realized_pnl, unrealized_pnl, capital, orders, fills, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Position, s.AvgCost, s.RealizedPnL, s.UnrealizedPnL,
		s.Capital, s.Orders, s.Fills, s.EndedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.Journal.RecordGame: %w", err)
	}
	return nil
}

// CountGames returns how many finished games the journal holds.
func (j *Journal) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage.Journal.CountGames: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
