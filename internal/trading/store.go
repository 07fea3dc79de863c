// Package trading implements the mock trade executor and its pending
// approval workflow. Trades awaiting approval are persisted in an
// injected store keyed by an opaque id with an explicit expiry.
package trading

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a pending batch is missing or expired.
var ErrNotFound = errors.New("pending trades not found or expired")

// Store persists pending trade batches in SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS pending_trades (
    id TEXT PRIMARY KEY,
    investor_id TEXT NOT NULL,
    trades TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_investor ON pending_trades(investor_id);
CREATE INDEX IF NOT EXISTS idx_pending_expires ON pending_trades(expires_at);
`

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores trades as a pending batch and returns its opaque id.
func (s *Store) Save(ctx context.Context, investorID string, trades []Trade, ttl time.Duration) (string, error) {
	data, err := json.Marshal(trades)
	if err != nil {
		return "", fmt.Errorf("encoding trades: %w", err)
	}

	id := "pending-" + uuid.NewString()
	expiresAt := time.Now().UTC().Add(ttl)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pending_trades (id, investor_id, trades, expires_at) VALUES (?, ?, ?, ?)`,
		id, investorID, string(data), expiresAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("saving pending trades: %w", err)
	}
	return id, nil
}

// Get retrieves a pending batch by id and investor. Expired batches
// are treated as absent.
func (s *Store) Get(ctx context.Context, id, investorID string) ([]Trade, error) {
	var data string
	var expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT trades, expires_at FROM pending_trades WHERE id = ? AND investor_id = ? AND status = 'pending'`,
		id, investorID).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading pending trades: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().UTC().After(expiry) {
		return nil, ErrNotFound
	}

	var trades []Trade
	if err := json.Unmarshal([]byte(data), &trades); err != nil {
		return nil, fmt.Errorf("decoding trades: %w", err)
	}
	return trades, nil
}

// Delete removes a pending batch after execution.
func (s *Store) Delete(ctx context.Context, id, investorID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_trades WHERE id = ? AND investor_id = ?`, id, investorID)
	if err != nil {
		return fmt.Errorf("deleting pending trades: %w", err)
	}
	return nil
}

// PurgeExpired removes batches past their expiry and reports how many
// were deleted.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_trades WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purging expired trades: %w", err)
	}
	return res.RowsAffected()
}
