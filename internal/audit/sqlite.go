package audit

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id                 TEXT PRIMARY KEY,
	timestamp          DATETIME NOT NULL,
	type               TEXT NOT NULL,
	endpoint           TEXT NOT NULL,
	estimated_cost_usd REAL NOT NULL,
	ok                 INTEGER NOT NULL,
	latency_ms         INTEGER NOT NULL,
	error              TEXT NOT NULL DEFAULT '',
	note               TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log (timestamp);
`

// SQLiteLogger persists audit entries to a local SQLite database and serves
// the read side for the audit CLI commands.
type SQLiteLogger struct {
	db *sql.DB
}

// NewSQLiteLogger opens the database at path (":memory:" works for tests)
// and ensures the schema exists.
func NewSQLiteLogger(path string) (*SQLiteLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db %s: %w", path, err)
	}
	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &SQLiteLogger{db: db}, nil
}

// Write inserts one entry. Failures are logged, never returned.
func (l *SQLiteLogger) Write(entry Entry) {
	stamp(&entry)

	_, err := l.db.Exec(`
		INSERT INTO audit_log (id, timestamp, type, endpoint, estimated_cost_usd, ok, latency_ms, error, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp,
		entry.Type,
		entry.Endpoint,
		entry.EstimatedCostUSD,
		entry.OK,
		entry.LatencyMs,
		entry.Error,
		entry.Note,
	)
	if err != nil {
		log.Warnf("audit: failed to insert entry for %s: %v", entry.Endpoint, err)
	}
}

// List returns entries newest first.
func (l *SQLiteLogger) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, timestamp, type, endpoint, estimated_cost_usd, ok, latency_ms, error, note
		FROM audit_log
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query audit_log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.Endpoint,
			&e.EstimatedCostUSD, &e.OK, &e.LatencyMs, &e.Error, &e.Note); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary aggregates the whole trail: total estimated spend of successful
// calls, total call count, and failure count.
func (l *SQLiteLogger) Summary(ctx context.Context) (totalCostUSD float64, calls, failures int64, err error) {
	err = l.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN ok THEN estimated_cost_usd ELSE 0 END), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN ok THEN 0 ELSE 1 END), 0)
		FROM audit_log
		WHERE type = ?`, TypeAPICall).Scan(&totalCostUSD, &calls, &failures)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("summarize audit_log: %w", err)
	}
	return totalCostUSD, calls, failures, nil
}

func (l *SQLiteLogger) Close() error {
	return l.db.Close()
}
