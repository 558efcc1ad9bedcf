// Package state persists a journal of completed paste executions.
// The journal records transfer outcomes only; clipboard contents are
// never persisted.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quiverfm/quiver/internal/domain"
)

// Transfer status values
const (
	StatusSuccess   = "success"
	StatusPartial   = "partial"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Journal stores transfer records in SQLite
type Journal struct {
	db *sql.DB
}

// TransferRecord is a single recorded paste execution
type TransferRecord struct {
	ID           int64
	Kind         string // "copy" or "cut"
	Status       string
	FilesCopied  int
	FilesSkipped int
	FilesFailed  int
	Bytes        int64
	Duration     time.Duration
	Error        string
	StartedAt    time.Time
}

// RecordFromResult builds a transfer record from a paste result
func RecordFromResult(kind domain.OperationKind, result *domain.PasteResult, cancelled bool, startedAt time.Time) TransferRecord {
	status := StatusSuccess
	switch {
	case cancelled:
		status = StatusCancelled
	case len(result.FailedFiles) > 0 && len(result.SuccessfulFiles) == 0:
		status = StatusFailed
	case len(result.FailedFiles) > 0:
		status = StatusPartial
	}

	var firstErr string
	if len(result.FailedFiles) > 0 {
		firstErr = result.FailedFiles[0].Message
	}

	return TransferRecord{
		Kind:         kind.String(),
		Status:       status,
		FilesCopied:  len(result.SuccessfulFiles),
		FilesSkipped: len(result.SkippedFiles),
		FilesFailed:  len(result.FailedFiles),
		Bytes:        result.TotalBytesTransferred,
		Duration:     result.Duration,
		Error:        firstErr,
		StartedAt:    startedAt,
	}
}

// NewJournal opens (or creates) the journal database under dataDir
func NewJournal(dataDir string) (*Journal, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "transfers.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection avoids "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	journal := &Journal{db: db}

	if err := journal.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return journal, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transfers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		files_copied INTEGER DEFAULT 0,
		files_skipped INTEGER DEFAULT 0,
		files_failed INTEGER DEFAULT 0,
		bytes INTEGER DEFAULT 0,
		duration_ms INTEGER DEFAULT 0,
		error TEXT,
		started_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transfers_started ON transfers(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_transfers_status ON transfers(status);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record saves a transfer record
func (j *Journal) Record(record TransferRecord) error {
	switch record.Status {
	case StatusSuccess, StatusPartial, StatusCancelled, StatusFailed:
	default:
		return fmt.Errorf("invalid status: %s", record.Status)
	}

	query := `
		INSERT INTO transfers (kind, status, files_copied, files_skipped, files_failed, bytes, duration_ms, error, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.Exec(query,
		record.Kind,
		record.Status,
		record.FilesCopied,
		record.FilesSkipped,
		record.FilesFailed,
		record.Bytes,
		record.Duration.Milliseconds(),
		record.Error,
		record.StartedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save transfer record: %w", err)
	}

	return nil
}

// History retrieves the most recent transfer records, newest first
func (j *Journal) History(limit int) ([]TransferRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT id, kind, status, files_copied, files_skipped, files_failed, bytes, duration_ms, error, started_at
		FROM transfers
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := j.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []TransferRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// LastSuccess retrieves the most recent fully successful transfer
// Returns nil when none exists
func (j *Journal) LastSuccess() (*TransferRecord, error) {
	query := `
		SELECT id, kind, status, files_copied, files_skipped, files_failed, bytes, duration_ms, error, started_at
		FROM transfers
		WHERE status = 'success'
		ORDER BY started_at DESC
		LIMIT 1
	`

	row := j.db.QueryRow(query)

	var record TransferRecord
	var durationMS int64
	err := row.Scan(
		&record.ID,
		&record.Kind,
		&record.Status,
		&record.FilesCopied,
		&record.FilesSkipped,
		&record.FilesFailed,
		&record.Bytes,
		&durationMS,
		&record.Error,
		&record.StartedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last success: %w", err)
	}

	record.Duration = time.Duration(durationMS) * time.Millisecond
	return &record, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func scanRecord(rows *sql.Rows) (TransferRecord, error) {
	var record TransferRecord
	var durationMS int64
	err := rows.Scan(
		&record.ID,
		&record.Kind,
		&record.Status,
		&record.FilesCopied,
		&record.FilesSkipped,
		&record.FilesFailed,
		&record.Bytes,
		&durationMS,
		&record.Error,
		&record.StartedAt,
	)
	if err != nil {
		return record, fmt.Errorf("failed to scan record: %w", err)
	}
	record.Duration = time.Duration(durationMS) * time.Millisecond
	return record, nil
}
