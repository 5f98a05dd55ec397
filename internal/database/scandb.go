package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/webrecon/domainscan/internal/model"
)

// ScanDB provides SQLite-based storage for scan history.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all scanned domains
// rather than a file per domain. This keeps listing and cross-domain
// queries simple and makes backup a one-file operation.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "domainscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent batch scans.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Scan records store complete scan reports as JSON plus indexed columns
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		host TEXT NOT NULL,
		url TEXT NOT NULL,
		date_scanned DATETIME NOT NULL,
		page_hash TEXT,
		degraded INTEGER DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_host ON scans(host);
	CREATE INDEX IF NOT EXISTS idx_scans_date ON scans(date_scanned);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// ScanRecord is a stored scan summary without the full report body.
type ScanRecord struct {
	ID          int64
	Host        string
	URL         string
	DateScanned time.Time
	PageHash    string
	Degraded    int
}

// SaveReport stores a completed scan report.
// Returns the record id of the inserted row.
func (sdb *ScanDB) SaveReport(ctx context.Context, report *model.DomainReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	pageHash := ""
	if report.Page != nil {
		pageHash = report.Page.Hash
	}

	query := `
	INSERT INTO scans (host, url, date_scanned, page_hash, degraded, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		report.Target.Host,
		report.Target.URL,
		report.DateScanned.UTC().Format("2006-01-02 15:04:05"),
		pageHash,
		len(report.Degraded),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan report: %w", err)
	}

	return result.LastInsertId()
}

// GetReport retrieves a stored report by record id.
// Returns nil when no record with that id exists.
func (sdb *ScanDB) GetReport(ctx context.Context, id int64) (*model.DomainReport, error) {
	query := `SELECT report_json FROM scans WHERE id = ?`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.DomainReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetLatestReport retrieves the most recent scan report for a host.
// Returns nil when the host was never scanned.
func (sdb *ScanDB) GetLatestReport(ctx context.Context, host string) (*model.DomainReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE host = ?
	ORDER BY date_scanned DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, host).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.DomainReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListScans returns scan summaries, newest first.
// When host is non-empty only that host's scans are returned.
func (sdb *ScanDB) ListScans(ctx context.Context, host string) ([]ScanRecord, error) {
	query := `
	SELECT id, host, url, date_scanned, page_hash, degraded
	FROM scans
	`
	args := make([]any, 0)

	if host != "" {
		query += " WHERE host = ?"
		args = append(args, host)
	}
	query += " ORDER BY date_scanned DESC, id DESC"

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []ScanRecord
	for rows.Next() {
		var record ScanRecord
		var timestamp string

		if err := rows.Scan(
			&record.ID,
			&record.Host,
			&record.URL,
			&timestamp,
			&record.PageHash,
			&record.Degraded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		record.DateScanned = parseTimestamp(timestamp)
		results = append(results, record)
	}

	return results, rows.Err()
}

// ListDomains returns all distinct scanned hosts in alphabetical order.
func (sdb *ScanDB) ListDomains(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT host FROM scans ORDER BY host`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var host string
		if err := rows.Scan(&host); err != nil {
			return nil, fmt.Errorf("failed to scan host: %w", err)
		}
		domains = append(domains, host)
	}

	return domains, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
