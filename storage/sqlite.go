package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"laptop-etl/models"
)

// Timestamps are stored as RFC 3339 UTC strings at seconds precision so
// round-tripped values compare equal.
func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	return db, nil
}

// SQLiteRawStore is the raw observation buffer backed by its own database
// file, mirroring the scraper-side schema.
type SQLiteRawStore struct {
	db *sql.DB
}

func OpenRawStore(path string) (*SQLiteRawStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS product_raw (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			product_name TEXT    NOT NULL,
			price_raw    INTEGER NOT NULL,
			scraped_at   TEXT    NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap raw schema: %w", err)
	}
	return &SQLiteRawStore{db: db}, nil
}

func (s *SQLiteRawStore) InsertRaw(products []*models.RawProduct) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin raw insert: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO product_raw (product_name, price_raw, scraped_at) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: prepare raw insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.ProductName, p.PriceRaw, formatTime(p.ScrapedAt)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite: insert raw row: %w", err)
		}
	}
	return tx.Commit()
}

// LoadRaw returns every buffered observation, newest first. A raw table
// missing the name or price column is an input contract violation and
// fails loudly rather than yielding empty rows.
func (s *SQLiteRawStore) LoadRaw() ([]*models.RawProduct, error) {
	if err := s.checkRawColumns(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, product_name, price_raw, scraped_at FROM product_raw ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load raw: %w", err)
	}
	defer rows.Close()

	var out []*models.RawProduct
	for rows.Next() {
		p := &models.RawProduct{}
		var scrapedAt sql.NullString
		if err := rows.Scan(&p.ID, &p.ProductName, &p.PriceRaw, &scrapedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan raw row: %w", err)
		}
		if scrapedAt.Valid {
			if t, err := parseTime(scrapedAt.String); err == nil {
				p.ScrapedAt = t
			}
		}
		if p.ScrapedAt.IsZero() {
			p.ScrapedAt = time.Now().UTC()
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteRawStore) checkRawColumns() error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('product_raw')`)
	if err != nil {
		return fmt.Errorf("sqlite: inspect raw schema: %w", err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("sqlite: scan raw schema: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, required := range []string{"product_name", "price_raw"} {
		if !cols[required] {
			return fmt.Errorf("sqlite: raw table missing required column %q", required)
		}
	}
	return nil
}

func (s *SQLiteRawStore) Close() error { return s.db.Close() }

const versionColumns = `
	raw_id, product_hash, product_name, brand, series,
	processor_detail, processor_category, gpu, gpu_category,
	ram, storage, display, price_raw, price_in_millions,
	processed_at, valid_from, valid_to, is_active`

func versionArgs(v *models.ProductVersion) []any {
	var validTo any
	if v.ValidTo != nil {
		validTo = formatTime(*v.ValidTo)
	}
	active := 0
	if v.IsActive {
		active = 1
	}
	return []any{
		v.RawID, v.ProductHash, v.ProductName, v.Brand, v.Series,
		v.ProcessorDetail, v.ProcessorCategory, v.GPU, v.GPUCategory,
		v.RAM, v.Storage, v.Display, v.PriceRaw, v.PriceInMillions,
		formatTime(v.ProcessedAt), formatTime(v.ValidFrom), validTo, active,
	}
}

func scanVersion(rows *sql.Rows) (*models.ProductVersion, error) {
	v := &models.ProductVersion{}
	var processedAt, validFrom string
	var validTo sql.NullString
	var active int
	if err := rows.Scan(
		&v.ProductID, &v.RawID, &v.ProductHash, &v.ProductName, &v.Brand, &v.Series,
		&v.ProcessorDetail, &v.ProcessorCategory, &v.GPU, &v.GPUCategory,
		&v.RAM, &v.Storage, &v.Display, &v.PriceRaw, &v.PriceInMillions,
		&processedAt, &validFrom, &validTo, &active,
	); err != nil {
		return nil, err
	}
	if t, err := parseTime(processedAt); err == nil {
		v.ProcessedAt = t
	}
	if t, err := parseTime(validFrom); err == nil {
		v.ValidFrom = t
	}
	if validTo.Valid {
		if t, err := parseTime(validTo.String); err == nil {
			v.ValidTo = &t
		}
	}
	v.IsActive = active == 1
	return v, nil
}

// SQLiteCurrentStore is the versioned current table.
type SQLiteCurrentStore struct {
	db *sql.DB
}

func OpenCurrentStore(path string) (*SQLiteCurrentStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS products_current (
			product_id         INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_id             INTEGER,
			product_hash       TEXT NOT NULL,
			product_name       TEXT,
			brand              TEXT,
			series             TEXT,
			processor_detail   TEXT,
			processor_category TEXT,
			gpu                TEXT,
			gpu_category       TEXT,
			ram                TEXT,
			storage            TEXT,
			display            TEXT,
			price_raw          INTEGER,
			price_in_millions  REAL,
			processed_at       TEXT,
			valid_from         TEXT,
			valid_to           TEXT,
			is_active          INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_current_hash ON products_current(product_hash);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap current schema: %w", err)
	}
	return &SQLiteCurrentStore{db: db}, nil
}

func (s *SQLiteCurrentStore) ActiveVersions() ([]*models.ProductVersion, error) {
	rows, err := s.db.Query(`SELECT product_id,` + versionColumns + ` FROM products_current WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load active versions: %w", err)
	}
	defer rows.Close()

	var out []*models.ProductVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan current row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteCurrentStore) InsertVersion(v *models.ProductVersion) error {
	res, err := s.db.Exec(`INSERT INTO products_current (`+versionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, versionArgs(v)...)
	if err != nil {
		return fmt.Errorf("sqlite: insert current version: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		v.ProductID = id
	}
	return nil
}

func (s *SQLiteCurrentStore) CloseVersion(productID int64, at time.Time) error {
	_, err := s.db.Exec(`UPDATE products_current SET is_active = 0, valid_to = ? WHERE product_id = ?`,
		formatTime(at), productID)
	if err != nil {
		return fmt.Errorf("sqlite: close version %d: %w", productID, err)
	}
	return nil
}

func (s *SQLiteCurrentStore) Close() error { return s.db.Close() }

// SQLiteHistoryStore is the append-only archive of closed versions.
type SQLiteHistoryStore struct {
	db *sql.DB
}

func OpenHistoryStore(path string) (*SQLiteHistoryStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS products_history (
			history_id         INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_id             INTEGER,
			product_hash       TEXT NOT NULL,
			product_name       TEXT,
			brand              TEXT,
			series             TEXT,
			processor_detail   TEXT,
			processor_category TEXT,
			gpu                TEXT,
			gpu_category       TEXT,
			ram                TEXT,
			storage            TEXT,
			display            TEXT,
			price_raw          INTEGER,
			price_in_millions  REAL,
			processed_at       TEXT,
			valid_from         TEXT,
			valid_to           TEXT,
			is_active          INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_history_hash ON products_history(product_hash);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap history schema: %w", err)
	}
	return &SQLiteHistoryStore{db: db}, nil
}

// Archive appends a closed copy of the version. History rows are never
// active regardless of the state the copy arrived in.
func (s *SQLiteHistoryStore) Archive(v *models.ProductVersion) error {
	row := *v
	row.IsActive = false
	_, err := s.db.Exec(`INSERT INTO products_history (`+versionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, versionArgs(&row)...)
	if err != nil {
		return fmt.Errorf("sqlite: archive version: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Close() error { return s.db.Close() }

// SQLiteMetaStore holds the run ledger and the change log.
type SQLiteMetaStore struct {
	db *sql.DB
}

func OpenMetaStore(path string) (*SQLiteMetaStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS etl_runs (
			run_id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at       TEXT    NOT NULL,
			input_source TEXT    NOT NULL,
			rows_input   INTEGER NOT NULL,
			stats_json   TEXT    NOT NULL
		);
		CREATE TABLE IF NOT EXISTS changes_log (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER,
			product_hash TEXT NOT NULL,
			change_type  TEXT NOT NULL,
			details_json TEXT,
			changed_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_changes_hash ON changes_log(product_hash);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap meta schema: %w", err)
	}
	return &SQLiteMetaStore{db: db}, nil
}

func (s *SQLiteMetaStore) LogChange(entry *models.ChangeEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("sqlite: marshal change details: %w", err)
	}
	var runID any
	if entry.RunID != nil {
		runID = *entry.RunID
	}
	res, err := s.db.Exec(`INSERT INTO changes_log (run_id, product_hash, change_type, details_json, changed_at)
		VALUES (?, ?, ?, ?, ?)`,
		runID, entry.ProductHash, entry.ChangeType, string(details), formatTime(entry.ChangedAt))
	if err != nil {
		return fmt.Errorf("sqlite: log change: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

func (s *SQLiteMetaStore) RecordRun(rec *models.RunRecord) (int64, error) {
	stats, err := json.Marshal(rec.Stats)
	if err != nil {
		return 0, fmt.Errorf("sqlite: marshal run stats: %w", err)
	}
	res, err := s.db.Exec(`INSERT INTO etl_runs (run_at, input_source, rows_input, stats_json)
		VALUES (?, ?, ?, ?)`,
		formatTime(rec.RunAt), rec.InputSource, rec.RowsInput, string(stats))
	if err != nil {
		return 0, fmt.Errorf("sqlite: record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: run id: %w", err)
	}
	rec.RunID = id
	return id, nil
}

// AttachPendingChanges stamps the run id onto every change row logged
// before the ledger entry existed.
func (s *SQLiteMetaStore) AttachPendingChanges(runID int64) error {
	_, err := s.db.Exec(`UPDATE changes_log SET run_id = ? WHERE run_id IS NULL`, runID)
	if err != nil {
		return fmt.Errorf("sqlite: attach pending changes: %w", err)
	}
	return nil
}

// PendingChanges returns the change rows still missing a run id, oldest
// first. Used by tests and the insight report.
func (s *SQLiteMetaStore) PendingChanges() ([]*models.ChangeEntry, error) {
	return s.queryChanges(`SELECT id, run_id, product_hash, change_type, details_json, changed_at
		FROM changes_log WHERE run_id IS NULL ORDER BY id`)
}

// ChangesForRun returns every change attributed to one run.
func (s *SQLiteMetaStore) ChangesForRun(runID int64) ([]*models.ChangeEntry, error) {
	return s.queryChanges(`SELECT id, run_id, product_hash, change_type, details_json, changed_at
		FROM changes_log WHERE run_id = ? ORDER BY id`, runID)
}

func (s *SQLiteMetaStore) queryChanges(query string, args ...any) ([]*models.ChangeEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load changes: %w", err)
	}
	defer rows.Close()

	var out []*models.ChangeEntry
	for rows.Next() {
		e := &models.ChangeEntry{}
		var runID sql.NullInt64
		var details sql.NullString
		var changedAt string
		if err := rows.Scan(&e.ID, &runID, &e.ProductHash, &e.ChangeType, &details, &changedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan change row: %w", err)
		}
		if runID.Valid {
			id := runID.Int64
			e.RunID = &id
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("sqlite: decode change details: %w", err)
			}
		}
		if t, err := parseTime(changedAt); err == nil {
			e.ChangedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteMetaStore) Close() error { return s.db.Close() }
