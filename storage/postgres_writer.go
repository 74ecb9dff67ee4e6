package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"laptop-etl/models"
)

// PostgresWriter publishes the active current slice to PostgreSQL for
// dashboards that cannot read the SQLite files directly.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS laptops_current (
			id                 SERIAL PRIMARY KEY,
			product_hash       VARCHAR(64) UNIQUE NOT NULL,
			product_name       TEXT        NOT NULL,
			brand              VARCHAR(50) NOT NULL DEFAULT '',
			series             VARCHAR(80) NOT NULL DEFAULT '',
			processor_detail   TEXT        NOT NULL DEFAULT '',
			processor_category VARCHAR(80) NOT NULL DEFAULT '',
			gpu                TEXT        NOT NULL DEFAULT '',
			gpu_category       VARCHAR(80) NOT NULL DEFAULT '',
			ram                VARCHAR(20) NOT NULL DEFAULT '',
			storage            VARCHAR(20) NOT NULL DEFAULT '',
			display            VARCHAR(20) NOT NULL DEFAULT '',
			price_raw          BIGINT      NOT NULL DEFAULT 0,
			price_in_millions  NUMERIC(12,3) NOT NULL DEFAULT 0,
			valid_from         TIMESTAMPTZ NOT NULL,
			published_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_laptops_brand        ON laptops_current(brand);
		CREATE INDEX IF NOT EXISTS idx_laptops_gpu_category ON laptops_current(gpu_category);
		CREATE INDEX IF NOT EXISTS idx_laptops_price        ON laptops_current(price_in_millions);
	`)
	return err
}

// Clear deletes the previously published slice.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM laptops_current")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Publish batch-inserts the active versions, replacing the previous slice.
func (pw *PostgresWriter) Publish(versions []*models.ProductVersion) error {
	if len(versions) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(versions); i += batchSize {
		end := i + batchSize
		if end > len(versions) {
			end = len(versions)
		}
		if err := pw.insertBatch(versions[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.ProductVersion) error {
	const cols = 14
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, v := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			v.ProductHash, v.ProductName, v.Brand, v.Series,
			v.ProcessorDetail, v.ProcessorCategory, v.GPU, v.GPUCategory,
			v.RAM, v.Storage, v.Display,
			v.PriceRaw, v.PriceInMillions, v.ValidFrom)
	}

	query := fmt.Sprintf(`
		INSERT INTO laptops_current (
			product_hash, product_name, brand, series,
			processor_detail, processor_category, gpu, gpu_category,
			ram, storage, display,
			price_raw, price_in_millions, valid_from
		)
		VALUES %s
		ON CONFLICT (product_hash) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
