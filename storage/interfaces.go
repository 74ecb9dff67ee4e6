package storage

import (
	"time"

	"laptop-etl/models"
)

// RawStore buffers unprocessed (name, price) observations between the
// collector and the pipeline.
type RawStore interface {
	InsertRaw(products []*models.RawProduct) error
	LoadRaw() ([]*models.RawProduct, error)
	Close() error
}

// CurrentStore holds the versioned current table. One business key has at
// most one active row; the reconciler closes and inserts versions, the
// guard repairs any violation.
type CurrentStore interface {
	ActiveVersions() ([]*models.ProductVersion, error)
	InsertVersion(v *models.ProductVersion) error
	CloseVersion(productID int64, at time.Time) error
	Close() error
}

// HistoryStore receives append-only archival copies of closed versions.
type HistoryStore interface {
	Archive(v *models.ProductVersion) error
	Close() error
}

// MetaStore records the run ledger and the per-key change log.
type MetaStore interface {
	LogChange(entry *models.ChangeEntry) error
	RecordRun(rec *models.RunRecord) (int64, error)
	AttachPendingChanges(runID int64) error
	Close() error
}
