package services

import (
	"time"

	"laptop-etl/models"
	"laptop-etl/storage"
	"laptop-etl/utils"
)

// Ledger writes exactly one audit row per pipeline execution and stamps its
// run id onto the change entries logged during the run.
type Ledger struct {
	meta   storage.MetaStore
	logger *utils.Logger
}

func NewLedger(meta storage.MetaStore, logger *utils.Logger) *Ledger {
	return &Ledger{meta: meta, logger: logger}
}

// Record inserts the run row, then backfills run_id on every change entry
// still carrying NULL. Entries orphaned by a crash in an earlier run are
// picked up here too; entries orphaned by a crash before Record stay
// orphaned until the next successful run.
func (l *Ledger) Record(inputSource string, rowsInput int, stats models.RunStats, runAt time.Time) (int64, error) {
	runID, err := l.meta.RecordRun(&models.RunRecord{
		RunAt:       runAt,
		InputSource: inputSource,
		RowsInput:   rowsInput,
		Stats:       stats,
	})
	if err != nil {
		return 0, err
	}
	if err := l.meta.AttachPendingChanges(runID); err != nil {
		return 0, err
	}
	l.logger.Info("Ledger: recorded run %d (%d rows in, %d new, %d price, %d attr, %d discontinued, %d unchanged)",
		runID, rowsInput, stats.NewProducts, stats.PriceUpdates,
		stats.AttributeUpdates, stats.Discontinued, stats.Unchanged)
	return runID, nil
}
