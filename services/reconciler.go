package services

import (
	"strings"
	"time"

	"laptop-etl/models"
	"laptop-etl/storage"
	"laptop-etl/utils"
)

// Reconciler applies one snapshot to the versioned current table, archiving
// every closed version and logging every transition.
type Reconciler struct {
	current storage.CurrentStore
	history storage.HistoryStore
	meta    storage.MetaStore
	logger  *utils.Logger
}

func NewReconciler(current storage.CurrentStore, history storage.HistoryStore, meta storage.MetaStore, logger *utils.Logger) *Reconciler {
	return &Reconciler{current: current, history: history, meta: meta, logger: logger}
}

// Reconcile runs the two-pass state transition: first close out every key
// that vanished from the snapshot, then upsert every snapshot row. The
// discontinued pass works against the pre-run active set, so a key cannot
// be both discontinued and re-inserted within one run. A storage failure
// on one key is logged and skips only that key.
func (r *Reconciler) Reconcile(snapshot *Snapshot, runAt time.Time) (models.RunStats, error) {
	stats := models.RunStats{DuplicatesInRaw: snapshot.DuplicatesInRaw}

	activeRows, err := r.current.ActiveVersions()
	if err != nil {
		return stats, err
	}
	active := make(map[string]*models.ProductVersion, len(activeRows))
	for _, v := range activeRows {
		active[v.ProductHash] = v
	}

	inSnapshot := make(map[string]bool, len(snapshot.Products))
	for _, p := range snapshot.Products {
		inSnapshot[p.ProductHash] = true
	}

	// Pass 1: discontinued.
	for hash, v := range active {
		if inSnapshot[hash] {
			continue
		}
		if err := r.retire(v, runAt); err != nil {
			r.logger.Error("Reconcile: discontinue %s: %v", shortHash(hash), err)
			continue
		}
		r.logChange(&models.ChangeEntry{
			ProductHash: hash,
			ChangeType:  models.ChangeDiscontinued,
			Details: map[string]any{
				"product_name": v.ProductName,
				"note":         "product missing from latest snapshot",
			},
			ChangedAt: runAt,
		})
		stats.Discontinued++
	}

	// Pass 2: upsert.
	for _, p := range snapshot.Products {
		prev, exists := active[p.ProductHash]
		if !exists {
			if err := r.insertActive(p, runAt); err != nil {
				r.logger.Error("Reconcile: insert %s: %v", shortHash(p.ProductHash), err)
				continue
			}
			r.logChange(&models.ChangeEntry{
				ProductHash: p.ProductHash,
				ChangeType:  models.ChangeNew,
				Details: map[string]any{
					"product_name": p.ProductName,
					"price_raw":    p.PriceRaw,
				},
				ChangedAt: runAt,
			})
			stats.NewProducts++
			continue
		}

		diff := trackedDiff(&prev.Product, p)
		if len(diff) == 0 {
			stats.Unchanged++
			continue
		}

		if err := r.retire(prev, runAt); err != nil {
			r.logger.Error("Reconcile: close %s: %v", shortHash(p.ProductHash), err)
			continue
		}
		if err := r.insertActive(p, runAt); err != nil {
			r.logger.Error("Reconcile: reinsert %s: %v", shortHash(p.ProductHash), err)
			continue
		}

		changeType := models.ChangeAttributeUpdate
		if len(diff) == 1 {
			if _, priceOnly := diff["price_raw"]; priceOnly {
				changeType = models.ChangePriceUpdate
			}
		}
		details := make(map[string]any, len(diff))
		for attr, d := range diff {
			details[attr] = d
		}
		r.logChange(&models.ChangeEntry{
			ProductHash: p.ProductHash,
			ChangeType:  changeType,
			Details:     details,
			ChangedAt:   runAt,
		})
		if changeType == models.ChangePriceUpdate {
			stats.PriceUpdates++
		} else {
			stats.AttributeUpdates++
		}
	}

	return stats, nil
}

// retire closes the active row and archives its pre-change state.
func (r *Reconciler) retire(v *models.ProductVersion, at time.Time) error {
	if err := r.current.CloseVersion(v.ProductID, at); err != nil {
		return err
	}
	closed := *v
	closed.ValidTo = &at
	closed.IsActive = false
	return r.history.Archive(&closed)
}

func (r *Reconciler) insertActive(p *models.Product, at time.Time) error {
	return r.current.InsertVersion(&models.ProductVersion{
		Product:   *p,
		ValidFrom: at,
		IsActive:  true,
	})
}

// logChange writes the entry with a null run id; the ledger backfills it
// once the run row exists. Logging failures never abort reconciliation.
func (r *Reconciler) logChange(entry *models.ChangeEntry) {
	if err := r.meta.LogChange(entry); err != nil {
		r.logger.Error("Reconcile: log %s change for %s: %v",
			entry.ChangeType, shortHash(entry.ProductHash), err)
	}
}

// trackedDiff compares the tracked attribute list value by value, string
// normalized, and returns the differing attributes with {old, new} pairs.
func trackedDiff(prev, next *models.Product) map[string]models.FieldDiff {
	diff := make(map[string]models.FieldDiff)
	for _, attr := range models.TrackedAttributes {
		if strings.TrimSpace(prev.TrackedValue(attr)) != strings.TrimSpace(next.TrackedValue(attr)) {
			diff[attr] = models.FieldDiff{
				Old: prev.RawTrackedValue(attr),
				New: next.RawTrackedValue(attr),
			}
		}
	}
	return diff
}

func shortHash(hash string) string {
	if len(hash) > 10 {
		return hash[:10]
	}
	return hash
}
