package services

import (
	"path/filepath"
	"testing"
	"time"

	"laptop-etl/models"
	"laptop-etl/storage"
	"laptop-etl/utils"
)

type testStores struct {
	current *storage.SQLiteCurrentStore
	history *storage.SQLiteHistoryStore
	meta    *storage.SQLiteMetaStore
}

func openTestStores(t *testing.T) *testStores {
	t.Helper()
	dir := t.TempDir()

	current, err := storage.OpenCurrentStore(filepath.Join(dir, "current.db"))
	if err != nil {
		t.Fatalf("open current store: %v", err)
	}
	history, err := storage.OpenHistoryStore(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open history store: %v", err)
	}
	meta, err := storage.OpenMetaStore(filepath.Join(dir, "meta.db"))
	if err != nil {
		t.Fatalf("open meta store: %v", err)
	}
	t.Cleanup(func() {
		current.Close()
		history.Close()
		meta.Close()
	})
	return &testStores{current: current, history: history, meta: meta}
}

func buildSnapshot(t *testing.T, at time.Time, raw ...*models.RawProduct) *Snapshot {
	t.Helper()
	return NewSnapshotBuilder(utils.NewLogger()).Build(raw, at)
}

func TestReconcileNewProducts(t *testing.T) {
	stores := openTestStores(t)
	rec := NewReconciler(stores.current, stores.history, stores.meta, utils.NewLogger())
	runAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	snap := buildSnapshot(t, runAt,
		&models.RawProduct{ID: 1, ProductName: "ASUS ROG Strix G513QY 16GB 512GB SSD", PriceRaw: 15_499_000, ScrapedAt: runAt},
		&models.RawProduct{ID: 2, ProductName: "Lenovo IdeaPad Slim 3", PriceRaw: 6_200_000, ScrapedAt: runAt},
	)

	stats, err := rec.Reconcile(snap, runAt)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if stats.NewProducts != 2 {
		t.Errorf("NewProducts = %d, want 2", stats.NewProducts)
	}
	if stats.Unchanged != 0 || stats.Discontinued != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	active, err := stores.current.ActiveVersions()
	if err != nil {
		t.Fatalf("ActiveVersions: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active rows = %d, want 2", len(active))
	}
	for _, v := range active {
		if !v.IsActive || v.ValidTo != nil {
			t.Errorf("new version for %q is not an open row", v.ProductName)
		}
		if !v.ValidFrom.Equal(runAt.Truncate(time.Second)) && !v.ValidFrom.Equal(runAt) {
			t.Errorf("ValidFrom = %v, want run time", v.ValidFrom)
		}
	}

	changes, err := stores.meta.PendingChanges()
	if err != nil {
		t.Fatalf("PendingChanges: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("pending changes = %d, want 2", len(changes))
	}
	for _, c := range changes {
		if c.ChangeType != models.ChangeNew {
			t.Errorf("change type = %q, want %q", c.ChangeType, models.ChangeNew)
		}
		if c.RunID != nil {
			t.Errorf("change %d already has a run id before the ledger ran", c.ID)
		}
	}
}

func TestReconcileIdenticalRunIsUnchanged(t *testing.T) {
	stores := openTestStores(t)
	rec := NewReconciler(stores.current, stores.history, stores.meta, utils.NewLogger())
	runAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	raw := []*models.RawProduct{
		{ID: 1, ProductName: "ASUS ROG Strix G513QY 16GB 512GB SSD", PriceRaw: 15_499_000, ScrapedAt: runAt},
		{ID: 2, ProductName: "Lenovo IdeaPad Slim 3", PriceRaw: 6_200_000, ScrapedAt: runAt},
	}

	if _, err := rec.Reconcile(buildSnapshot(t, runAt, raw...), runAt); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	secondAt := runAt.Add(24 * time.Hour)
	stats, err := rec.Reconcile(buildSnapshot(t, secondAt, raw...), secondAt)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if stats.Unchanged != 2 {
		t.Errorf("Unchanged = %d, want 2", stats.Unchanged)
	}
	if stats.NewProducts != 0 || stats.PriceUpdates != 0 || stats.AttributeUpdates != 0 || stats.Discontinued != 0 {
		t.Errorf("identical run produced transitions: %+v", stats)
	}

	active, err := stores.current.ActiveVersions()
	if err != nil {
		t.Fatalf("ActiveVersions: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active rows = %d, want 2 after identical rerun", len(active))
	}
}

func TestReconcilePriceOnlyUpdate(t *testing.T) {
	stores := openTestStores(t)
	rec := NewReconciler(stores.current, stores.history, stores.meta, utils.NewLogger())
	firstAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	name := "ASUS ROG Strix G513QY 16GB 512GB SSD"
	if _, err := rec.Reconcile(buildSnapshot(t, firstAt,
		&models.RawProduct{ID: 1, ProductName: name, PriceRaw: 15_499_000, ScrapedAt: firstAt},
	), firstAt); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	secondAt := firstAt.Add(24 * time.Hour)
	stats, err := rec.Reconcile(buildSnapshot(t, secondAt,
		&models.RawProduct{ID: 2, ProductName: name, PriceRaw: 14_999_000, ScrapedAt: secondAt},
	), secondAt)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if stats.PriceUpdates != 1 {
		t.Errorf("PriceUpdates = %d, want 1", stats.PriceUpdates)
	}
	if stats.AttributeUpdates != 0 {
		t.Errorf("AttributeUpdates = %d, want 0 for a price-only change", stats.AttributeUpdates)
	}

	active, err := stores.current.ActiveVersions()
	if err != nil {
		t.Fatalf("ActiveVersions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active rows = %d, want 1", len(active))
	}
	if active[0].PriceRaw != 14_999_000 {
		t.Errorf("active PriceRaw = %d, want the new price", active[0].PriceRaw)
	}

	changes, err := stores.meta.PendingChanges()
	if err != nil {
		t.Fatalf("PendingChanges: %v", err)
	}
	var priceChange *models.ChangeEntry
	for _, c := range changes {
		if c.ChangeType == models.ChangePriceUpdate {
			priceChange = c
		}
	}
	if priceChange == nil {
		t.Fatalf("no price_update entry in change log")
	}
	diff, ok := priceChange.Details["price_raw"].(map[string]any)
	if !ok {
		t.Fatalf("price_update details missing price_raw diff: %v", priceChange.Details)
	}
	// JSON round-trips numbers as float64.
	if diff["old"] != float64(15_499_000) || diff["new"] != float64(14_999_000) {
		t.Errorf("price diff = %v, want old 15499000 new 14999000", diff)
	}
}

func TestReconcileCombinedChangeIsAttributeUpdate(t *testing.T) {
	stores := openTestStores(t)
	rec := NewReconciler(stores.current, stores.history, stores.meta, utils.NewLogger())
	firstAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	base := models.Product{
		ProductHash: ProductHash("MSI Katana 15 B13VEK"),
		ProductName: "MSI Katana 15 B13VEK",
		Brand:       "MSI",
		RAM:         "8GB",
		PriceRaw:    14_999_000,
	}
	if _, err := rec.Reconcile(&Snapshot{Products: []*models.Product{&base}}, firstAt); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	// The relisted unit carries more RAM and a new price; one version
	// change, classified by the non-price attribute.
	updated := base
	updated.RAM = "16GB"
	updated.PriceRaw = 15_999_000

	secondAt := firstAt.Add(24 * time.Hour)
	stats, err := rec.Reconcile(&Snapshot{Products: []*models.Product{&updated}}, secondAt)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if stats.AttributeUpdates != 1 {
		t.Errorf("AttributeUpdates = %d, want 1", stats.AttributeUpdates)
	}
	if stats.PriceUpdates != 0 {
		t.Errorf("PriceUpdates = %d, want 0 when an attribute changed too", stats.PriceUpdates)
	}

	changes, err := stores.meta.PendingChanges()
	if err != nil {
		t.Fatalf("PendingChanges: %v", err)
	}
	var update *models.ChangeEntry
	for _, c := range changes {
		if c.ChangeType == models.ChangeAttributeUpdate {
			update = c
		}
	}
	if update == nil {
		t.Fatalf("no attribute_update entry in change log")
	}
	ramDiff, ok := update.Details["ram"].(map[string]any)
	if !ok {
		t.Fatalf("details missing ram diff: %v", update.Details)
	}
	if ramDiff["old"] != "8GB" || ramDiff["new"] != "16GB" {
		t.Errorf("ram diff = %v, want old 8GB new 16GB", ramDiff)
	}
	priceDiff, ok := update.Details["price_raw"].(map[string]any)
	if !ok {
		t.Fatalf("details missing price_raw diff: %v", update.Details)
	}
	// JSON round-trips numbers as float64.
	if priceDiff["old"] != float64(14_999_000) || priceDiff["new"] != float64(15_999_000) {
		t.Errorf("price diff = %v, want old 14999000 new 15999000", priceDiff)
	}
}

func TestReconcileDiscontinued(t *testing.T) {
	stores := openTestStores(t)
	rec := NewReconciler(stores.current, stores.history, stores.meta, utils.NewLogger())
	firstAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	if _, err := rec.Reconcile(buildSnapshot(t, firstAt,
		&models.RawProduct{ID: 1, ProductName: "ASUS ROG Strix G513QY 16GB 512GB SSD", PriceRaw: 15_499_000, ScrapedAt: firstAt},
		&models.RawProduct{ID: 2, ProductName: "Lenovo IdeaPad Slim 3", PriceRaw: 6_200_000, ScrapedAt: firstAt},
	), firstAt); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	secondAt := firstAt.Add(24 * time.Hour)
	stats, err := rec.Reconcile(buildSnapshot(t, secondAt,
		&models.RawProduct{ID: 3, ProductName: "Lenovo IdeaPad Slim 3", PriceRaw: 6_200_000, ScrapedAt: secondAt},
	), secondAt)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if stats.Discontinued != 1 {
		t.Errorf("Discontinued = %d, want 1", stats.Discontinued)
	}
	if stats.Unchanged != 1 {
		t.Errorf("Unchanged = %d, want 1", stats.Unchanged)
	}

	active, err := stores.current.ActiveVersions()
	if err != nil {
		t.Fatalf("ActiveVersions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active rows = %d, want 1", len(active))
	}
	if active[0].ProductName != "Lenovo IdeaPad Slim 3" {
		t.Errorf("surviving row = %q, want the IdeaPad", active[0].ProductName)
	}
}

func TestLedgerBackfillsChangeRunIDs(t *testing.T) {
	stores := openTestStores(t)
	logger := utils.NewLogger()
	rec := NewReconciler(stores.current, stores.history, stores.meta, logger)
	ledger := NewLedger(stores.meta, logger)
	runAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	snap := buildSnapshot(t, runAt,
		&models.RawProduct{ID: 1, ProductName: "Acer Nitro 5 AN515", PriceRaw: 11_000_000, ScrapedAt: runAt},
	)
	stats, err := rec.Reconcile(snap, runAt)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	runID, err := ledger.Record("sqlite", 1, stats, runAt)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if runID == 0 {
		t.Fatalf("Record returned run id 0")
	}

	pending, err := stores.meta.PendingChanges()
	if err != nil {
		t.Fatalf("PendingChanges: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("%d change rows still pending after ledger ran", len(pending))
	}

	attributed, err := stores.meta.ChangesForRun(runID)
	if err != nil {
		t.Fatalf("ChangesForRun: %v", err)
	}
	if len(attributed) != 1 {
		t.Fatalf("changes for run %d = %d, want 1", runID, len(attributed))
	}
	if attributed[0].ChangeType != models.ChangeNew {
		t.Errorf("change type = %q, want %q", attributed[0].ChangeType, models.ChangeNew)
	}
}
