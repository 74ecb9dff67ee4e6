package services

import (
	"testing"
	"time"

	"laptop-etl/models"
	"laptop-etl/utils"
)

func TestGuardRepairKeepsLatestVersion(t *testing.T) {
	stores := openTestStores(t)
	guard := NewGuard(stores.current, utils.NewLogger())

	hash := ProductHash("HP Victus 16 RTX 4060")
	older := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	// Two open rows for one key simulate a run that crashed between the
	// close and the reinsert.
	for _, from := range []time.Time{older, newer} {
		err := stores.current.InsertVersion(&models.ProductVersion{
			Product: models.Product{
				ProductHash: hash,
				ProductName: "HP Victus 16 RTX 4060",
				PriceRaw:    17_000_000,
			},
			ValidFrom: from,
			IsActive:  true,
		})
		if err != nil {
			t.Fatalf("InsertVersion: %v", err)
		}
	}

	closed, err := guard.Repair(newer.Add(time.Hour))
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if closed != 1 {
		t.Errorf("Repair closed %d rows, want 1", closed)
	}

	active, err := stores.current.ActiveVersions()
	if err != nil {
		t.Fatalf("ActiveVersions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active rows = %d, want 1", len(active))
	}
	if !active[0].ValidFrom.Equal(newer) {
		t.Errorf("surviving ValidFrom = %v, want the later version %v", active[0].ValidFrom, newer)
	}
}

func TestGuardRepairNoopOnHealthyTable(t *testing.T) {
	stores := openTestStores(t)
	guard := NewGuard(stores.current, utils.NewLogger())
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	err := stores.current.InsertVersion(&models.ProductVersion{
		Product:   models.Product{ProductHash: ProductHash("Dell XPS 13"), ProductName: "Dell XPS 13"},
		ValidFrom: at,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("InsertVersion: %v", err)
	}

	closed, err := guard.Repair(at.Add(time.Hour))
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if closed != 0 {
		t.Errorf("Repair closed %d rows on a healthy table, want 0", closed)
	}
}
