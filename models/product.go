package models

import (
	"strconv"
	"time"
)

// RawProduct holds one unprocessed (name, price) observation straight from
// the listing page. Rows live in the raw store until the next pipeline run.
type RawProduct struct {
	ID          int64
	ProductName string
	PriceRaw    int64
	ScrapedAt   time.Time
}

// Product is one enriched snapshot row: the latest raw observation for a
// business key plus every extracted attribute. Categorical fields carry
// their extractor's "Unknown …" sentinel when nothing matched.
type Product struct {
	RawID             int64
	ProductHash       string
	ProductName       string
	Brand             string
	Series            string
	ProcessorDetail   string
	ProcessorCategory string
	GPU               string
	GPUCategory       string
	RAM               string
	Storage           string
	Display           string
	PriceRaw          int64
	PriceInMillions   float64
	ProcessedAt       time.Time
}

// ProductVersion is one SCD2 row in the current or history store.
// ValidTo is nil while the version is open.
type ProductVersion struct {
	ProductID int64
	Product
	ValidFrom time.Time
	ValidTo   *time.Time
	IsActive  bool
}

// Change types recorded in the changes log.
const (
	ChangeNew             = "new"
	ChangePriceUpdate     = "price_update"
	ChangeAttributeUpdate = "attribute_update"
	ChangeDiscontinued    = "discontinued"
)

// FieldDiff is the {old, new} pair stored per changed attribute.
type FieldDiff struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ChangeEntry is one row of the changes log. RunID stays nil until the run
// ledger backfills it after the enclosing run row is written.
type ChangeEntry struct {
	ID          int64
	RunID       *int64
	ProductHash string
	ChangeType  string
	Details     map[string]any
	ChangedAt   time.Time
}

// RunRecord is the audit row written once per pipeline execution.
type RunRecord struct {
	RunID       int64
	RunAt       time.Time
	InputSource string
	RowsInput   int
	Stats       RunStats
}

// RunStats summarizes one reconciliation pass.
type RunStats struct {
	NewProducts      int `json:"new_products"`
	PriceUpdates     int `json:"price_updates"`
	AttributeUpdates int `json:"attribute_updates"`
	Discontinued     int `json:"discontinued"`
	Unchanged        int `json:"unchanged"`
	DuplicatesInRaw  int `json:"duplicates_in_raw"`
}

// TrackedAttributes is the authoritative list of attributes that participate
// in change detection. The reconciler and the row schema share this list;
// adding an extracted attribute here is a deliberate decision to make it
// versioned.
var TrackedAttributes = []string{
	"product_name",
	"brand",
	"series",
	"processor_detail",
	"processor_category",
	"gpu",
	"gpu_category",
	"ram",
	"storage",
	"display",
	"price_raw",
}

// TrackedValue returns the product's value for one tracked attribute,
// normalized to a string for comparison.
func (p *Product) TrackedValue(attr string) string {
	switch attr {
	case "product_name":
		return p.ProductName
	case "brand":
		return p.Brand
	case "series":
		return p.Series
	case "processor_detail":
		return p.ProcessorDetail
	case "processor_category":
		return p.ProcessorCategory
	case "gpu":
		return p.GPU
	case "gpu_category":
		return p.GPUCategory
	case "ram":
		return p.RAM
	case "storage":
		return p.Storage
	case "display":
		return p.Display
	case "price_raw":
		return strconv.FormatInt(p.PriceRaw, 10)
	}
	return ""
}

// RawTrackedValue returns the attribute's native value for diff payloads
// (price stays numeric in the change log, everything else is a string).
func (p *Product) RawTrackedValue(attr string) any {
	if attr == "price_raw" {
		return p.PriceRaw
	}
	return p.TrackedValue(attr)
}

// InsightReport holds the computed analytics over the active current table.
type InsightReport struct {
	TotalActive     int
	ByBrand         map[string]int
	ByGPUCategory   map[string]int
	AveragePrice    float64
	MinPrice        float64
	MaxPrice        float64
	MostExpensive   *ProductVersion
	UnknownCoverage map[string]float64
}
