package services

import (
	"math"
	"strings"
	"time"

	"laptop-etl/extract"
	"laptop-etl/models"
	"laptop-etl/utils"
)

// Snapshot is one deduplicated, enriched view of the raw buffer: at most
// one Product per business key, all stamped with the same processed_at.
type Snapshot struct {
	Products        []*models.Product
	DuplicatesInRaw int
}

// SnapshotBuilder turns raw observations into enriched snapshot rows.
type SnapshotBuilder struct {
	logger *utils.Logger
	brands []string
}

func NewSnapshotBuilder(logger *utils.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{logger: logger, brands: extract.Brands()}
}

// Build hashes every record, keeps the most recently scraped observation
// per key (first encountered wins a tie), drops blank names, and runs the
// full extractor suite over each survivor. The duplicate count is the raw
// input volume minus the distinct keys, reported for observability.
func (b *SnapshotBuilder) Build(raw []*models.RawProduct, at time.Time) *Snapshot {
	type keyed struct {
		raw  *models.RawProduct
		hash string
	}

	latest := make(map[string]keyed, len(raw))
	order := make([]string, 0, len(raw))
	considered := 0

	for _, r := range raw {
		if strings.TrimSpace(r.ProductName) == "" {
			b.logger.Warn("Snapshot: dropping raw row %d with empty name", r.ID)
			continue
		}
		considered++
		hash := ProductHash(r.ProductName)
		existing, ok := latest[hash]
		if !ok {
			latest[hash] = keyed{raw: r, hash: hash}
			order = append(order, hash)
			continue
		}
		if r.ScrapedAt.After(existing.raw.ScrapedAt) {
			latest[hash] = keyed{raw: r, hash: hash}
		}
	}

	snapshot := &Snapshot{
		Products:        make([]*models.Product, 0, len(order)),
		DuplicatesInRaw: considered - len(order),
	}

	for _, hash := range order {
		k := latest[hash]
		snapshot.Products = append(snapshot.Products, b.enrich(k.raw, k.hash, at))
	}

	if snapshot.DuplicatesInRaw > 0 {
		b.logger.Info("Snapshot: collapsed %d duplicate raw rows into %d products",
			snapshot.DuplicatesInRaw, len(snapshot.Products))
	}
	return snapshot
}

func (b *SnapshotBuilder) enrich(r *models.RawProduct, hash string, at time.Time) *models.Product {
	name := r.ProductName

	processorDetail := extract.Processor(name).Text
	gpu := extract.GPU(name).Text

	return &models.Product{
		RawID:             r.ID,
		ProductHash:       hash,
		ProductName:       name,
		Brand:             extract.Brand(name, b.brands).Text,
		Series:            extract.Series(name).Text,
		ProcessorDetail:   processorDetail,
		ProcessorCategory: extract.StandardizeProcessor(processorDetail),
		GPU:               gpu,
		GPUCategory:       extract.StandardizeGPU(gpu),
		RAM:               extract.RAM(name).Text,
		Storage:           extract.Storage(name).Text,
		Display:           extract.Display(name).Text,
		PriceRaw:          r.PriceRaw,
		PriceInMillions:   PriceInMillions(r.PriceRaw),
		ProcessedAt:       at,
	}
}

// PriceInMillions converts a rupiah price to millions, rounded to three
// decimal places.
func PriceInMillions(priceRaw int64) float64 {
	return math.Round(float64(priceRaw)/1_000_000*1000) / 1000
}
