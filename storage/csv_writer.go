package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"laptop-etl/models"
)

// csvHeader is the stable export column order. Downstream notebooks key on
// these names, so the order never changes between runs.
var csvHeader = []string{
	"product_name", "brand", "series",
	"processor_detail", "processor_category",
	"gpu", "gpu_category",
	"ram", "storage", "display",
	"price_raw", "price_in_millions",
	"processed_at", "valid_from", "valid_to", "is_active",
	"product_hash",
}

// CSVWriter exports the active slice of the current table to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteProducts appends one row per version. Open rows export an empty
// valid_to cell.
func (c *CSVWriter) WriteProducts(versions []*models.ProductVersion) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range versions {
		validTo := ""
		if v.ValidTo != nil {
			validTo = formatTime(*v.ValidTo)
		}
		row := []string{
			v.ProductName, v.Brand, v.Series,
			v.ProcessorDetail, v.ProcessorCategory,
			v.GPU, v.GPUCategory,
			v.RAM, v.Storage, v.Display,
			strconv.FormatInt(v.PriceRaw, 10),
			strconv.FormatFloat(v.PriceInMillions, 'f', 3, 64),
			formatTime(v.ProcessedAt),
			formatTime(v.ValidFrom),
			validTo,
			strconv.FormatBool(v.IsActive),
			v.ProductHash,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
