package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"laptop-etl/extract"
	"laptop-etl/models"
	"laptop-etl/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// sentinelByAttribute drives the unknown-coverage rates: the share of
// active rows whose attribute still carries its extractor sentinel.
var sentinelByAttribute = map[string]func(*models.ProductVersion) bool{
	"brand":              func(v *models.ProductVersion) bool { return v.Brand == extract.OtherBrand },
	"series":             func(v *models.ProductVersion) bool { return v.Series == extract.UnknownSeries },
	"processor_detail":   func(v *models.ProductVersion) bool { return v.ProcessorDetail == extract.UnknownProcessor },
	"processor_category": func(v *models.ProductVersion) bool { return v.ProcessorCategory == extract.UnknownCategory },
	"gpu":                func(v *models.ProductVersion) bool { return v.GPU == extract.UnknownGraphics },
	"ram":                func(v *models.ProductVersion) bool { return v.RAM == extract.UnknownRAM },
	"storage":            func(v *models.ProductVersion) bool { return v.Storage == extract.UnknownStorage },
	"display":            func(v *models.ProductVersion) bool { return v.Display == extract.UnknownDisplay },
}

func (s *InsightService) Generate(active []*models.ProductVersion) *models.InsightReport {
	report := &models.InsightReport{
		ByBrand:         make(map[string]int),
		ByGPUCategory:   make(map[string]int),
		UnknownCoverage: make(map[string]float64),
	}

	if len(active) == 0 {
		return report
	}
	report.TotalActive = len(active)

	unknown := make(map[string]int, len(sentinelByAttribute))
	var total float64
	report.MinPrice = active[0].PriceInMillions
	report.MaxPrice = active[0].PriceInMillions

	for _, v := range active {
		report.ByBrand[v.Brand]++
		report.ByGPUCategory[v.GPUCategory]++

		total += v.PriceInMillions
		if v.PriceInMillions < report.MinPrice {
			report.MinPrice = v.PriceInMillions
		}
		if v.PriceInMillions >= report.MaxPrice {
			report.MaxPrice = v.PriceInMillions
			report.MostExpensive = v
		}

		for attr, isSentinel := range sentinelByAttribute {
			if isSentinel(v) {
				unknown[attr]++
			}
		}
	}

	report.AveragePrice = round3(total / float64(len(active)))
	for attr := range sentinelByAttribute {
		report.UnknownCoverage[attr] = round3(float64(unknown[attr]) / float64(len(active)))
	}
	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 LAPTOP CATALOG INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Active products : \033[1m%d\033[0m\n", r.TotalActive)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics (million IDR)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalActive > 0 {
		fmt.Printf("  Average price : \033[1;32m%.3f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%.3f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%.3f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Product\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.ProductName, 50))
		fmt.Printf("  Brand : %s\n", r.MostExpensive.Brand)
		fmt.Printf("  Price : \033[1;31m%.3f M\033[0m\n", r.MostExpensive.PriceInMillions)
		fmt.Println()
	}

	printCountMap("Products by Brand", thin, r.ByBrand)
	printCountMap("Products by GPU Category", thin, r.ByGPUCategory)

	fmt.Printf("\033[1;33m  Unknown Coverage\033[0m\n")
	fmt.Printf("  %s\n", thin)
	attrs := make([]string, 0, len(r.UnknownCoverage))
	for attr := range r.UnknownCoverage {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		fmt.Printf("  %-20s %.1f%%\n", attr, r.UnknownCoverage[attr]*100)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCountMap(title, thin string, counts map[string]int) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n")
		fmt.Println()
		return
	}

	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-30s %s (%d)\n", truncate(e.key, 28), bar, e.count)
	}
	fmt.Println()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
