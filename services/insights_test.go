package services

import (
	"testing"

	"laptop-etl/extract"
	"laptop-etl/models"
	"laptop-etl/utils"
)

func insightVersion(name, brand, gpuCategory string, ram string, priceM float64) *models.ProductVersion {
	return &models.ProductVersion{
		Product: models.Product{
			ProductName:     name,
			Brand:           brand,
			Series:          "Unknown",
			GPUCategory:     gpuCategory,
			RAM:             ram,
			Storage:         extract.UnknownStorage,
			PriceInMillions: priceM,
		},
		IsActive: true,
	}
}

func TestInsightGenerate(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	active := []*models.ProductVersion{
		insightVersion("ASUS ROG Strix SCAR 18", "Asus", "High-End Gaming GPU", "32GB", 25.5),
		insightVersion("ASUS VivoBook 14", "Asus", "Integrated Graphics (Intel)", "8GB", 8),
		insightVersion("Lenovo IdeaPad Slim 3", "Lenovo", "Integrated Graphics (Intel)", extract.UnknownRAM, 6.5),
		insightVersion("Axioo MyBook Pro", extract.OtherBrand, "Integrated Graphics (Intel)", "8GB", 10),
	}

	r := svc.Generate(active)

	if r.TotalActive != 4 {
		t.Errorf("TotalActive = %d, want 4", r.TotalActive)
	}
	if r.ByBrand["Asus"] != 2 || r.ByBrand["Lenovo"] != 1 || r.ByBrand[extract.OtherBrand] != 1 {
		t.Errorf("ByBrand = %v", r.ByBrand)
	}
	if r.ByGPUCategory["Integrated Graphics (Intel)"] != 3 {
		t.Errorf("ByGPUCategory = %v", r.ByGPUCategory)
	}
	if r.AveragePrice != 12.5 {
		t.Errorf("AveragePrice = %v, want 12.5", r.AveragePrice)
	}
	if r.MinPrice != 6.5 || r.MaxPrice != 25.5 {
		t.Errorf("price range = [%v, %v], want [6.5, 25.5]", r.MinPrice, r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.ProductName != "ASUS ROG Strix SCAR 18" {
		t.Errorf("MostExpensive = %+v, want the SCAR 18", r.MostExpensive)
	}
	if r.UnknownCoverage["ram"] != 0.25 {
		t.Errorf("UnknownCoverage[ram] = %v, want 0.25", r.UnknownCoverage["ram"])
	}
	if r.UnknownCoverage["brand"] != 0.25 {
		t.Errorf("UnknownCoverage[brand] = %v, want 0.25", r.UnknownCoverage["brand"])
	}
	if r.UnknownCoverage["storage"] != 1 {
		t.Errorf("UnknownCoverage[storage] = %v, want 1 for unset sentinel rows", r.UnknownCoverage["storage"])
	}
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{12.3456, 12.346},
		{12.3454, 12.345},
		{0.0005, 0.001},
		{-1.2345, -1.234},
		{10, 10},
	}
	for _, c := range cases {
		if got := round3(c.in); got != c.want {
			t.Errorf("round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short name", 40, "short name"},
		{"ASUS ROG Strix SCAR 18 G834JYR", 10, "ASUS RO..."},
		{"Lenovo Légion 5 Pro édition spéciale", 12, "Lenovo Lé..."},
	}
	for _, c := range cases {
		got := truncate(c.in, c.max)
		if got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		for _, r := range got {
			if r == '�' {
				t.Errorf("truncate(%q, %d) split a rune: %q", c.in, c.max, got)
			}
		}
	}
}

func TestInsightGenerateEmpty(t *testing.T) {
	r := NewInsightService(utils.NewLogger()).Generate(nil)
	if r.TotalActive != 0 {
		t.Errorf("TotalActive = %d, want 0", r.TotalActive)
	}
	if len(r.ByBrand) != 0 || len(r.UnknownCoverage) != 0 {
		t.Errorf("empty report carries data: %+v", r)
	}
}
