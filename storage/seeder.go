package storage

import (
	"time"

	"laptop-etl/models"
)

// seedCatalog is a small slice of real listing names, enough to exercise
// every extractor offline.
var seedCatalog = []struct {
	name  string
	price int64
}{
	{"ASUS ROG Strix G513QY Ryzen 9 5900HX 16GB 512GB SSD RX 6800M 15.6 FHD 300Hz", 24_999_000},
	{"ASUS TUF Gaming F15 FX506HF i5-11400H 8GB 512GB SSD RTX 2050 15.6 FHD 144Hz", 10_799_000},
	{"ASUS Vivobook 14 A1404ZA i3-1215U 8GB 256GB SSD Intel UHD 14.0 FHD", 6_899_000},
	{"ASUS Zenbook 14 OLED UX3405MA Ultra 5 125H 16GB 512GB SSD 14 2.8K OLED", 15_999_000},
	{"Lenovo Legion Slim 5 16AHP9 Ryzen 7 8845HS 16GB 1TB SSD RTX 4060 16 WQXGA 165Hz", 21_499_000},
	{"Lenovo IdeaPad Slim 3 14IAH8 i5-12450H 16GB 512GB SSD 14 FHD", 8_499_000},
	{"Lenovo Yoga 7 2-in-1 14AHP9 Ryzen 7 8840HS 16GB 1TB SSD 14 WUXGA OLED Touch", 16_299_000},
	{"Lenovo ThinkPad X1 Carbon Gen 11 i7-1355U 16GB 1TB SSD 14 WUXGA", 28_500_000},
	{"Acer Aspire 5 A514-56P i5-1335U 8GB 512GB SSD 14 WUXGA", 8_999_000},
	{"Acer Nitro V 15 ANV15-51 i5-13420H 8GB 512GB SSD RTX 4050 15.6 FHD 144Hz", 13_299_000},
	{"Acer Predator Helios Neo 16 PHN16-72 i7-14700HX 16GB 1TB SSD RTX 4060 16 WQXGA 165Hz", 22_999_000},
	{"HP Victus 16-r0035TX i5-13500HX 16GB 512GB SSD RTX 4050 16.1 FHD 144Hz", 14_799_000},
	{"HP Pavilion Aero 13 Ryzen 7 7735U 16GB 512GB SSD 13.3 WUXGA", 11_999_000},
	{"Dell XPS 13 9315 i7-1250U 16GB 512GB SSD 13.4 FHD+", 19_999_000},
	{"MSI Katana 15 B13VEK i7-13620H 2x8GB DDR5 1TB SSD RTX 4050 15.6 FHD 144Hz", 15_499_000},
	{"MSI Modern 14 C12MO i3-1215U 8GB 512GB SSD 14 FHD IPS", 6_499_000},
	{"Apple MacBook Air M2 2022 8GB 256GB SSD 13.6 Liquid Retina", 14_499_000},
	{"Apple MacBook Pro 14 M3 Pro 18GB 512GB SSD 14.2 Liquid Retina XDR", 32_999_000},
	{"Samsung Galaxy Book4 NP750XGK i5-120U 8GB 512GB SSD 15.6 FHD", 9_999_000},
	{"Axioo MyBook Pro K5 i5-1135G7 RAM 8GB, 256GB SSD VGA INTEL 15.6 FHD", 5_299_000},
	{"Zyrex Maveric Ultra X Celeron N5100 RAM 8GB, eMMC 128GB 15.6 FHD", 2_999_000},
	{"Infinix INBook Y2 Plus i3-1115G4 8GB 512GB SSD 15.6 FHD", 4_599_000},
	{"Advan Workplus AMD Ryzen 5 6600H 16GB 512GB SSD 14 FHD IPS", 6_299_000},
	{"Huawei MateBook D14 i5-12450H 16GB 512GB SSD 14 FHD IPS", 8_799_000},
	{"Gigabyte G5 MF i5-12500H 8GB 512GB SSD RTX 4050 15.6 FHD 144Hz", 12_999_000},
}

// SeedRaw fills the raw buffer with the bundled catalog so the pipeline
// can run without a live source. Every row gets the same scraped_at.
func SeedRaw(store RawStore, at time.Time) (int, error) {
	rows := make([]*models.RawProduct, 0, len(seedCatalog))
	for _, s := range seedCatalog {
		rows = append(rows, &models.RawProduct{
			ProductName: s.name,
			PriceRaw:    s.price,
			ScrapedAt:   at,
		})
	}
	if err := store.InsertRaw(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
