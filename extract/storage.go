package extract

import (
	"regexp"
	"strconv"
	"strings"
)

type storagePattern struct {
	re   *regexp.Regexp
	kind string
}

// Capacity-then-type and type-then-capacity orders both occur in listings.
var storagePatterns = []storagePattern{
	{re(`(\d+)\s*(GB|TB)\s*SSHD`), "SSHD"},
	{re(`SSHD\s*(\d+)\s*(GB|TB)`), "SSHD"},
	{re(`(?:EMMC|E?MMC)\s*(\d+)\s*(GB|TB)`), "eMMC"},
	{re(`SSD\s*(\d+)\s*(GB|TB)`), "SSD"},
	{re(`HDD\s*(\d+)\s*(GB|TB)`), "HDD"},
	{re(`NVME?\s*(\d+)\s*(GB|TB)`), "NVMe"},
	{re(`STORAGE\s*(\d+)\s*(GB|TB)`), "Storage"},
	{re(`(\d+)\s*(GB|TB)\s*SSD`), "SSD"},
	{re(`(\d+)\s*(GB|TB)\s*HDD`), "HDD"},
	{re(`(\d+)\s*(GB|TB)\s*(?:EMMC|E?MMC)`), "eMMC"},
	{re(`(\d+)\s*(GB|TB)\s*NVME?`), "NVMe"},
}

var storageFallbackPatterns = []storagePattern{
	{re(`\b(\d+)\s*(GB|TB)\s*(?:STORAGE|SSD|HDD|EMMC|NVME|SSHD|$|,|\))`), "Storage"},
	{re(`,\s*(\d+)\s*(GB|TB)\s*(?:,|\)|$)`), "Storage"},
	{re(`\(\s*(\d+)\s*(GB|TB)\s*[^)]*\)`), "Storage"},
}

type storageSpec struct {
	capacity   int
	unit       string
	capacityGB int
}

func toSpec(m []string) (storageSpec, bool) {
	capacity, err := strconv.Atoi(m[1])
	if err != nil {
		return storageSpec{}, false
	}
	gb := capacity
	if m[2] == "TB" {
		gb = capacity * 1024
	}
	return storageSpec{capacity: capacity, unit: m[2], capacityGB: gb}, true
}

// Storage extracts the primary storage capacity from a product name. When
// several devices are listed the largest capacity wins.
func Storage(productName string) Value {
	nameUpper := strings.ToUpper(productName)

	var specs []storageSpec
	for _, p := range storagePatterns {
		for _, m := range p.re.FindAllStringSubmatch(nameUpper, -1) {
			if s, ok := toSpec(m); ok {
				specs = append(specs, s)
			}
		}
	}

	if len(specs) == 0 {
		hasRAMContext := containsAny(nameUpper, "RAM", "MEMORY", "MEMORI", "DDR")
		hasStorageContext := containsAny(nameUpper, "STORAGE", "SSD", "HDD", "EMMC", "SSHD")
		for _, p := range storageFallbackPatterns {
			for _, m := range p.re.FindAllStringSubmatch(nameUpper, -1) {
				s, ok := toSpec(m)
				if !ok {
					continue
				}
				// A small capacity in a memory context is RAM, not storage.
				if s.capacityGB <= 128 && hasRAMContext && !hasStorageContext {
					continue
				}
				specs = append(specs, s)
			}
		}
	}

	if len(specs) == 0 {
		return unresolved(UnknownStorage)
	}

	main := specs[0]
	for _, s := range specs[1:] {
		if s.capacityGB > main.capacityGB {
			main = s
		}
	}
	return resolved(strconv.Itoa(main.capacity) + main.unit)
}
