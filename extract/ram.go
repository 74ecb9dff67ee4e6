package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// ramRules match memory capacities in the many vendor phrasings. The
// multiplier form captures two groups; every other rule captures one.
var ramRules = byPriority([]rule{
	{re(`(\d+)\s*GB\s*\d+[KM]?HZ\s*(?:LPDDR|DDR)[345]`), 1, group("%s", 1)},
	{re(`(\d+)\s*GB\s*\d+[KM]?HZ`), 1, group("%s", 1)},
	{re(`RAM\s*(\d+)\s*GB`), 2, group("%s", 1)},
	{re(`MEMORI\s*(\d+)\s*GB`), 2, group("%s", 1)},
	{re(`MEMORY\s*(?:RAM)?\s*(\d+)\s*GB`), 2, group("%s", 1)},
	{re(`(\d+)[X*]\s*(\d+)\s*GB\s*(?:DDR|RAM)`), 2, group("%sx%s", 1, 2)},
	{re(`(\d+)\s*GB\s*DDR[345]?[A-Z]?`), 2, group("%s", 1)},
	{re(`DDR[345]?[A-Z]?\s*(\d+)\s*GB`), 2, group("%s", 1)},
	{re(`(\d+)\s*GB\s*RAM`), 2, group("%s", 1)},
	{re(`(\d+)\s*GB\s*MEMORY`), 2, group("%s", 1)},
	{re(`(\d+)\s*GB\s*(?:DDR|,|\s+[A-Z]|\s+SSD|\s+HDD|\s+INTEL|\s+AMD|\s+RYZEN|\s+CORE)`), 2, group("%s", 1)},
	{re(`\([^)]*?(\d+)\s*GB\s*[^)]*?\)`), 2, group("%s", 1)},
})

var ramFallbackRegexp = re(`\b(\d+)\s*GB\b`)

var conventionalRAMSizes = map[int]bool{
	2: true, 4: true, 8: true, 16: true, 32: true, 64: true, 128: true,
}

var (
	storageUnitRegexp   = regexp.MustCompile(`^\s*GB`)
	storageAfterRegexp  = regexp.MustCompile(`^\s*(?:SSD|HDD|EMMC|MMC|NVME|SSHD|STORAGE)`)
	storageBeforeRegexp = regexp.MustCompile(`(?:SSD|HDD|EMMC|MMC|NVME|SSHD|STORAGE)\s*$`)
	ramBeforeRegexp     = regexp.MustCompile(`(?:RAM|MEMORY|MEMORI|DDR[345]?[A-Z]?)\s*$`)
)

// inStorageWindow reports whether the capacity digits at [start,end) are
// bound to a storage keyword, as in "512GB SSD" or "SSD 512GB". Keywords
// elsewhere in the name do not disqualify the match, and a RAM keyword
// directly before the capacity always wins.
func inStorageWindow(name string, start, end int) bool {
	before := name[:start]
	if ramBeforeRegexp.MatchString(before) {
		return false
	}
	if storageBeforeRegexp.MatchString(before) {
		return true
	}
	after := name[end:]
	if loc := storageUnitRegexp.FindStringIndex(after); loc != nil {
		after = after[loc[1]:]
	}
	return storageAfterRegexp.MatchString(after)
}

// RAM extracts the total memory capacity from a product name, formatted
// as "<n>GB". Only conventional module totals are accepted.
func RAM(productName string) Value {
	nameUpper := strings.ToUpper(productName)

	for _, r := range ramRules {
		for _, loc := range r.re.FindAllStringSubmatchIndex(nameUpper, -1) {
			total, ok := ramTotal(nameUpper, loc)
			if !ok || !conventionalRAMSizes[total] {
				continue
			}
			if inStorageWindow(nameUpper, loc[2], loc[3]) {
				continue
			}
			return resolved(strconv.Itoa(total) + "GB")
		}
	}

	for _, loc := range ramFallbackRegexp.FindAllStringSubmatchIndex(nameUpper, -1) {
		total, err := strconv.Atoi(nameUpper[loc[2]:loc[3]])
		if err != nil || !conventionalRAMSizes[total] {
			continue
		}
		if inStorageWindow(nameUpper, loc[2], loc[3]) {
			continue
		}
		return resolved(strconv.Itoa(total) + "GB")
	}

	return unresolved(UnknownRAM)
}

// ramTotal evaluates one match location, multiplying out "2x8GB" forms.
func ramTotal(name string, loc []int) (int, bool) {
	first, err := strconv.Atoi(name[loc[2]:loc[3]])
	if err != nil {
		return 0, false
	}
	if len(loc) >= 6 && loc[4] >= 0 {
		second, err := strconv.Atoi(name[loc[4]:loc[5]])
		if err != nil {
			return 0, false
		}
		return first * second, true
	}
	return first, true
}
