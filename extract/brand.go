package extract

import (
	"regexp"
	"strings"
)

// legionRegexp forces the parent brand for "Legion 5"-style names that omit
// the word Lenovo entirely.
var legionRegexp = regexp.MustCompile(`(?i)\bLegion\s*\d`)

// Brands returns the recognized laptop brand list, in match-priority order.
func Brands() []string {
	return []string{
		"Acer", "Apple", "Asus", "Dell", "HP", "Lenovo", "MSI", "Samsung", "Toshiba",
		"Microsoft", "Sony", "ADVAN", "Zyrex", "Axioo", "Advan", "Xiaomi", "Avita",
		"Tecno", "Huawei", "Infinix", "Jumper", "SPC",
	}
}

var brandRegexps = buildBrandRegexps(Brands())

func buildBrandRegexps(brands []string) map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(brands))
	for _, b := range brands {
		res[b] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(b) + `\b`)
	}
	return res
}

// Brand extracts the brand from a product name using the given brand list.
// The first listed brand with a word-boundary match wins; names with no
// recognized brand resolve to the "Other" sentinel.
func Brand(productName string, brands []string) Value {
	name := strings.TrimSpace(productName)
	if name == "" {
		return unresolved(OtherBrand)
	}

	// Legion model numbers are always Lenovo, whatever the list says.
	if legionRegexp.MatchString(name) {
		return resolved("Lenovo")
	}

	for _, brand := range brands {
		re, ok := brandRegexps[brand]
		if !ok {
			re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
		}
		if re.MatchString(name) {
			return resolved(brand)
		}
	}
	return unresolved(OtherBrand)
}
