package extract

import (
	"fmt"
	"regexp"
	"strings"
)

func re(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// group builds a formatter rendering a template over the given submatch
// indexes, e.g. group("AMD Ryzen %s %s", 1, 2).
func group(template string, idx ...int) func(m []string, name string) (string, bool) {
	return func(m []string, _ string) (string, bool) {
		args := make([]any, len(idx))
		for i, g := range idx {
			if g >= len(m) {
				return "", false
			}
			args[i] = m[g]
		}
		return fmt.Sprintf(template, args...), true
	}
}

// requireAMD renders the template only when the name itself mentions AMD.
func requireAMD(template string, idx ...int) func(m []string, name string) (string, bool) {
	inner := group(template, idx...)
	return func(m []string, name string) (string, bool) {
		if !strings.Contains(name, "AMD") {
			return "", false
		}
		return inner(m, name)
	}
}

// processorRules is the ordered extraction table for processor names. The
// name is matched in upper case. Lower priority runs first; ties keep
// declaration order.
var processorRules = byPriority([]rule{
	// Snapdragon X family first: "X Elite" would otherwise be swallowed by
	// the looser Snapdragon patterns below.
	{re(`SNAPDRAGON\s+X\s+ELITE\s+X?1E?-?\d{2}-?\d{2,3}`), 1, literal("Snapdragon X Elite")},
	{re(`SNAPDRAGON\s+X\s+ELITE`), 1, literal("Snapdragon X Elite")},
	{re(`SNAPDRAGON\s+X\s+PLUS\s+X?1P?-?\d{2}-?\d{2,3}`), 1, literal("Snapdragon X Plus")},
	{re(`SNAPDRAGON\s+X\s+PLUS`), 1, literal("Snapdragon X Plus")},
	{re(`SNAPDRAGON\s+X\s+X1[EP]`), 1, literal("Snapdragon X Series")},
	{re(`SNAPDRAGON\s+X\b`), 1, literal("Snapdragon X")},

	{re(`SNAPDRAGON\s+(\d{3}[A-Z]?)`), 1, group("Snapdragon %s", 1)},

	{re(`MICROSOFT\s+(SQ[12])`), 1, group("Microsoft %s", 1)},
	{re(`\b(SQ[12])\b`), 1, group("Microsoft %s", 1)},

	{re(`(?:AMD\s+)?RYZEN\s+AI\s+MAX\s*\+?\s*(\d{3})`), 1, group("AMD Ryzen AI MAX+ %s", 1)},

	{re(`(?:AMD\s+)?RYZEN\s+AI\s+([579])\s+(\d{3})`), 1, group("AMD Ryzen AI %s %s", 1, 2)},
	{re(`(?:AMD\s+)?RYZEN\s+AI\s+([579])\s*-?(\d{3})`), 1, group("AMD Ryzen AI %s-%s", 1, 2)},

	{re(`(?:AMD\s+)?RYZEN\s+R([579])\s*-?(\d{4}[A-Z]*)`), 1, group("AMD Ryzen %s %s", 1, 2)},

	{re(`AMD\s+(FX\s*-?\s*\d{4}[A-Z]?)`), 1, group("AMD %s", 1)},
	{re(`AMD\s+QUAD\s+CORE\s+(FX\s*-?\s*\d{4}[A-Z]?)`), 1, group("AMD %s", 1)},
	{re(`\b(FX-?\d{4}[A-Z]?)\b`), 1, requireAMD("AMD %s", 1)},

	{re(`MEDIATEK\s+(\d{4}[A-Z]?)`), 1, group("MediaTek %s", 1)},
	{re(`MEDIATEK\s+([A-Z]?\d+)`), 1, group("MediaTek %s", 1)},

	{re(`\b(?:APPLE\s+)?(M[1-9](?:\s+(?:PRO|MAX|ULTRA))?)\b`), 1, group("Apple %s", 1)},

	{re(`(?:AMD\s+)?RYZEN\s+([3579])\s+(\d{3})\b`), 1, group("AMD Ryzen %s %s", 1, 2)},

	{re(`AMD\s+(A[4689]|A10|A12)\s*-?\s*(\d{4}[A-Z]?)`), 1, group("AMD %s-%s", 1, 2)},
	{re(`\b(A[4689]|A10|A12)-?(\d{4}[A-Z]?)\b`), 1, requireAMD("AMD %s-%s", 1, 2)},
	{re(`AMD\s+DUAL\s+CORE\s+(A[4689]-?\d{4}[A-Z]?)`), 1, group("AMD %s", 1)},

	{re(`(?:AMD\s+)?RYZEN\s+([3579])\s*-?\s*(\d{4}[A-Z]{0,2})`), 1, group("AMD Ryzen %s %s", 1, 2)},

	{re(`(?:INTEL\s+)?CORE\s+ULTRA\s+([579])\s+(\d{3}[A-Z]{1,2})`), 1, group("Intel Core Ultra %s %s", 1, 2)},
	{re(`\bULTRA\s+([579])\s+(\d{3}[A-Z]{1,2})\b`), 1, group("Intel Core Ultra %s %s", 1, 2)},

	// The model suffix may end in a digit ("1135G7"), so the trailing class
	// accepts one alphanumeric after the letter.
	{re(`(?:INTEL\s+)?CORE\s+(I[3579])\s+(\d{4,5}[A-Z][A-Z0-9]?)`), 1, group("Intel Core %s-%s", 1, 2)},
	{re(`\b(I[3579])-(\d{4,5}[A-Z][A-Z0-9]?)\b`), 1, group("Intel Core %s-%s", 1, 2)},

	{re(`AMD\s+ATHLON\s+(GOLD|SILVER)\s+(\d{4}[A-Z]?)`), 1, group("AMD Athlon %s %s", 1, 2)},
	{re(`AMD\s+ATHLON\s+(\d{4}[A-Z]?)`), 1, group("AMD Athlon %s", 1)},

	{re(`XEON\s+(W-[1-9]\d{4}[A-Z]?)`), 1, group("Intel Xeon %s", 1)},

	{re(`CORE\s+ULTRA\s+([579])\s+(\d{3}[A-Z])`), 2, group("Intel Core Ultra %s %s", 1, 2)},

	{re(`CORE\s+(I[3579])\s*-?(\d{4}[A-Z]?)`), 2, group("Intel Core %s-%s", 1, 2)},
	{re(`\b(I[3579])-(\d{4}[A-Z]?)\b`), 2, group("Intel Core %s-%s", 1, 2)},

	{re(`AMD\s+(\d{4}[A-Z]{1,2})\b`), 2, group("AMD %s", 1)},

	{re(`CORE\s+([3579])\s+(\d{4}[A-Z]?)`), 2, group("Intel Core %s %s", 1, 2)},

	{re(`INTEL\s+(\d{4}[A-Z])\b`), 2, group("Intel %s", 1)},

	{re(`\b(?:INTEL\s+)?(N\d{3,4})\b`), 3, group("Intel %s", 1)},

	{re(`CELERON\s+([NJ]?\d{4}[A-Z]?)`), 3, group("Intel Celeron %s", 1)},
	{re(`PENTIUM\s+(SILVER|GOLD)\s+([A-Z]?\d{4})`), 3, group("Intel Pentium %s %s", 1, 2)},

	{re(`XEON\s+(E\d?-\d{4}[A-Z]?)\s*(V\d+)?`), 3, func(m []string, _ string) (string, bool) {
		if m[2] != "" {
			return fmt.Sprintf("Intel Xeon %s %s", m[1], m[2]), true
		}
		return fmt.Sprintf("Intel Xeon %s", m[1]), true
	}},
	{re(`XEON\s+([A-Z]?[1-9]\d{0,4}[A-Z]?)`), 3, group("Intel Xeon %s", 1)},
})

// processorVendorFallbacks maps a plain keyword to a family name when no
// structured pattern matched. Order matters: more specific entries first.
var processorVendorFallbacks = []struct {
	keyword string
	result  string
}{
	{"SNAPDRAGON X ELITE", "Snapdragon X Elite"},
	{"SNAPDRAGON X PLUS", "Snapdragon X Plus"},
	{"SNAPDRAGON X", "Snapdragon X"},
	{"SNAPDRAGON 8", "Snapdragon 8 Series"},
	{"SNAPDRAGON 7", "Snapdragon 7 Series"},
	{"SNAPDRAGON 6", "Snapdragon 6 Series"},
	{"SNAPDRAGON 4", "Snapdragon 4 Series"},
	{"MICROSOFT SQ1", "Microsoft SQ1"},
	{"MICROSOFT SQ2", "Microsoft SQ2"},
	{"AMD RYZEN R5", "AMD Ryzen 5"},
	{"AMD RYZEN R7", "AMD Ryzen 7"},
	{"AMD RYZEN R9", "AMD Ryzen 9"},
	{"AMD FX", "AMD FX Series"},
	{"AMD RYZEN AI MAX", "AMD Ryzen AI MAX+ Series"},
	{"AMD RYZEN AI", "AMD Ryzen AI Series"},
	{"MEDIATEK", "MediaTek"},
	{"AMD RYZEN 9", "AMD Ryzen 9"},
	{"AMD RYZEN 7", "AMD Ryzen 7"},
	{"AMD RYZEN 5", "AMD Ryzen 5"},
	{"AMD RYZEN 3", "AMD Ryzen 3"},
	{"AMD A4", "AMD A4 Series"},
	{"AMD A6", "AMD A6 Series"},
	{"AMD A8", "AMD A8 Series"},
	{"AMD A9", "AMD A9 Series"},
	{"AMD A10", "AMD A10 Series"},
	{"AMD DUAL CORE", "AMD Dual Core"},
	{"AMD ATHLON", "AMD Athlon Series"},
	{"SNAPDRAGON", "Snapdragon Series"},
	{"APPLE M1", "Apple M1"},
	{"APPLE M2", "Apple M2"},
	{"APPLE M3", "Apple M3"},
	{"INTEL XEON", "Intel Xeon"},
	{"INTEL CORE I7", "Intel Core i7"},
	{"INTEL CORE I5", "Intel Core i5"},
	{"INTEL CORE I3", "Intel Core i3"},
	{"INTEL CORE", "Intel Core Series"},
	{"INTEL CELERON", "Intel Celeron"},
	{"INTEL PENTIUM", "Intel Pentium"},
	{"INTEL ATOM", "Intel Atom"},
}

// processorFinalRules are loose last-resort patterns. Matches adjacent to a
// RAM/storage/GPU token are rejected so a memory size or Radeon model is
// never read as a CPU.
var processorFinalRules = []rule{
	{re(`\b(MEDIATEK\s+\w+)`), 1, group("%s", 1)},
	{re(`\b(FX-?\d{4}[A-Z]?)\b`), 1, group("AMD %s", 1)},
	{re(`\b(R[579]-\d{4}[A-Z]?)\b`), 1, group("AMD Ryzen %s", 1)},
	{re(`\b(A[4689]-?\d{4}[A-Z]?)\b`), 1, group("AMD %s", 1)},
	{re(`\b(I[3579]-\d{4,5}[A-Z][A-Z0-9]?)\b`), 1, group("Intel Core %s", 1)},
	{re(`\b(\d{4,5}[A-Z]{1,2})\b`), 1, func(m []string, name string) (string, bool) {
		if !strings.Contains(name, "AMD") || strings.Contains(name, "RADEON") {
			return "", false
		}
		return "AMD " + m[1], true
	}},
	{re(`\b(RYZEN\s+[3579]\s+\d{3,4}[A-Z]{0,2})\b`), 1, group("AMD %s", 1)},
	{re(`\b(CORE\s+I?[3579]\s+\d{4,5}[A-Z]{0,2})\b`), 1, group("Intel %s", 1)},
	{re(`\b(I[3579])\s+(\d{4,5}[A-Z][A-Z0-9]?)\b`), 1, group("Intel Core %s-%s", 1, 2)},
	{re(`\bSNAPDRAGON\s+(\d{3})`), 1, group("Snapdragon %s", 1)},
	{re(`\b(ULTRA\s+[579]\s+\d{3}[A-Z]{1,2})\b`), 1, group("Intel Core %s", 1)},
}

// Processor extracts the processor model from a product name.
func Processor(productName string) Value {
	nameUpper := strings.ToUpper(productName)

	if res, ok := firstMatch(processorRules, nameUpper); ok {
		return resolved(res)
	}

	for _, f := range processorVendorFallbacks {
		if strings.Contains(nameUpper, f.keyword) {
			return resolved(f.result)
		}
	}

	for _, r := range processorFinalRules {
		m := r.re.FindStringSubmatch(nameUpper)
		if m == nil {
			continue
		}
		res, ok := r.format(m, nameUpper)
		if !ok || res == "" {
			continue
		}
		guard := regexp.MustCompile(`(RAM|GB|SSD|HDD|VGA|RADEON|VEGA)\s*` + regexp.QuoteMeta(m[0]))
		if guard.MatchString(nameUpper) {
			continue
		}
		return resolved(res)
	}

	return unresolved(UnknownProcessor)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var (
	ryzen9Models = []string{" 6900", " 6980", " 7945", " 7845", " 8940", " 8945", " 9955"}
	ryzen7Models = []string{" 5800", " 5700", " 6800", " 7735", " 8840", " 7840", " 7745", " 8845H", " 8845HS"}
	ryzen5Models = []string{" 3500", " 4500", " 5500", " 5600", " 6600", " 7520", " 7530", " 7535", " 7640", " 8645"}
	ryzen3Models = []string{" 3200", " 3250", " 3300", " 4300", " 5300", " 7320", " 7330", " 7425"}

	intelNSeriesModels = []string{
		" N100", " N150", " N200", " N300", " N305", " N355",
		" N3350", " N3450", " N4000", " N4020", " N4120", " N4500",
		" N5000", " N5030", " N5100", " N5105", " N6000", " N6210",
		" N6211", " N6230", " N6410", " N6420",
	}
	pentiumModels = []string{"6405", "4415", "4410", "5405", "4425", "G6500", "G6400", "7505"}
	celeronModels = []string{"5205", "5305", "N5100", "N4500", "N4020", "N4000", "N3350", "N3450"}

	intelModelSuffix = regexp.MustCompile(`\b(\d{4})[A-Z]\b`)
	digitRegexp      = regexp.MustCompile(`\d`)
)

// StandardizeProcessor maps an extracted processor model onto a market
// segment bucket such as "Intel Core i7" or "AMD Ryzen 5".
func StandardizeProcessor(processor string) string {
	if processor == "" || processor == UnknownProcessor {
		return UnknownCategory
	}
	p := strings.ToUpper(processor)

	switch {
	case strings.Contains(p, "XEON"):
		return "Intel Xeon"
	case containsAny(p, "MICROSOFT SQ", " SQ1", " SQ2"):
		return "Qualcomm Snapdragon"
	}

	if containsAny(p, "RYZEN AI MAX+", "RYZEN AI MAX") {
		switch {
		case containsAny(p, " 395", " MAX+ 395", " MAX 395"):
			return "AMD Ryzen 9"
		case containsAny(p, " 390", " MAX+ 390", " MAX 390"):
			return "AMD Ryzen 9"
		case containsAny(p, " 385", " MAX+ 385", " MAX 385"):
			return "AMD Ryzen 7"
		}
		return "AMD Ryzen 9"
	}

	if strings.Contains(p, "RYZEN AI") {
		switch {
		case strings.Contains(p, "RYZEN AI 9") || containsAny(p, " AI 9", "365", "370", "375"):
			return "AMD Ryzen 9"
		case strings.Contains(p, "RYZEN AI 7") || containsAny(p, " AI 7", "350"):
			return "AMD Ryzen 7"
		case strings.Contains(p, "RYZEN AI 5") || containsAny(p, " AI 5", "340"):
			return "AMD Ryzen 5"
		}
		return "AMD Ryzen Series"
	}

	if containsAny(p, intelNSeriesModels...) {
		return "Intel N-Series"
	}
	if containsAny(p, pentiumModels...) {
		return "Intel Pentium"
	}
	if containsAny(p, celeronModels...) {
		return "Intel Celeron"
	}

	if strings.Contains(p, "INTEL CORE ULTRA") {
		return "Intel Core Ultra"
	}
	if strings.Contains(p, "INTEL CORE") {
		switch {
		case strings.Contains(p, "I9"):
			return "Intel Core i9"
		case strings.Contains(p, "I7"):
			return "Intel Core i7"
		case strings.Contains(p, "I5"):
			return "Intel Core i5"
		case strings.Contains(p, "I3"):
			return "Intel Core i3"
		case containsAny(p, "-N100", "-N200", "-N300", "-N305", "-N355"):
			return "Intel Core i3"
		}
		return "Intel Core Series"
	}

	if strings.Contains(p, "RYZEN") {
		switch {
		case strings.Contains(p, "RYZEN 9") || containsAny(p, ryzen9Models...):
			return "AMD Ryzen 9"
		case strings.Contains(p, "RYZEN 7") || containsAny(p, ryzen7Models...):
			return "AMD Ryzen 7"
		case strings.Contains(p, "RYZEN 5") || containsAny(p, ryzen5Models...):
			return "AMD Ryzen 5"
		case strings.Contains(p, "RYZEN 3") || containsAny(p, ryzen3Models...):
			return "AMD Ryzen 3"
		}
		return "AMD Ryzen Series"
	}

	if strings.HasPrefix(p, "AMD ") && digitRegexp.MatchString(p) {
		switch {
		case containsAny(p, " 395", " 390"):
			return "AMD Ryzen 9"
		case strings.Contains(p, " 385"):
			return "AMD Ryzen 7"
		case containsAny(p, ryzen9Models...):
			return "AMD Ryzen 9"
		case containsAny(p, ryzen7Models...):
			return "AMD Ryzen 7"
		case containsAny(p, ryzen5Models...):
			return "AMD Ryzen 5"
		case containsAny(p, ryzen3Models...):
			return "AMD Ryzen 3"
		}
		return "AMD Entry-Level"
	}

	if strings.HasPrefix(p, "INTEL ") {
		if m := intelModelSuffix.FindStringSubmatch(p); m != nil {
			switch m[1] {
			case "4305", "6305", "6405":
				return "Intel Pentium"
			case "5205", "5305":
				return "Intel Celeron"
			}
			return "Intel Other"
		}
	}

	switch {
	case strings.Contains(p, "PENTIUM"):
		return "Intel Pentium"
	case strings.Contains(p, "CELERON"):
		return "Intel Celeron"
	case strings.Contains(p, "ATOM"):
		return "Intel Atom"
	case strings.Contains(p, "ATHLON"), strings.Contains(p, "DUAL CORE"):
		return "AMD Entry-Level"
	case strings.Contains(p, "APPLE"), containsAny(p, " M1", " M2", " M3", " M4"):
		return "Apple Silicon"
	case strings.Contains(p, "SNAPDRAGON"):
		return "Qualcomm Snapdragon"
	case strings.Contains(p, "MEDIATEK"):
		return "MediaTek"
	case strings.Contains(p, "INTEL"):
		return "Intel Other"
	case strings.Contains(p, "AMD"):
		return "AMD Other"
	}
	return UnknownCategory
}
