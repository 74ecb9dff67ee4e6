package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var appleSiliconRegexps = []*regexp.Regexp{
	re(`APPLE\s+M[1-4]\s*(?:PRO|MAX|ULTRA)?\s*(?:\d+-CORE\s*CPU)?\s*(?:\d+-CORE\s*GPU)`),
	re(`MACBOOK\s+(?:AIR|PRO)\s+M[1-4]`),
	re(`APPLE\s+M[1-4][^.]*(?:CPU|GPU)`),
	re(`MACBOOK[^.]*M[1-4]`),
}

var appleKeywords = []string{
	"MACBOOK", "IMAC", "MAC MINI", "MAC PRO", "MAC STUDIO",
	"APPLE M1", "APPLE M2", "APPLE M3", "APPLE M4", "MAC OS",
}

var gpuDigits = regexp.MustCompile(`\d+`)

func leadingModelNumber(s string) int {
	m := gpuDigits.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// geforceMobile renders bare mobile model codes such as 940M or 1050M.
// Models below the 1000 line keep the legacy GT prefix without a space.
func geforceMobile(model string) string {
	if leadingModelNumber(model) >= 1000 {
		return "GTX " + model
	}
	return "GT" + model
}

var gpuRules = byPriority([]rule{
	{re(`RADEON\s+PRO\s+(\d{3,4}[A-Z]?)\b`), 1, group("Radeon Pro %s", 1)},
	{re(`RADEON\s+(8[89]\dM)\b`), 1, group("Radeon %s", 1)},
	{re(`RADEON\s+(7[4-8]\dM)\b`), 1, group("Radeon %s", 1)},
	{re(`RADEON\s+(6[1-8]\dM)\b`), 1, group("Radeon %s", 1)},
	{re(`(?:ATI\s)?RADEON\s+(VEGA\s?[2-9]|VEGA\s?10)\b`), 1, group("Radeon %s", 1)},
	{re(`RADEON\s+(R[5-9])\s+[A-Z]\d+[A-Z]+\b`), 1, group("Radeon %s", 1)},
	{re(`RADEON\s+(R[5-9])\b`), 1, group("Radeon %s", 1)},
	{re(`(RTX)\s*(\d{4})\b`), 1, group("%s %s", 1, 2)},
	{re(`(GTX)\s*(\d{4})\b`), 1, group("%s %s", 1, 2)},
	{re(`IRIS\s?XE`), 1, literal("Intel Iris Xe Graphics")},
	{re(`INTEL\s+ARC`), 1, literal("Intel Arc Graphics")},
	{re(`(?:QUADRO\s+)?(T[1-6]\d{2,3})\b`), 2, group("Quadro %s", 1)},
	{re(`(?:RTX\s+)?(A[1-5]\d{3})\b`), 2, group("RTX %s", 1)},
	{re(`(RTX|GTX)\s*(\d{4})\s*(TI)`), 2, group("%s %s Ti", 1, 2)},
	{re(`INTEL\s+(UHD|HD)\s+GRAPHICS\s+(\d+)`), 2, group("Intel %s Graphics %s", 1, 2)},
	{re(`INTEL\s+UHD`), 2, literal("Intel UHD Graphics")},
	{re(`INTEL\s+HD`), 2, literal("Intel HD Graphics")},
	{re(`VGA\s+INTEL`), 2, literal("Intel Graphics")},
	{re(`QUALCOMM\s+ADRENO`), 2, literal("Adreno Graphics")},
	{re(`MX\s*(\d{3})`), 3, group("MX %s", 1)},
	{re(`(GT\s*\d{3,4}[A-Z]?)`), 3, func(m []string, _ string) (string, bool) {
		return strings.ReplaceAll(m[1], " ", ""), true
	}},
	{re(`(?:QUADRO\s+)?(P[1-4]\d{3}[A-Z]?)`), 3, group("Quadro %s", 1)},
	{re(`(?:QUADRO\s+)?(M[1-3]\d{3}[A-Z]?)`), 3, group("Quadro %s", 1)},
	{re(`RX\s*(\d{4})\s*(M?)`), 3, group("Radeon RX %s%s", 1, 2)},
	{re(`VGA\s+(?:NVIDIA|GEFORCE)[^,]*?(RTX|GTX|MX|GT|QUADRO)\s*([A-Z]?\d{3,4}[A-Z]?)`), 3,
		func(m []string, _ string) (string, bool) {
			if m[1] == "QUADRO" {
				return "Quadro " + m[2], true
			}
			return m[1] + " " + m[2], true
		}},
	{re(`RADEON\s+(\d{3,4}M)\b`), 3, group("Radeon %s", 1)},
	{re(`(?:ATI\s)?RADEON\s+(VEGA\s?\d{1,2})`), 3, group("Radeon %s", 1)},
	{re(`(?:GEFORCE\s+)?(\d{3,4}[A-Z]?M)\b`), 5, func(m []string, _ string) (string, bool) {
		return geforceMobile(m[1]), true
	}},
})

var vgaDescriptorRegexp = re(`VGA\s+([A-Z][A-Z0-9\s]*?)(?:,|\(|\)|RAM|SSD|HDD|LED|WIN|READY)`)

var vgaNvidiaRegexps = []*regexp.Regexp{
	re(`(RTX|GTX)\s*(\d{4})`),
	re(`(RTX|GTX)\s*(\d{4})\s*(TI)`),
	re(`MX\s*(\d{3})`),
	re(`(GT\s*\d{3,4}[A-Z]?)`),
	re(`(\d{3,4}[A-Z]?M)\b`),
	re(`(QUADRO\s+\w+)`),
}

var vgaIntelRegexps = []struct {
	re     *regexp.Regexp
	result string
}{
	{re(`IRIS\s?XE`), "Intel Iris Xe Graphics"},
	{re(`INTEL\s+ARC`), "Intel Arc Graphics"},
	{re(`INTEL\s+(UHD|HD)\s+GRAPHICS\s+(\d+)`), ""},
	{re(`INTEL\s+UHD`), "Intel UHD Graphics"},
	{re(`INTEL\s+HD`), "Intel HD Graphics"},
}

var vgaAMDRegexps = []struct {
	re     *regexp.Regexp
	prefix string
}{
	{re(`RADEON\s+PRO\s+(\d{3,4}[A-Z]?)`), "Radeon Pro "},
	{re(`RADEON\s+(8[89]\dM)`), "Radeon "},
	{re(`RADEON\s+(7[4-8]\dM)`), "Radeon "},
	{re(`RADEON\s+(6[1-8]\dM)`), "Radeon "},
	{re(`RADEON\s+(VEGA\s?[2-9]|VEGA\s?10)`), "Radeon "},
	{re(`RADEON\s+(\d{3,4}M)`), "Radeon "},
	{re(`RADEON\s+(R[5-9])\s+[A-Z]\d+[A-Z]+\b`), "Radeon "},
	{re(`RADEON\s+(R[5-9])\b`), "Radeon "},
}

var gpuVendorFallbacks = []struct {
	keyword string
	result  string
}{
	{"POWERVR", "PowerVR Graphics"},
	{"MALI", "Mali Graphics"},
	{"ADRENO", "Adreno Graphics"},
	{"RADEON", "AMD Radeon Graphics"},
	{"INTEL", "Intel Graphics"},
}

// GPU extracts the graphics adapter model from a product name.
func GPU(productName string) Value {
	nameUpper := strings.ToUpper(productName)

	appleSilicon := false
	for _, p := range appleSiliconRegexps {
		if p.MatchString(nameUpper) {
			appleSilicon = true
			break
		}
	}
	if appleSilicon && containsAny(nameUpper, appleKeywords...) {
		return resolved("Apple Silicon Graphics")
	}

	if strings.Contains(nameUpper, "AMD") &&
		containsAny(nameUpper, "INTEGRATED AMD GRAPHICS", "INTEGRATED GRAPHICS") {
		return resolved("Integrated AMD Graphics")
	}

	if res, ok := firstMatch(gpuRules, nameUpper); ok {
		return resolved(res)
	}

	if strings.Contains(nameUpper, "VGA ") {
		if res, ok := gpuFromVGADescriptor(nameUpper); ok {
			return resolved(res)
		}
	}

	for _, f := range gpuVendorFallbacks {
		if strings.Contains(nameUpper, f.keyword) {
			return resolved(f.result)
		}
	}
	return unresolved(UnknownGraphics)
}

// gpuFromVGADescriptor walks the free-form text after a "VGA" marker and
// tries vendor-specific model patterns against it.
func gpuFromVGADescriptor(nameUpper string) (string, bool) {
	m := vgaDescriptorRegexp.FindStringSubmatch(nameUpper)
	if m == nil {
		return "", false
	}
	desc := strings.TrimSpace(m[1])

	switch {
	case containsAny(desc, "NVIDIA", "GEFORCE", "QUADRO"):
		for _, p := range vgaNvidiaRegexps {
			nv := p.FindStringSubmatch(desc)
			if nv == nil {
				continue
			}
			whole := nv[0]
			switch {
			case strings.Contains(whole, "QUADRO"):
				return whole, true
			case strings.HasPrefix(whole, "RTX"), strings.HasPrefix(whole, "GTX"):
				if len(nv) > 3 && nv[3] == "TI" {
					return nv[1] + " " + nv[2] + " Ti", true
				}
				return nv[1] + " " + nv[2], true
			case strings.HasPrefix(whole, "MX"):
				return "MX " + nv[1], true
			case whole[0] >= '0' && whole[0] <= '9' && strings.Contains(whole, "M"):
				return geforceMobile(nv[1]), true
			}
			return whole, true
		}
		return "Integrated Graphics", true
	case strings.Contains(desc, "INTEL"):
		for _, p := range vgaIntelRegexps {
			in := p.re.FindStringSubmatch(desc)
			if in == nil {
				continue
			}
			if p.result != "" {
				return p.result, true
			}
			return "Intel " + in[1] + " Graphics " + in[2], true
		}
		return "Intel Graphics", true
	case containsAny(desc, "AMD", "ATI", "RADEON"):
		for _, p := range vgaAMDRegexps {
			am := p.re.FindStringSubmatch(desc)
			if am == nil {
				continue
			}
			return p.prefix + am[1], true
		}
		return "AMD Radeon Graphics", true
	case containsAny(desc, "QUALCOMM", "ADRENO"):
		return "Adreno Graphics", true
	}
	return "", false
}

var nvidiaModelRegexp = re(`(?:GTX?|RTX)\s*(\d{3,4})`)

// StandardizeGPU collapses an extracted GPU model onto a market segment
// bucket such as "NVIDIA GeForce Performance" or "Intel Integrated Graphics".
func StandardizeGPU(gpu string) string {
	if gpu == "" || gpu == IntegratedGraphic {
		return IntegratedGraphic
	}
	g := strings.ToUpper(gpu)

	if containsAny(g,
		"INTEL GRAPHICS", "INTEL UHD", "INTEL HD", "INTEL IRIS", "INTEL ARC",
		"IRIS XE", "IRIS PLUS", "UHD GRAPHICS", "HD GRAPHICS", "ARC GRAPHICS") {
		return "Intel Integrated Graphics"
	}

	if containsAny(g,
		"AMD RADEON GRAPHICS", "INTEGRATED AMD GRAPHICS",
		"VEGA 2", "VEGA 3", "VEGA 5", "VEGA 6", "VEGA 7", "VEGA 8", "VEGA 10",
		"RADEON 600M", "RADEON 700M", "RADEON 800M", "610M", "680M", "660M", "740M", "760M",
		"780M", "840M", "860M", "880M", "890M", "920M", "940M", "970M", "980M") {
		return "AMD Integrated Graphics"
	}

	if strings.Contains(g, "APPLE") && strings.Contains(g, "GRAPHICS") {
		return "Apple Silicon Graphics"
	}

	if strings.HasPrefix(g, "RADEON R") && containsAny(g, "R5", "R7", "R8", "R9") {
		return "AMD Radeon Dedicated"
	}

	if strings.HasPrefix(g, "RADEON PRO") ||
		containsAny(g, "PRO 555X", "PRO 5300M", "PRO 560X", "PRO WX", "PRO W5000", "PRO W6000", "PRO W7000") {
		return "AMD Radeon Pro Workstation"
	}

	if strings.HasPrefix(g, "QUADRO") || strings.HasPrefix(g, "RTX A") ||
		containsAny(g, "RTX 1000", "RTX 2000", "RTX 3000", "RTX 4000", "RTX 5000", "RTX 3500") {
		return "NVIDIA Quadro Workstation"
	}

	if strings.HasPrefix(g, "MX ") || containsAny(g, "GT920", "GT940", "GTX 920", "GTX 940") {
		return "NVIDIA GeForce Entry-Level"
	}
	if containsAny(g, "GTX 1050", "GTX 1060", "GTX 1070", "GTX 1080", "GTX 1650", "GTX 1660") {
		return "NVIDIA GeForce Mainstream"
	}
	if containsAny(g, "RTX 2050", "RTX 2060", "RTX 2070", "RTX 2080", "RTX 3050", "RTX 3060", "RTX 3070", "RTX 3080") {
		return "NVIDIA GeForce Performance"
	}
	if containsAny(g,
		"RTX 4050", "RTX 4060", "RTX 4070", "RTX 4080", "RTX 4090",
		"RTX 5050", "RTX 5060", "RTX 5070", "RTX 5080", "RTX 5090") {
		return "NVIDIA GeForce High-End"
	}

	if strings.HasPrefix(g, "RADEON RX") {
		return "AMD Radeon Dedicated"
	}
	if strings.HasPrefix(g, "RADEON") {
		return "AMD Radeon Dedicated"
	}

	if containsAny(g, "ADRENO", "POWERVR", "MALI") {
		return "Other Mobile Graphics"
	}

	if strings.HasPrefix(g, "GT") || strings.HasPrefix(g, "RTX") {
		if m := nvidiaModelRegexp.FindStringSubmatch(g); m != nil {
			n, _ := strconv.Atoi(m[1])
			switch {
			case n < 1000:
				return "NVIDIA GeForce Entry-Level"
			case n < 2000:
				return "NVIDIA GeForce Mainstream"
			case n < 4000:
				return "NVIDIA GeForce Performance"
			default:
				return "NVIDIA GeForce High-End"
			}
		}
	}
	return OtherGPU
}
