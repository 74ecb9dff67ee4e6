package extract

import (
	"regexp"
	"strings"
)

// seriesRule is one ordered (predicate, series) entry; the first predicate
// that holds decides the series for that brand.
type seriesRule struct {
	when   predicate
	series string
}

// seriesBrandKeywords drives inline brand detection: the keyword appearing
// earliest in the lowered name wins.
var seriesBrandKeywords = []string{
	"advan", "acer", "asus", "apple", "avita", "axioo", "dell", "hp",
	"huawei", "infinix", "lenovo", "msi", "microsoft", "samsung",
	"spc", "tecno", "toshiba", "xiaomi", "zyrex", "jumper",
}

// lenovoKeywords identify Lenovo lines that are commonly listed without the
// word "lenovo" in the name.
var lenovoKeywords = []string{
	"legion", "thinkpad", "thinkbook", "yoga", "ideapad", "flex",
	"v series", "v14", "v15", "loq",
}

// Series extracts the laptop series from a product name. Brand detection
// runs inline (earliest keyword wins); the detected brand's rule table is
// then tried top to bottom. Unknown brands and unmatched names resolve to
// the "Unknown" sentinel.
func Series(productName string) Value {
	if strings.TrimSpace(productName) == "" {
		return unresolved(UnknownSeries)
	}
	nameLower := strings.ToLower(productName)

	brand := detectSeriesBrand(nameLower)
	if brand == "" {
		return unresolved(UnknownSeries)
	}

	if brand == "lenovo" {
		return lenovoSeries(nameLower)
	}

	table, ok := seriesTables[brand]
	if !ok {
		return unresolved(UnknownSeries)
	}
	for _, r := range table {
		if r.when(nameLower) {
			return resolved(r.series)
		}
	}
	return unresolved(UnknownSeries)
}

// detectSeriesBrand scans for the earliest-positioned brand keyword. When no
// brand keyword is present, a name carrying a Lenovo line keyword and no
// other brand is still treated as Lenovo.
func detectSeriesBrand(nameLower string) string {
	best := ""
	bestPos := len(nameLower) + 1
	for _, kw := range seriesBrandKeywords {
		if pos := strings.Index(nameLower, kw); pos != -1 && pos < bestPos {
			bestPos = pos
			best = kw
		}
	}
	if best != "" {
		return best
	}

	for _, kw := range lenovoKeywords {
		if !strings.Contains(nameLower, kw) {
			continue
		}
		for _, other := range seriesBrandKeywords {
			if other != "lenovo" && strings.Contains(nameLower, other) {
				return ""
			}
		}
		return "lenovo"
	}
	return ""
}

var seriesTables = map[string][]seriesRule{
	"asus": {
		{contains("chromebook"), "Chromebook"},
		{contains("zenbook"), "Zenbook"},
		{contains("asus gaming"), "Asus Gaming"},
		{anyOf(contains("vivobook s"), pattern(`\bs\d{3}|um\d{3}`), pattern(`k413f[aeq]|k413eq`)), "Vivobook S"},
		{allOf(contains("advantage edition"), anyOf(contains("tuf"), pattern(`fa617`))), "TUF Gaming"},
		{allOf(contains("advantage edition"), anyOf(contains("rog"), pattern(`g513qy`))), "ROG Strix"},
		{anyOf(pattern(`\brog\b`), contains("zephyrus"), pattern(`\bg5\d{2}|g7\d{2}|gx\d{3}|gz\d{3}`)), "ROG Strix"},
		{anyOf(pattern(`\btuf\b`), pattern(`\btu\b`), pattern(`fx\d{3}|fa\d{3}|fx6\d{2}|fa6\d{2}`)), "TUF Gaming"},
		{anyOf(contains("creator", "proart"), contains("pz")), "ProArt Studiobook"},
		{anyOf(pattern(`\bp1\d{3}`), contains("expertbook p")), "ExpertBook P"},
		{anyOf(pattern(`\bbu\d{3}`), contains("b9", "expertbook b")), "ExpertBook B"},
		{anyOf(contains("asus pro"), pattern(`pro y\d{3}|pro p\d{3}`)), "Pro Series"},
		{anyOf(contains("vivobook pro"), pattern(`\bv\d{4}`)), "Vivobook Pro"},
		{anyOf(contains("vivobook go"), pattern(`\bl\d{3,4}|e\d{3,4}`)), "Vivobook Go"},
		{anyOf(contains("vivobook flip"), pattern(`\btp\d{3}`)), "Vivobook Flip"},
		{contains("vivobook"), "Vivobook"},
		{pattern(`\ba\d{3,4}`), "Vivobook (A-Series)"},
		{pattern(`\bx\d{3,4}`), "X Series"},
		{pattern(`\bm\d{3,4}`), "Vivobook (M-Series)"},
		{pattern(`\be\d{3,4}`), "Vivobook (E-Series)"},
		{pattern(`\bbr\d{3}`), "BR Series"},
		{allOf(contains("advantage edition"), anyOf(pattern(`fa617`), contains("a16"))), "TUF Gaming"},
		{allOf(contains("advantage edition"), anyOf(pattern(`g513qy`), contains("g15"))), "ROG Strix"},
		{pattern(`fa617`), "TUF Gaming"},
		{pattern(`g513qy`), "ROG Strix"},
		{contains("expertbook"), "ExpertBook"},
		{anyOf(contains("advantage"), pattern(`fa617ns|r7x2j6s|r7x2j6t|r7x2c6t`)), "TUF Gaming"},
	},
	"acer": {
		{contains("aspire"), "Aspire"},
		{contains("swift"), "Swift"},
		{contains("nitro"), "Nitro"},
		{contains("predator"), "Predator"},
		{contains("spin"), "Spin"},
		{contains("concept"), "Concept"},
		{contains("switch"), "Switch"},
		{contains("travelmate"), "TravelMate"},
		{contains("one"), "One"},
		{contains("mate"), "Mate"},
		{contains("chromebook"), "Chromebook"},
	},
	"hp": {
		{contains("chromebook"), "Chromebook"},
		{contains("elite dragonfly", "elite folio", "dragonfly folio"), "Elite Series"},
		{contains("elitebook"), "EliteBook"},
		{contains("probook"), "ProBook"},
		{contains("zbook"), "ZBook"},
		{contains("omen"), "OMEN"},
		{contains("victus"), "Victus"},
		{anyOf(contains("pav gaming"), pattern(`pav.*gaming`)), "Pavilion Gaming"},
		{contains("spectre"), "Spectre"},
		{contains("envy"), "Envy"},
		{contains("pavilion"), "Pavilion"},
		{anyOf(pattern(`\b(?:240r|250|255)\s+g[0-9]`), contains("240r g9", "250 g8", "255 g8")), "HP 200 Series"},
		{anyOf(pattern(`hp\s+15s`), pattern(`hp\s+15\s+(?:core|fd1)`)), "HP Laptop"},
		{anyOf(pattern(`hp\s+14[-]\w{2}\d+`), pattern(`hp\s+14[-](?:ep|em|cf|fq)`), contains("14-ep", "14-em", "14-cf", "14-fq")), "HP Laptop"},
		{anyOf(pattern(`hp\s?14s|240 g\d|245 g\d`), pattern(`hp\s+14\s+[a-z]`)), "Essential Series"},
		{contains("omnibook"), "OmniBook"},
	},
	"msi": {
		{contains("katana"), "Katana"},
		{contains("cyborg"), "Cyborg"},
		{contains("bravo"), "Bravo"},
		{contains("thin"), "Thin"},
		{contains("pulse"), "Pulse"},
		{contains("crosshair"), "Crosshair"},
		{contains("sword"), "Sword"},
		{contains("leopard"), "Leopard"},
		{contains("raider"), "Raider"},
		{contains("vector"), "Vector"},
		{contains("stealth"), "Stealth"},
		{contains("titan"), "Titan"},
		{contains("creator"), "Creator"},
		{contains("workstation"), "Workstation"},
		{contains("commercial"), "Commercial"},
		{contains("modern"), "Modern"},
		{contains("prestige"), "Prestige"},
		{contains("summit"), "Summit"},
		{pattern(`\bgf\d{2}`), "Katana"},
		{pattern(`\bgl\d{2}`), "Pulse"},
		{pattern(`\bgp\d{2}`), "Leopard"},
		{pattern(`\bge\d{2}`), "Raider"},
		{pattern(`\bgs\d{2}`), "Stealth"},
		{pattern(`\bgt\d{2}`), "Titan"},
		{pattern(`ws\d{2}`), "Workstation"},
		{pattern(`wf\d{2}`), "Workstation"},
		{pattern(`b13v|b14v|a13v`), "Pulse"},
		{pattern(`b12u|a12u`), "Crosshair"},
		{pattern(`d7w|d2x`), "Crosshair"},
		{pattern(`c1v`), "Pulse"},
	},
	"axioo": {
		{contains("mybook"), "MyBook"},
		{contains("hype"), "Hype"},
		{contains("pongo"), "Pongo"},
		{contains("slimbook"), "SlimBook"},
		{contains("neon"), "Neon"},
	},
	"advan": {
		{contains("ai gen"), "AI Gen"},
		{contains("pixwar"), "Pixwar"},
		{contains("360"), "360 Stylus"},
		{contains("2in1 evo-x", "evo-x"), "2in1 Evo-X"},
		{contains("soulmate"), "Soulmate"},
		{contains("chromebook"), "Chromebook"},
		{contains("workmate"), "Workmate"},
		{contains("tbook"), "Tbook"},
		{contains("workpro"), "Workpro"},
		{contains("workplus"), "Workplus"},
	},
	"avita": {
		{contains("magus"), "Magus"},
		{contains("essential"), "Essential"},
		{contains("liber"), "Liber"},
		{contains("admiror"), "Admiror"},
	},
	"huawei": {
		{contains("matebook"), "MateBook"},
	},
	"infinix": {
		{contains("xbook"), "Xbook"},
		{contains("inbook"), "INbook"},
		{contains("gtbook"), "GTbook"},
	},
	"microsoft": {
		{contains("surface"), "Surface"},
	},
	"spc": {
		{contains("style"), "Style"},
		{contains("life"), "Life"},
	},
	"tecno": {
		{contains("megabook"), "Megabook"},
	},
	"toshiba": {
		{contains("dynabook"), "Dynabook"},
		{contains("satellite"), "Satellite"},
		{contains("tecra"), "Tecra"},
	},
	"xiaomi": {
		{contains("redmibook"), "RedmiBook"},
	},
	"zyrex": {
		{contains("confidante"), "Confidante"},
		{contains("bunaken"), "Bunaken"},
		{contains("sky"), "Sky"},
		{contains("kintamani"), "Kintamani"},
		{contains("lifebook"), "Lifebook"},
		{contains("ultra"), "Ultra"},
		{pattern(`d.?tech`), "D-Tech"},
		{contains("blaze"), "Blaze"},
	},
	"jumper": {
		{contains("ezbook"), "Ezbook"},
	},
	"samsung": {
		{contains("galaxy book"), "Galaxy Book"},
		{contains("chromebook"), "Chromebook"},
	},
	"dell": {
		{contains("alienware"), "Alienware"},
		{contains("g15", "g series", "g16"), "G Series"},
		{contains("inspiron"), "Inspiron"},
		{contains("vostro"), "Vostro"},
		{contains("xps"), "XPS"},
		{contains("precision"), "Precision"},
		{contains("latitude"), "Latitude"},
		{contains("chromebook"), "Chromebook"},
		{pattern(`dell\s+[a-z]+\s+[0-9]`), "Inspiron"},
	},
	"apple": {
		{contains("macbook air"), "Macbook Air"},
		{contains("macbook pro"), "Macbook Pro"},
		{contains("macbook"), "Macbook"},
		{pattern(`mgn\d{2,3}`), "Macbook Air"},
	},
}

var (
	lenovoPunct    = regexp.MustCompile(`[_/\\()\[\].,:"]`)
	lenovoNonAlnum = regexp.MustCompile(`[^a-z0-9\s\-]`)
	lenovoSpaces   = regexp.MustCompile(`\s+`)
)

// lenovoRules run against a harder-normalized name; the Lenovo catalog mixes
// line names and bare model codes far more than other brands.
var lenovoRules = []struct {
	re     *regexp.Regexp
	series string
}{
	{regexp.MustCompile(`\byoga\s+pro\b`), "Yoga Pro"},
	{regexp.MustCompile(`\byoga\b`), "Yoga"},
	{regexp.MustCompile(`\blegion\s+pro\b`), "Legion Pro"},
	{regexp.MustCompile(`\blegion\s+slim\b`), "Legion Slim"},
	{regexp.MustCompile(`\blegion\b`), "Legion"},
	{regexp.MustCompile(`\bthinkbook\b`), "ThinkBook"},
	{regexp.MustCompile(`\bthinkpad\b`), "ThinkPad"},
	{regexp.MustCompile(`\bideapad\s+pro\b`), "IdeaPad Pro"},
	{regexp.MustCompile(`\bideapad\s+5\s+2in1\b`), "IdeaPad Slim"},
	{regexp.MustCompile(`\bideapad\s+d330\b`), "IdeaPad"},
	{regexp.MustCompile(`\bideapad\s+slim\s+\d`), "IdeaPad Slim"},
	{regexp.MustCompile(`\bideapad\s+slim\b`), "IdeaPad Slim"},
	{regexp.MustCompile(`\bslim\s+[1357]\b`), "IdeaPad Slim"},
	{regexp.MustCompile(`\bslim\s+\d+i\b`), "IdeaPad Slim"},
	{regexp.MustCompile(`\bip\s+\d+i\b`), "IdeaPad"},
	{regexp.MustCompile(`\bflex\s+[57]\b`), "IdeaPad Flex"},
	{regexp.MustCompile(`\bideapad\s+[13]\b`), "IdeaPad"},
	{regexp.MustCompile(`\bideapad\s+flex\b`), "IdeaPad Flex"},
	{regexp.MustCompile(`\bideapad\b`), "IdeaPad"},
	{regexp.MustCompile(`\bloq\b`), "LOQ"},
	{regexp.MustCompile(`\bchromebook\b`), "Chromebook"},
	{regexp.MustCompile(`\bv1[456]\s+g2\b`), "V Series"},
	{regexp.MustCompile(`\bv\d{2}\b`), "V Series"},
	{regexp.MustCompile(`\b\d{2,}[a-z]{2,}\d+\b`), "IdeaPad"},
}

func lenovoSeries(nameLower string) Value {
	clean := lenovoPunct.ReplaceAllString(nameLower, " ")
	clean = lenovoNonAlnum.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(lenovoSpaces.ReplaceAllString(clean, " "))

	for _, r := range lenovoRules {
		if r.re.MatchString(clean) {
			return resolved(r.series)
		}
	}
	return unresolved(UnknownSeries)
}
