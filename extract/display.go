package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Size group shared by every display pattern: 10 to 39 inches with an
// optional one or two digit fraction, comma or dot separated.
const inchGroup = `([1-3][0-9](?:[\.,]\d{1,2})?)`

func di(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + strings.ReplaceAll(expr, "SZ", inchGroup))
}

var displayQuoteNormalizer = strings.NewReplacer(
	"″", `"`, "′", "'", "．", ".", "“", `"`, "”", `"`, "´", "'", "`", "'",
)

// Tier one: quoted sizes, optionally with a resolution marker.
var displayQuotedPatterns = []*regexp.Regexp{
	di(`LED\s*SZ["']\s*(?:WQHD|QHD\+|QHD|2\.2K|2\.8K|3K|FHD|UHD|OLED)`),
	di(`SZ["']\s*(?:WQHD|QHD\+|QHD|2\.2K|2\.8K|3K|FHD|UHD|OLED)`),
	di(`LED\s*SZ["']`),
	di(`SZ["']`),
	di(`LED\s*SZ\s+(?:2\.5K|2\.8K)\s+(?:WQXGA|IPS|OLED)`),
	di(`LED\s*SZ\s+(?:WQXGA|2\.5K|2\.8K)`),
	di(`[\s,\(]SZ\s+(?:2\.5K|2\.8K)`),
	di(`LED\s*SZ\s+(?:\d{3}Hz)`),
	di(`LED\s*SZ\s+2K\s+(?:IPS|OLED)\s*(?:Touchscreen)?`),
	di(`LED\s*SZ\s+2K\s+Touchscreen`),
	di(`LED\s*SZ\s+2K`),
	di(`LED\s*SZ\s*,`),
	di(`LED\s*SZ\s*\)`),
	di(`LED\s*SZ\s+WQUXGA`),
	di(`LED\s*SZ\s+WUXGA`),
	di(`LED\s*SZ\s+4K\s+WQUXGA`),
	di(`LED\s*SZ\s+4K\s+WUXGA`),
	di(`LED\s*SZ\s+4K\s+OLED`),
}

// Tier two: unquoted sizes next to a resolution or panel keyword.
var displayKeywordPatterns = []*regexp.Regexp{
	di(`LED\s*SZ\s*(?:WQHD|QHD\+|QHD|2\.2K|2\.8K|3K|FHD|UHD|IPS|OLED|WQXGA|2\.5K)`),
	di(`LED\s*([1-3][0-9])\s*(?:WQHD|QHD\+|QHD|2\.2K|2\.8K|3K|FHD|UHD|IPS|OLED|WQXGA|2\.5K)`),
	di(`LED\s*SZ\s*(?:HD|WUXGA|WQXGA|Touch)`),
	di(`LED\s*([1-3][0-9])\s*(?:HD|WUXGA|WQXGA|Touch)`),
	di(`SZ-?inch\s*(?:Liquid|Retina|IPS|Touch|HD|FHD)`),
	di(`([1-3][0-9])-?inch\s*(?:Liquid|Retina|IPS|Touch|HD|FHD)`),
	di(`LED\s*SZ\s+Inch`),
	di(`LED\s*SZ\s+(?:\d{3}Hz|IPS|Touch|OLED)`),
	di(`SZ\s+inch\s+(?:HD|FHD)`),
	di(`LED\s*SZ\s+inch\s+(?:HD|FHD)`),
	di(`LED\s*SZ\s+2K\s+IPS`),
	di(`LED\s*SZ\s+IPS\s+Touchscreen`),
	di(`LED\s*SZ\s+Touchscreen`),
	di(`LED\s*SZ\s*,`),
	di(`LED\s*SZ\s*\)`),
	di(`SZ\s+HD["']`),
	di(`SZ\s+HD\s*[\),]`),
	di(`LED\s*SZ\s+WQUXGA\s+OLED`),
	di(`LED\s*SZ\s+WQUXGA`),
	di(`LED\s*SZ\s+WUXGA\s+OLED`),
	di(`LED\s*SZ\s+WUXGA`),
	di(`LED\s*SZ\s+4K\s+WQUXGA\s+OLED`),
	di(`LED\s*SZ\s+4K\s+WQUXGA`),
	di(`LED\s*SZ\s+4K\s+OLED\s+Touchscreen`),
	di(`LED\s*SZ\s+4K\s+OLED`),
	di(`LED\s*SZ\s+4K\s+Touchscreen`),
	di(`LED\s*SZ\s+4K`),
	di(`SZ\s+(?:FHD|QHD\+|QHD)\s+(?:\d{3}Hz)`),
	di(`SZ\s+(?:FHD|QHD\+|QHD)`),
	di(`SZ\s+(?:\d{3}Hz)`),
	di(`(?:TRANSCEND|OMEN|YOGA|THINKPAD|IDEAPAD|SURFACE|MACBOOK)\s*SZ\s+OLED`),
	di(`(?:TRANSCEND|OMEN|YOGA|THINKPAD|IDEAPAD|SURFACE|MACBOOK)\s*SZ\s+(?:IPS|Touch|Touchscreen)`),
	di(`SZFHD`),
	di(`([1-3][0-9])FHD`),
	di(`SZOLED`),
	di(`([1-3][0-9])OLED`),
}

// Tier three: bare sizes with weak context.
var displayFallbackPatterns = []*regexp.Regexp{
	di(`SZ-inch`),
	di(`LCD\s*SZ`),
	di(`Display\s*SZ`),
	di(`[\s,\(]SZ\s+(?:WQXGA|2\.5K|2\.8K)`),
	di(`Vga[^,]+LED\s*SZ`),
	di(`LED\s*SZ\s+(?:HD|FHD)`),
	di(`LED\s*SZ\s+IPS`),
	di(`LED\s*SZ\s+2K`),
	di(`LED\s*SZ\s*,`),
	di(`LED\s*SZ\s*\)`),
	di(`LED\s*SZ\s*\.`),
	di(`SZ\s+inch\s+(?:UHD|4K|FHD|HD)`),
	di(`SZ\s+inch\s+(?:IPS|OLED|Touch)`),
	di(`SZ\s+inch`),
	di(`,\s*SZ\s+inch`),
	di(`,\s*SZ\s+HD`),
	di(`\)\s*SZ\s+HD`),
	di(`Graphics[,\s]+SZ\s+HD`),
	di(`LED\s*SZ\s+(?:WQUXGA|WUXGA)`),
	di(`SZ\s+(?:WQUXGA|WUXGA)`),
	di(`LED\s*SZ\s+4K\s+(?:WQUXGA|WUXGA|OLED|Touchscreen)`),
	di(`LED\s*SZ\s+(?:4K|OLED|Touchscreen)`),
	di(`SZ\s+(?:FHD|QHD\+|QHD|UHD)\s+(?:\d{3}Hz)`),
	di(`SZ\s+(?:FHD|QHD\+|QHD|UHD)`),
	di(`SZ\s+(?:\d{3}Hz)`),
	di(`,\s*SZ\s+(?:FHD|QHD\+|QHD)`),
	di(`(?:TRANSCEND|OMEN|YOGA|THINKPAD|IDEAPAD|SURFACE|MACBOOK)\s*SZ\s+(?:OLED|IPS|Touchscreen)`),
	di(`(?:TRANSCEND|OMEN|YOGA|THINKPAD|IDEAPAD|SURFACE|MACBOOK)\s*SZ\s+[A-Z]`),
	di(`SZFHD`),
	di(`([1-3][0-9])FHD`),
	di(`SZOLED`),
	di(`([1-3][0-9])OLED`),
	di(`SZIPS`),
	di(`([1-3][0-9])IPS`),
}

var displayModelLines = []string{
	"TRANSCEND", "OMEN", "YOGA", "THINKPAD", "IDEAPAD", "SURFACE", "MACBOOK",
}

type displayCandidate struct {
	size  string
	pos   int
	score int
}

func windowAround(s string, start, end, extra int) string {
	if end+extra < len(s) {
		end += extra
	} else {
		end = len(s)
	}
	return strings.ToUpper(s[start:end])
}

func windowBefore(s string, start, extra int) string {
	from := start - extra
	if from < 0 {
		from = 0
	}
	return strings.ToUpper(s[from:start])
}

func collectCandidates(display string, patterns []*regexp.Regexp, score func(idx, start, end int, size string) int) []displayCandidate {
	var out []displayCandidate
	for idx, p := range patterns {
		for _, loc := range p.FindAllStringSubmatchIndex(display, -1) {
			size := strings.ReplaceAll(display[loc[2]:loc[3]], ",", ".")
			f, err := strconv.ParseFloat(size, 64)
			if err != nil || f < 10 || f > 39 {
				continue
			}
			out = append(out, displayCandidate{size: size, pos: loc[0], score: score(idx, loc[0], loc[1], size)})
		}
	}
	return out
}

// Display extracts the screen diagonal from a product name, formatted as
// a quoted inch size such as `14"` or `15.6"`. Candidates from every tier
// compete on a heuristic score so a resolution-adjacent size beats a bare
// number elsewhere in the name.
func Display(productName string) Value {
	display := displayQuoteNormalizer.Replace(productName)

	strongCtx := []string{"WQHD", "QHD+", "QHD", "2.2K", "2.8K", "3K", "OLED", "120HZ", "144HZ", "240HZ", "WQXGA", "2.5K", "2K", "WQUXGA", "WUXGA", "4K", "TOUCHSCREEN"}
	midCtx := []string{"WQHD", "QHD+", "QHD", "2.2K", "2.8K", "3K", "IPS", "OLED", "WQXGA", "2.5K", "2K", "TOUCHSCREEN", "HD", "WQUXGA", "WUXGA", "4K", "FHD", "144HZ", "240HZ"}
	weakCtx := []string{"WQXGA", "2.5K", "2.8K", "IPS", "OLED", "HD", "FHD", "2K", "TOUCHSCREEN", "UHD", "4K", "WQUXGA", "WUXGA", "QHD+", "QHD", "144HZ", "240HZ"}
	resCtx := []string{"UHD", "4K", "FHD", "HD", "WQUXGA", "WUXGA", "OLED", "TOUCHSCREEN", "QHD+", "QHD"}
	rateCtx := []string{"144HZ", "240HZ", "120HZ"}

	var candidates []displayCandidate

	candidates = append(candidates, collectCandidates(display, displayQuotedPatterns,
		func(idx, start, end int, size string) int {
			score := 100 - idx*5
			if containsAny(windowAround(display, start, end, 20), strongCtx...) {
				score += 10
			}
			if strings.Contains(size, ".") {
				score += 3
			}
			return score
		})...)

	candidates = append(candidates, collectCandidates(display, displayKeywordPatterns,
		func(idx, start, end int, size string) int {
			score := 80 - idx*5
			if containsAny(windowAround(display, start, end, 20), midCtx...) {
				score += 8
			}
			if strings.Contains(size, ".") {
				score += 3
			}
			if containsAny(windowBefore(display, start, 20), displayModelLines...) {
				score += 10
			}
			return score
		})...)

	candidates = append(candidates, collectCandidates(display, displayFallbackPatterns,
		func(idx, start, end int, size string) int {
			score := 50
			if strings.Contains(size, ".") {
				score += 3
			}
			ctx := windowAround(display, start, end, 20)
			if containsAny(ctx, weakCtx...) {
				score += 5
			}
			if containsAny(ctx, resCtx...) {
				score += 3
			}
			if containsAny(ctx, rateCtx...) {
				score += 4
			}
			if containsAny(windowBefore(display, start, 20), displayModelLines...) {
				score += 8
			}
			if strings.Contains(windowBefore(display, start, 30), "GRAPHICS") {
				score += 5
			}
			return score
		})...)

	if len(candidates) == 0 {
		return unresolved(UnknownDisplay)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if displayBetter(c, best) {
			best = c
		}
	}

	size := strings.TrimSuffix(best.size, ".0")
	return resolved(size + `"`)
}

// Ties on score prefer a fractional size, then the earliest position.
func displayBetter(a, b displayCandidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	aDec := strings.Contains(a.size, ".")
	bDec := strings.Contains(b.size, ".")
	if aDec != bDec {
		return aDec
	}
	return a.pos < b.pos
}
