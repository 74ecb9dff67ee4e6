package services

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

// ProductHash derives the stable business key for a product name: lowercase,
// trimmed, whitespace runs collapsed to one space, every rune that is not a
// letter, digit or space dropped, then SHA-256 over the UTF-8 bytes as a
// lowercase hex digest. The same catalog entry keeps the same key across
// runs regardless of punctuation or spacing noise.
func ProductHash(name string) string {
	normalized := normalizeName(name)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

var whitespaceRunRegexp = regexp.MustCompile(`\s+`)

// Whitespace collapses first, punctuation drops second. The order is part
// of the key contract: changing it rewrites every stored hash.
func normalizeName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	collapsed := whitespaceRunRegexp.ReplaceAllString(lowered, " ")

	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
