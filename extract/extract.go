// Package extract turns noisy free-text product names into categorical
// attributes. Every extractor is an ordered table of (pattern, priority,
// formatter) rules: rules run in priority order, ties broken by declaration
// order, and the first structural match wins. Extraction never fails — an
// unmatched name resolves to the attribute's sentinel value.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Sentinel values returned when an extractor cannot resolve an attribute.
// These are data, not errors: downstream change detection treats them as
// ordinary attribute values. They are declared once here so a comparison
// can never drift on a typo.
const (
	OtherBrand        = "Other"
	UnknownSeries     = "Unknown"
	UnknownProcessor  = "Unknown Processor"
	UnknownCategory   = "Unknown Category"
	UnknownGraphics   = "Unknown Graphics"
	OtherGPU          = "Other GPU"
	UnknownRAM        = "Unknown RAM"
	UnknownStorage    = "Unknown Storage"
	UnknownDisplay    = "Unknown"
	IntegratedGraphic = "Integrated Graphics"
)

// Value is the tagged result of one extraction attempt. Resolved is false
// when the extractor fell through to its sentinel.
type Value struct {
	Text     string
	Resolved bool
}

// Resolved wraps a concrete extraction result. Rules may capture boundary
// whitespace; the stored text never carries it.
func resolved(text string) Value { return Value{Text: strings.TrimSpace(text), Resolved: true} }

// Unresolved carries the sentinel for the attribute.
func unresolved(sentinel string) Value { return Value{Text: sentinel} }

// Or returns the extracted text, or the sentinel when unresolved.
func (v Value) Or(sentinel string) string {
	if v.Resolved {
		return v.Text
	}
	if v.Text != "" {
		return v.Text
	}
	return sentinel
}

// String returns the carried text (sentinel included).
func (v Value) String() string { return v.Text }

// rule is one entry of an ordered extraction table. The formatter receives
// the regexp submatches plus the full (case-folded) name, and may return
// ok=false to pass on a structural match that fails a semantic check.
type rule struct {
	re       *regexp.Regexp
	priority int
	format   func(m []string, name string) (string, bool)
}

// literal builds a formatter that always returns a fixed result.
func literal(result string) func(m []string, name string) (string, bool) {
	return func([]string, string) (string, bool) { return result, true }
}

// byPriority returns the rules stably sorted by ascending priority,
// preserving declaration order within a priority.
func byPriority(rules []rule) []rule {
	out := make([]rule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority < out[j].priority })
	return out
}

// firstMatch runs the table against name and returns the first rule result.
func firstMatch(rules []rule, name string) (string, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if res, ok := r.format(m, name); ok && res != "" {
			return res, true
		}
	}
	return "", false
}

// predicate helpers for the contains-style series tables.

type predicate func(name string) bool

func contains(subs ...string) predicate {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

func pattern(expr string) predicate {
	re := regexp.MustCompile(expr)
	return func(name string) bool { return re.MatchString(name) }
}

func anyOf(preds ...predicate) predicate {
	return func(name string) bool {
		for _, p := range preds {
			if p(name) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...predicate) predicate {
	return func(name string) bool {
		for _, p := range preds {
			if !p(name) {
				return false
			}
		}
		return true
	}
}
