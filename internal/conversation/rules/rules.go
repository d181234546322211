// Package rules holds the pattern tables behind the heuristic intent resolver.
//
// Every table maps an RE2 pattern to a canonical value and is evaluated
// against Normalize(text). RE2 guarantees linear-time matching, and input is
// capped at MaxInputRunes, so no lookup can stall a turn. Word boundaries are
// spelled out with \p{L}\p{N} classes because RE2's \b only understands ASCII.
package rules

import (
	"math"
	"regexp"
	"strconv"

	textutil "ayala/pkg/platform/strings"
)

// MaxInputRunes bounds the text any table is matched against.
const MaxInputRunes = 4096

const (
	wordStart = `(?:^|[^\p{L}\p{N}])`
	wordEnd   = `(?:[^\p{L}\p{N}]|$)`
	// wordTail lets a stem absorb an inflectional ending.
	wordTail = `\p{L}*`
)

// Rule is one pattern and the value it stands for.
type Rule struct {
	Pattern *regexp.Regexp
	Value   string
}

// Table is an ordered rule list; earlier rules win.
type Table []Rule

// First returns the value of the first matching rule.
func (t Table) First(text string) (string, bool) {
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			return r.Value, true
		}
	}
	return "", false
}

// Any reports whether some rule matches.
func (t Table) Any(text string) bool {
	_, ok := t.First(text)
	return ok
}

// All returns the distinct values of every matching rule in table order.
func (t Table) All(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range t {
		if _, dup := seen[r.Value]; dup {
			continue
		}
		if r.Pattern.MatchString(text) {
			seen[r.Value] = struct{}{}
			out = append(out, r.Value)
		}
	}
	return out
}

// word matches expr as a whole word.
func word(expr, value string) Rule {
	return Rule{Pattern: regexp.MustCompile(wordStart + `(?:` + expr + `)` + wordEnd), Value: value}
}

// stem matches words starting with expr.
func stem(expr, value string) Rule {
	return Rule{Pattern: regexp.MustCompile(wordStart + `(?:` + expr + `)` + wordTail), Value: value}
}

// Normalize folds and truncates text for matching.
func Normalize(text string) string {
	return textutil.Fold(textutil.Truncate(text, MaxInputRunes))
}

var (
	quantityPattern = regexp.MustCompile(`[0-9]+`)
	// yearSuffix marks a number as a year ("в 2024 году", "2023 г.", "2024 жыл").
	yearSuffix = regexp.MustCompile(`^\s*(?:год|г\.|гг|year|жыл)`)
)

// Quantity returns the first standalone number in text that is not a year.
// Zero is not a quantity. Numbers too large for an int saturate; callers cap
// them with ResolvedIntent.Normalize.
func Quantity(text string) (int, bool) {
	for _, loc := range quantityPattern.FindAllStringIndex(text, -1) {
		if yearSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		n, err := strconv.Atoi(text[loc[0]:loc[1]])
		if err != nil {
			// Only a range error is possible for a digit run.
			n = math.MaxInt
		}
		if n < 1 {
			continue
		}
		return n, true
	}
	return 0, false
}
