// Package strings provides text normalization shared by the rule tables and
// the query layer. User input mixes Cyrillic, Kazakh and Latin script, so
// comparisons go through Unicode normalization and full case folding rather
// than strings.ToLower.
package strings

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s in NFC form, case-folded, with ё folded to е and runs of
// whitespace collapsed to a single space.
func Fold(s string) string {
	s = norm.NFC.String(s)
	// Casers are stateful; one per call.
	s = cases.Fold().String(s)
	s = strings.ReplaceAll(s, "ё", "е")
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Truncate cuts s to at most maxRunes runes without splitting a rune.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeFold is like DedupeAndTrim but compares and returns folded values.
//
//	DedupeFold([]string{"  Строительство ", "СТРОИТЕЛЬСТВО", "IT"})
//	// Returns: []string{"строительство", "it"}
func DedupeFold(values []string) []string {
	return dedupe(values, Fold)
}

func dedupe(values []string, clean func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		c := clean(v)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			result = append(result, c)
		}
	}

	return result
}
