package rules

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"ayala/internal/companies/locality"
	textutil "ayala/pkg/platform/strings"
)

// Gazetteer maps place-name spellings to canonical registry names. Longer
// spellings are tried first so "almaty region" beats "almaty".
var Gazetteer = buildGazetteer()

// droppable endings are stripped from Cyrillic names so that declined forms
// ("в Астане", "из Караганды") still match.
const droppable = "аыеяь"

func buildGazetteer() Table {
	type entry struct {
		expr  string
		value string
		size  int
	}
	var entries []entry

	for _, a := range locality.Aliases() {
		entries = append(entries, entry{
			expr:  wordStart + regexp.QuoteMeta(a.Latin) + wordEnd,
			value: a.Name,
			size:  len(a.Latin),
		})
	}

	for _, name := range locality.Names() {
		words := strings.Fields(textutil.Fold(name))
		parts := make([]string, 0, len(words))
		for _, w := range words {
			parts = append(parts, regexp.QuoteMeta(inflectionStem(w))+`\p{L}{0,3}`)
		}
		entries = append(entries, entry{
			expr:  wordStart + strings.Join(parts, ` `) + wordEnd,
			value: name,
			size:  len(textutil.Fold(name)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].size > entries[j].size
	})

	table := make(Table, 0, len(entries))
	for _, e := range entries {
		table = append(table, Rule{Pattern: regexp.MustCompile(e.expr), Value: e.value})
	}
	return table
}

// inflectionStem drops the adjective ending of region names ("алматинская" →
// "алматинск") or a final vowel of longer city names ("астана" → "астан").
func inflectionStem(w string) string {
	if utf8.RuneCountInString(w) <= 4 {
		return w
	}
	if strings.HasSuffix(w, "ая") {
		return strings.TrimSuffix(w, "ая")
	}
	last, size := utf8.DecodeLastRuneInString(w)
	if strings.ContainsRune(droppable, last) {
		return w[:len(w)-size]
	}
	return w
}
