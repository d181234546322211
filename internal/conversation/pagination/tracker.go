// Package pagination turns a resolved intent into a limit and offset and keeps
// page numbers consistent with the conversation history.
package pagination

import (
	"slices"
	"strings"

	"ayala/internal/conversation/models"
	"ayala/internal/conversation/rules"
)

// Page is a limit/offset window over the ordered result set.
type Page struct {
	Limit  int
	Offset int
}

type Tracker struct {
	maxLimit int
}

func New(maxLimit int) *Tracker {
	if maxLimit < 1 {
		maxLimit = models.MaxQuantity
	}
	return &Tracker{maxLimit: maxLimit}
}

// ComputeOffset is pure: the same intent always yields the same page.
func (t *Tracker) ComputeOffset(intent models.ResolvedIntent) Page {
	limit := intent.Quantity
	if limit < 1 {
		limit = models.DefaultQuantity
	}
	if limit > t.maxLimit {
		limit = t.maxLimit
	}
	page := intent.PageNumber
	if page < 1 {
		page = 1
	}
	return Page{Limit: limit, Offset: (page - 1) * limit}
}

// Refine reconciles intent with the structured intents stored on earlier user
// turns.
//
// A turn continues the active context (the latest earlier find_companies
// intent that had a location) when its text is a continuation phrase, or when
// the resolver moved past page 1 without changing location or activity. A
// continuation inherits location and activity, keeps the context's quantity
// unless the current text names a number, and moves exactly one page past the
// context. A turn that changes location or activity starts over at page 1.
// Without structured history the intent is returned unchanged.
func (t *Tracker) Refine(history models.History, intent models.ResolvedIntent) models.ResolvedIntent {
	if intent.Kind != models.KindFindCompanies {
		return intent
	}
	current, ok := history.Current()
	if !ok {
		return intent
	}
	last, ok := activeContext(history)
	if !ok {
		return intent
	}
	text := rules.Normalize(current.Content)

	if !sameContext(intent, last) {
		// New search, or a switch mid-continuation ("еще, но в Астане").
		intent.PageNumber = 1
		return intent
	}
	if !rules.Continuation.Any(text) && intent.PageNumber <= 1 {
		// The same search asked again.
		return intent
	}

	intent = intent.WithLocation(last.LocationValue())
	if len(intent.ActivityKeywords) == 0 {
		intent.ActivityKeywords = last.ActivityKeywords
	}
	if n, explicit := rules.Quantity(text); explicit {
		intent.Quantity = n
	} else {
		intent.Quantity = last.Quantity
	}
	intent.PageNumber = last.PageNumber + 1
	return intent.Normalize(t.maxLimit)
}

// sameContext reports whether intent keeps the location and activity of last.
// Fields intent leaves empty are inherited, so they never differ.
func sameContext(intent, last models.ResolvedIntent) bool {
	if intent.HasLocation() && !strings.EqualFold(intent.LocationValue(), last.LocationValue()) {
		return false
	}
	if len(intent.ActivityKeywords) == 0 {
		return true
	}
	return sameKeywords(intent.ActivityKeywords, last.ActivityKeywords)
}

func sameKeywords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	fold := func(in []string) []string {
		out := make([]string, len(in))
		for i, k := range in {
			out[i] = rules.Normalize(k)
		}
		slices.Sort(out)
		return out
	}
	return slices.Equal(fold(a), fold(b))
}

// activeContext returns the latest earlier user intent that searched a location.
func activeContext(history models.History) (models.ResolvedIntent, bool) {
	for _, turn := range history.PriorUserTurns() {
		in := turn.Intent
		if in == nil || in.Kind != models.KindFindCompanies || !in.HasLocation() {
			continue
		}
		return *in, true
	}
	return models.ResolvedIntent{}, false
}
