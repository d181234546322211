package models

import (
	"strings"

	textutil "ayala/pkg/platform/strings"
)

// Kind classifies what the user asked for.
type Kind string

const (
	KindFindCompanies   Kind = "find_companies"
	KindGeneralQuestion Kind = "general_question"
	KindUnclear         Kind = "unclear"
)

// IsValid reports whether k is a known intent kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindFindCompanies, KindGeneralQuestion, KindUnclear:
		return true
	}
	return false
}

// Source records which resolution strategy produced an intent.
type Source string

const (
	SourcePrimary              Source = "primary"
	SourceFallbackContinuation Source = "fallback_continuation"
	SourceFallbackSearch       Source = "fallback_search"
	SourceDefault              Source = "default"
)

const (
	DefaultQuantity = 10
	MaxQuantity     = 200
)

// ResolvedIntent is the structured reading of one user turn. Location is nil
// when no location is known; Quantity and PageNumber are always positive after
// Normalize.
type ResolvedIntent struct {
	Kind               Kind     `json:"intent"`
	Location           *string  `json:"location"`
	ActivityKeywords   []string `json:"activity_keywords,omitempty"`
	Quantity           int      `json:"quantity"`
	PageNumber         int      `json:"page_number"`
	Reasoning          string   `json:"reasoning,omitempty"`
	PreliminaryMessage string   `json:"preliminary_response,omitempty"`
	Source             Source   `json:"source"`
}

// HasLocation reports whether a non-empty location is set.
func (i ResolvedIntent) HasLocation() bool {
	return i.Location != nil && *i.Location != ""
}

// LocationValue returns the location or "".
func (i ResolvedIntent) LocationValue() string {
	if i.Location == nil {
		return ""
	}
	return *i.Location
}

// WithLocation returns a copy of i with the given location; "" clears it.
func (i ResolvedIntent) WithLocation(loc string) ResolvedIntent {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		i.Location = nil
		return i
	}
	i.Location = &loc
	return i
}

// Normalize applies defaults and caps: quantity defaults to DefaultQuantity
// and is capped at maxQuantity, page is at least 1, keywords are trimmed and
// deduplicated, and an empty location becomes nil. Unknown kinds become unclear.
func (i ResolvedIntent) Normalize(maxQuantity int) ResolvedIntent {
	if maxQuantity < 1 {
		maxQuantity = MaxQuantity
	}
	if !i.Kind.IsValid() {
		i.Kind = KindUnclear
	}
	if i.Quantity < 1 {
		i.Quantity = DefaultQuantity
	}
	if i.Quantity > maxQuantity {
		i.Quantity = maxQuantity
	}
	if i.PageNumber < 1 {
		i.PageNumber = 1
	}
	i.ActivityKeywords = textutil.DedupeAndTrim(i.ActivityKeywords)
	if len(i.ActivityKeywords) == 0 {
		i.ActivityKeywords = nil
	}
	i = i.WithLocation(i.LocationValue())
	if i.Source == "" {
		i.Source = SourceDefault
	}
	return i
}

// Unclear is the terminal intent when no strategy could read the turn.
func Unclear(reasoning string) ResolvedIntent {
	return ResolvedIntent{
		Kind:       KindUnclear,
		Quantity:   DefaultQuantity,
		PageNumber: 1,
		Reasoning:  reasoning,
		Source:     SourceDefault,
	}
}
