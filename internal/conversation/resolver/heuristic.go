package resolver

import (
	"fmt"

	"ayala/internal/conversation/models"
	"ayala/internal/conversation/rules"
)

// Heuristic reads intents from the rule tables alone. It performs no I/O and
// is the availability floor when the model cannot be reached.
type Heuristic struct {
	maxQuantity int
}

func NewHeuristic(maxQuantity int) *Heuristic {
	if maxQuantity < 1 {
		maxQuantity = models.MaxQuantity
	}
	return &Heuristic{maxQuantity: maxQuantity}
}

// searchContext is what a prior user turn established.
type searchContext struct {
	location   string
	activities []string
	quantity   int
	hasQty     bool
}

// ResolveFallback handles continuation requests ("еще", "give me more"). It
// returns false when the current turn is not a continuation, when no earlier
// turn named a searchable location, or when the current turn names a
// different location than that context.
//
// The page is 2 plus the number of earlier continuation turns. That count
// includes continuations of older contexts, so it can overshoot after the
// user switched cities; Refine corrects it when structured history exists.
func (h *Heuristic) ResolveFallback(history models.History) (models.ResolvedIntent, bool) {
	current, ok := history.Current()
	if !ok {
		return models.ResolvedIntent{}, false
	}
	text := rules.Normalize(current.Content)
	if !rules.Continuation.Any(text) {
		return models.ResolvedIntent{}, false
	}

	prior := history.PriorUserTurns()
	sc, found := findContext(prior)
	if !found {
		return models.ResolvedIntent{}, false
	}
	if loc, named := rules.Gazetteer.First(text); named && loc != sc.location {
		return models.ResolvedIntent{}, false
	}

	continuations := 0
	for _, t := range prior {
		if rules.Continuation.Any(rules.Normalize(t.Content)) {
			continuations++
		}
	}

	quantity := models.DefaultQuantity
	if n, ok := rules.Quantity(text); ok {
		quantity = n
	} else if sc.hasQty {
		quantity = sc.quantity
	}

	page := 2 + continuations
	intent := models.ResolvedIntent{
		Kind:             models.KindFindCompanies,
		ActivityKeywords: sc.activities,
		Quantity:         quantity,
		PageNumber:       page,
		Reasoning:        fmt.Sprintf("continuation of the %s search, page %d", sc.location, page),
		Source:           models.SourceFallbackContinuation,
	}.WithLocation(sc.location)
	return intent.Normalize(h.maxQuantity), true
}

// findContext scans turns (newest first) for one that names a location and
// reads as a search.
func findContext(turns []models.Turn) (searchContext, bool) {
	for _, t := range turns {
		text := rules.Normalize(t.Content)
		loc, ok := rules.Gazetteer.First(text)
		if !ok || !rules.SearchMarkers.Any(text) {
			continue
		}
		sc := searchContext{location: loc, activities: rules.Activities.All(text)}
		sc.quantity, sc.hasQty = rules.Quantity(text)
		return sc, true
	}
	return searchContext{}, false
}

// ResolveSearch reads the current turn as a fresh search. It always returns an
// intent; a turn with neither a location nor a search marker is unclear.
func (h *Heuristic) ResolveSearch(history models.History) models.ResolvedIntent {
	current, ok := history.Current()
	if !ok {
		return models.Unclear("no user turn to resolve")
	}
	text := rules.Normalize(current.Content)
	loc, hasLoc := rules.Gazetteer.First(text)
	if !hasLoc && !rules.SearchMarkers.Any(text) {
		return models.Unclear("no location or search request recognized")
	}

	quantity, _ := rules.Quantity(text)
	intent := models.ResolvedIntent{
		Kind:             models.KindFindCompanies,
		ActivityKeywords: rules.Activities.All(text),
		Quantity:         quantity,
		PageNumber:       1,
		Source:           models.SourceFallbackSearch,
	}
	if hasLoc {
		intent = intent.WithLocation(loc)
		intent.Reasoning = "fresh search in " + loc
	} else {
		intent.Reasoning = "search request without a recognized location"
	}
	return intent.Normalize(h.maxQuantity)
}
