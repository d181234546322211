package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"ayala/internal/conversation/models"
)

// intentKeys is the exact key set of a model answer.
var intentKeys = []string{
	"intent",
	"location",
	"activity_keywords",
	"quantity",
	"page_number",
	"reasoning",
	"preliminary_response",
}

// extractor pulls a candidate JSON object out of a raw model answer.
type extractor struct {
	name    string
	extract func(raw string) (string, bool)
}

// extractors run in order; the first candidate that decodes wins.
var extractors = []extractor{
	{name: "whole_body", extract: wholeBody},
	{name: "fenced_block", extract: fencedBlock},
	{name: "first_object", extract: firstObject},
}

func wholeBody(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")

func fencedBlock(raw string) (string, bool) {
	m := fencePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// firstObject returns the first brace-balanced object, ignoring braces inside
// JSON strings.
func firstObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeIntent locates and strictly decodes the intent object in raw. Every
// failure wraps ErrMalformed.
func decodeIntent(raw string) (models.ResolvedIntent, error) {
	lastErr := fmt.Errorf("no JSON object found")
	for _, ex := range extractors {
		candidate, ok := ex.extract(raw)
		if !ok {
			continue
		}
		intent, err := parseIntent(candidate)
		if err == nil {
			return intent, nil
		}
		lastErr = fmt.Errorf("%s: %w", ex.name, err)
	}
	return models.ResolvedIntent{}, fmt.Errorf("%w: %v", ErrMalformed, lastErr)
}

func parseIntent(body string) (models.ResolvedIntent, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return models.ResolvedIntent{}, fmt.Errorf("decode object: %w", err)
	}
	if len(fields) != len(intentKeys) {
		return models.ResolvedIntent{}, fmt.Errorf("expected %d keys, got %d", len(intentKeys), len(fields))
	}
	for _, k := range intentKeys {
		if _, ok := fields[k]; !ok {
			return models.ResolvedIntent{}, fmt.Errorf("missing key %q", k)
		}
	}

	var (
		intent models.ResolvedIntent
		kind   string
		err    error
	)
	if err = decodeString(fields["intent"], &kind, false); err != nil {
		return intent, fmt.Errorf("intent: %w", err)
	}
	intent.Kind = models.Kind(kind)
	if !intent.Kind.IsValid() {
		return intent, fmt.Errorf("intent: unknown value %q", kind)
	}

	var location string
	if err = decodeString(fields["location"], &location, true); err != nil {
		return intent, fmt.Errorf("location: %w", err)
	}
	intent = intent.WithLocation(location)

	if !isNull(fields["activity_keywords"]) {
		if err = json.Unmarshal(fields["activity_keywords"], &intent.ActivityKeywords); err != nil {
			return intent, fmt.Errorf("activity_keywords: %w", err)
		}
	}

	if intent.Quantity, err = decodeInt(fields["quantity"], true); err != nil {
		return intent, fmt.Errorf("quantity: %w", err)
	}
	if intent.PageNumber, err = decodeInt(fields["page_number"], false); err != nil {
		return intent, fmt.Errorf("page_number: %w", err)
	}
	if err = decodeString(fields["reasoning"], &intent.Reasoning, true); err != nil {
		return intent, fmt.Errorf("reasoning: %w", err)
	}
	if err = decodeString(fields["preliminary_response"], &intent.PreliminaryMessage, true); err != nil {
		return intent, fmt.Errorf("preliminary_response: %w", err)
	}
	return intent, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage, dst *string, nullable bool) error {
	if isNull(raw) {
		if nullable {
			*dst = ""
			return nil
		}
		return fmt.Errorf("must not be null")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("expected string: %w", err)
	}
	return nil
}

// decodeInt accepts integral JSON numbers only.
func decodeInt(raw json.RawMessage, nullable bool) (int, error) {
	if isNull(raw) {
		if nullable {
			return 0, nil
		}
		return 0, fmt.Errorf("must not be null")
	}
	if t := bytes.TrimSpace(raw); len(t) > 0 && t[0] == '"' {
		return 0, fmt.Errorf("expected number, got string")
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("expected number: %w", err)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("expected integer, got %s", n)
	}
	return int(f), nil
}
