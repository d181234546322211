package models

import "time"

// TurnEvent summarizes one handled turn for downstream analytics. It carries
// no company payload, only counts.
type TurnEvent struct {
	RequestID   string     `json:"request_id,omitempty"`
	SessionID   string     `json:"session_id"`
	Kind        Kind       `json:"intent"`
	Source      Source     `json:"source"`
	Resolution  Resolution `json:"resolution"`
	Location    string     `json:"location,omitempty"`
	Page        int        `json:"page_number"`
	ResultCount int        `json:"result_count"`
	DurationMS  int64      `json:"duration_ms"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
