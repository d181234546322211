package models

import (
	"time"

	companymodels "ayala/internal/companies/models"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. A user turn carries the intent
// resolved for it; an assistant turn carries the companies it showed.
type Turn struct {
	Role          Role                    `json:"role"`
	Content       string                  `json:"content"`
	Intent        *ResolvedIntent         `json:"structured_intent,omitempty"`
	ResultSummary []companymodels.Company `json:"result_summary,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// History is an append-only, chronologically ordered turn log.
type History []Turn

// Current returns the last turn if it is a user turn.
func (h History) Current() (Turn, bool) {
	if len(h) == 0 || h[len(h)-1].Role != RoleUser {
		return Turn{}, false
	}
	return h[len(h)-1], true
}

// PriorUserTurns returns user turns before the current one, newest first.
func (h History) PriorUserTurns() []Turn {
	end := len(h)
	if _, ok := h.Current(); ok {
		end--
	}
	var out []Turn
	for i := end - 1; i >= 0; i-- {
		if h[i].Role == RoleUser {
			out = append(out, h[i])
		}
	}
	return out
}

// Append returns a new history with turns added; h is never modified.
func (h History) Append(turns ...Turn) History {
	out := make(History, 0, len(h)+len(turns))
	out = append(out, h...)
	return append(out, turns...)
}
