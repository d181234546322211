package models

// Outcome is the coarse result of a turn.
type Outcome string

const (
	// OutcomeOK means the primary resolver read the turn.
	OutcomeOK Outcome = "ok"
	// OutcomeDegraded means a fallback strategy produced the answer.
	OutcomeDegraded Outcome = "degraded"
	// OutcomeFailed means the turn ended with a terminal apology or prompt.
	OutcomeFailed Outcome = "failed"
)

// Reason explains a degraded or failed outcome.
type Reason string

const (
	ReasonResolverTimeout   Reason = "resolver_timeout"
	ReasonResolverMalformed Reason = "resolver_malformed"
	ReasonCircuitOpen       Reason = "circuit_open"
	ReasonResolverFailed    Reason = "resolver_failed"
	ReasonQueryFailed       Reason = "query_failed"
	ReasonUnclear           Reason = "unclear"
	ReasonInternal          Reason = "internal"
)

// Resolution tags how a turn was answered. OK carries no reason.
type Resolution struct {
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason,omitempty"`
}

func OK() Resolution {
	return Resolution{Outcome: OutcomeOK}
}

func Degraded(reason Reason) Resolution {
	return Resolution{Outcome: OutcomeDegraded, Reason: reason}
}

func Failed(reason Reason) Resolution {
	return Resolution{Outcome: OutcomeFailed, Reason: reason}
}

// IsOK reports whether the turn was answered by the primary path.
func (r Resolution) IsOK() bool {
	return r.Outcome == OutcomeOK
}
