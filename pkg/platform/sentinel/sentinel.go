package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrUnavailable: backing service temporarily unavailable
//   - ErrTimeout: backing service did not answer within its budget
//   - ErrMalformed: backing service answered with data we cannot decode
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrTimeout     = errors.New("timeout")
	ErrMalformed   = errors.New("malformed response")
)
