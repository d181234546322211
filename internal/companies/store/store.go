// Package store composes and runs company registry queries.
//
// Every call runs inside one read-only transaction. The tiered form (full-text
// predicates for multi-word filters) runs under a savepoint; if it fails the
// savepoint is rolled back and the simplified ILIKE-only form runs in the same
// transaction. Callers only ever see ErrQueryFailed, never a driver error.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	companymetrics "ayala/internal/companies/metrics"
	"ayala/pkg/platform/sentinel"
)

// ErrQueryFailed reports that neither query form could be executed.
var ErrQueryFailed = fmt.Errorf("company query failed: %w", sentinel.ErrUnavailable)

// ErrNotFound reports that no company has the requested id.
var ErrNotFound = fmt.Errorf("company: %w", sentinel.ErrNotFound)

// IsNotFound reports whether err came from a lookup of a missing company.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsQueryFailed reports whether err came from a failed company query.
func IsQueryFailed(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}

const (
	defaultQueryTimeout     = 5 * time.Second
	defaultTextSearchConfig = "russian"
)

var textSearchConfigName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Option configures a store.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *companymetrics.Metrics
	timeout  time.Duration
	tsConfig string
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *companymetrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithQueryTimeout bounds each Search or Count call.
func WithQueryTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTextSearchConfig selects the PostgreSQL text search configuration used by
// the tiered form. Names that are not plain identifiers are ignored.
func WithTextSearchConfig(name string) Option {
	return func(o *options) {
		if textSearchConfigName.MatchString(name) {
			o.tsConfig = name
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: defaultQueryTimeout, tsConfig: defaultTextSearchConfig}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
