// Package service exposes direct company search with a total count.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ayala/internal/companies/locality"
	"ayala/internal/companies/models"
	"ayala/internal/companies/store"
	dErrors "ayala/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store is the record-store contract shared by the Postgres and in-memory stores.
type Store interface {
	Search(ctx context.Context, f models.SearchFilter) ([]models.Company, error)
	Count(ctx context.Context, f models.SearchFilter) (int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Localities(ctx context.Context) ([]models.LocalityCount, error)
}

const (
	DefaultLimit = 10
	MaxLimit     = 200

	// sampleTranslations bounds the example table in SupportedCities.
	sampleTranslations = 20
)

// SupportedCities describes the Latin place names the search understands.
type SupportedCities struct {
	TotalSupported     int               `json:"total_supported"`
	SupportedCities    []string          `json:"supported_cities"`
	SampleTranslations map[string]string `json:"sample_translations"`
}

// CityTranslation is the result of translating one place name.
type CityTranslation struct {
	Original            string   `json:"original"`
	Translated          string   `json:"translated"`
	WasTranslated       bool     `json:"was_translated"`
	AllSearchVariations []string `json:"all_search_variations"`
}

// Service runs paged company searches.
type Service struct {
	store    Store
	logger   *slog.Logger
	maxLimit int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMaxLimit caps the page size.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

func New(st Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("company store is required")
	}
	s := &Service{store: st, maxLimit: MaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Search returns one page of companies and the total match count. Limit is
// defaulted and capped; the page and the count are fetched concurrently.
func (s *Service) Search(ctx context.Context, f models.SearchFilter) (*models.SearchResult, error) {
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > s.maxLimit {
		f.Limit = s.maxLimit
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		companies []models.Company
		total     int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companies, err = s.store.Search(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		if store.IsQueryFailed(err) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "company search is temporarily unavailable")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search companies")
	}

	return &models.SearchResult{Companies: companies, Total: total}, nil
}

// Get returns one company by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to get company")
	}
	return c, nil
}

// Localities lists registry localities by company count.
func (s *Service) Localities(ctx context.Context) ([]models.LocalityCount, error) {
	locs, err := s.store.Localities(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list localities")
	}
	return locs, nil
}

// SupportedCities lists every Latin place name with a registry translation.
func (s *Service) SupportedCities() SupportedCities {
	latin := locality.Latin()
	sample := make(map[string]string, min(len(latin), sampleTranslations))
	for _, name := range latin[:min(len(latin), sampleTranslations)] {
		sample[name] = locality.Translate(name)
	}
	return SupportedCities{
		TotalSupported:     len(latin),
		SupportedCities:    latin,
		SampleTranslations: sample,
	}
}

// TranslateCity translates a place name to its registry spelling.
func (s *Service) TranslateCity(name string) (*CityTranslation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "city_name is required")
	}
	translated := locality.Translate(name)
	return &CityTranslation{
		Original:            name,
		Translated:          translated,
		WasTranslated:       translated != name,
		AllSearchVariations: locality.Variations(name),
	}, nil
}

func storeError(err error, msg string) error {
	switch {
	case store.IsNotFound(err):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "company not found")
	case store.IsQueryFailed(err):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "company registry is temporarily unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
