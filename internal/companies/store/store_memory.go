package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ayala/internal/companies/models"
	textutil "ayala/pkg/platform/strings"
)

// InMemory is a process-local company store with the same filtering and
// ordering contract as PostgresStore. Full-text predicates are approximated by
// requiring every word of the filter to occur in the field.
type InMemory struct {
	mu        sync.RWMutex
	companies []models.Company
	failWith  error
}

// NewInMemory returns a store seeded with companies.
func NewInMemory(companies ...models.Company) *InMemory {
	s := &InMemory{}
	s.Add(companies...)
	return s
}

// Add appends companies to the store.
func (s *InMemory) Add(companies ...models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append(s.companies, companies...)
}

// FailWith makes every subsequent call fail with ErrQueryFailed when fail is
// true. Used to exercise degraded paths without a database.
func (s *InMemory) FailWith(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fail {
		s.failWith = ErrQueryFailed
	} else {
		s.failWith = nil
	}
}

func (s *InMemory) Search(ctx context.Context, f models.SearchFilter) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrQueryFailed
	}
	matched, err := s.match(normalizeFilter(f))
	if err != nil {
		return nil, err
	}
	sortCompanies(matched)

	if f.Offset >= len(matched) {
		return []models.Company{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]models.Company, end-f.Offset)
	copy(out, matched[f.Offset:end])
	return out, nil
}

func (s *InMemory) Count(ctx context.Context, f models.SearchFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, ErrQueryFailed
	}
	matched, err := s.match(normalizeFilter(f))
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *InMemory) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrQueryFailed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, c := range s.companies {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) Localities(ctx context.Context) ([]models.LocalityCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrQueryFailed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	counts := map[string]int{}
	for _, c := range s.companies {
		if c.Locality != "" {
			counts[c.Locality]++
		}
	}
	out := make([]models.LocalityCount, 0, len(counts))
	for loc, n := range counts {
		out = append(out, models.LocalityCount{Location: loc, CompanyCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyCount != out[j].CompanyCount {
			return out[i].CompanyCount > out[j].CompanyCount
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func (s *InMemory) match(f models.SearchFilter) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	location := textutil.Fold(f.Location)
	nameWords := strings.Fields(textutil.Fold(f.CompanyName))
	keywords := textutil.DedupeFold(f.ActivityKeywords)

	var out []models.Company
	for _, c := range s.companies {
		if location != "" && !strings.Contains(textutil.Fold(c.Locality), location) {
			continue
		}
		if len(nameWords) > 0 && !containsAll(textutil.Fold(c.Name), nameWords) {
			continue
		}
		if len(keywords) > 0 && !containsAny(textutil.Fold(c.Activity), keywords) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// sortCompanies mirrors companyOrder.
func sortCompanies(cs []models.Company) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Locality != b.Locality {
			return a.Locality < b.Locality
		}
		_, ta, oka := a.LatestTax()
		_, tb, okb := b.LatestTax()
		if oka != okb {
			return oka
		}
		if ta != tb {
			return ta > tb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
}
