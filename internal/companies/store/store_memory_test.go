package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ayala/internal/companies/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func company(name, locality, activity string, taxes map[int]float64) models.Company {
	return models.Company{
		ID:       uuid.New(),
		BIN:      "123456789012",
		Name:     name,
		Locality: locality,
		Activity: activity,
		Taxes:    taxes,
	}
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory(
		company("ТОО Альфа", "г. Алматы", "Строительство жилых зданий", map[int]float64{2024: 100}),
		company("ТОО Бета", "г. Алматы", "Розничная торговля", map[int]float64{2025: 500}),
		company("ТОО Гамма", "г. Алматы", "Строительство дорог", nil),
		company("ТОО Дельта", "г. Астана", "Строительство", map[int]float64{2025: 900}),
	)
}

func (s *InMemoryStoreSuite) TestLocationIsTranslatedAndCaseInsensitive() {
	got, err := s.store.Search(context.Background(), models.SearchFilter{Location: "almaty", Limit: 10})
	s.Require().NoError(err)
	s.Len(got, 3)

	got, err = s.store.Search(context.Background(), models.SearchFilter{Location: "АЛМАТЫ", Limit: 10})
	s.Require().NoError(err)
	s.Len(got, 3)
}

func (s *InMemoryStoreSuite) TestOrderingByLatestTaxThenName() {
	got, err := s.store.Search(context.Background(), models.SearchFilter{Location: "Алматы", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("ТОО Бета", got[0].Name)
	s.Equal("ТОО Альфа", got[1].Name)
	s.Equal("ТОО Гамма", got[2].Name, "companies without tax figures sort last")
}

func (s *InMemoryStoreSuite) TestActivityKeywordsAreOred() {
	got, err := s.store.Search(context.Background(), models.SearchFilter{
		Location:         "Алматы",
		ActivityKeywords: []string{"торговля", "дорог"},
		Limit:            10,
	})
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *InMemoryStoreSuite) TestPagesDoNotOverlap() {
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		s.store.Add(company(fmt.Sprintf("ИП %02d", i), "Караганда", "Услуги", nil))
	}

	seen := map[uuid.UUID]bool{}
	for page := 1; page <= 3; page++ {
		got, err := s.store.Search(ctx, models.SearchFilter{Location: "karaganda", Limit: 10, Offset: (page - 1) * 10})
		s.Require().NoError(err)
		for _, c := range got {
			s.False(seen[c.ID], "company %s returned on two pages", c.Name)
			seen[c.ID] = true
		}
	}
	s.Len(seen, 25)

	total, err := s.store.Count(ctx, models.SearchFilter{Location: "karaganda"})
	s.Require().NoError(err)
	s.Equal(25, total)
}

func (s *InMemoryStoreSuite) TestOffsetPastEndIsEmpty() {
	got, err := s.store.Search(context.Background(), models.SearchFilter{Location: "Астана", Limit: 10, Offset: 10})
	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *InMemoryStoreSuite) TestFailureSurfacesAsQueryFailed() {
	s.store.FailWith(true)
	_, err := s.store.Search(context.Background(), models.SearchFilter{Limit: 1})
	s.True(IsQueryFailed(err))

	_, err = s.store.Count(context.Background(), models.SearchFilter{})
	s.ErrorIs(err, ErrQueryFailed)
}

func (s *InMemoryStoreSuite) TestGet() {
	want := company("ТОО Епсилон", "Шымкент", "Услуги", nil)
	s.store.Add(want)

	got, err := s.store.Get(context.Background(), want.ID)
	s.Require().NoError(err)
	s.Equal(want, *got)

	_, err = s.store.Get(context.Background(), uuid.New())
	s.True(IsNotFound(err))
	s.False(IsQueryFailed(err))
}

func (s *InMemoryStoreSuite) TestLocalitiesOrderedByCount() {
	s.store.Add(company("ТОО Без адреса", "", "Услуги", nil))

	got, err := s.store.Localities(context.Background())
	s.Require().NoError(err)
	s.Equal([]models.LocalityCount{
		{Location: "г. Алматы", CompanyCount: 3},
		{Location: "г. Астана", CompanyCount: 1},
	}, got)
}

func (s *InMemoryStoreSuite) TestLookupFailuresSurfaceAsQueryFailed() {
	s.store.FailWith(true)
	_, err := s.store.Get(context.Background(), uuid.New())
	s.True(IsQueryFailed(err))

	_, err = s.store.Localities(context.Background())
	s.True(IsQueryFailed(err))
}
