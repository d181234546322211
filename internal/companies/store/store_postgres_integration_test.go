//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	companymetrics "ayala/internal/companies/metrics"
	"ayala/internal/companies/models"
	"ayala/internal/companies/store"
	"ayala/pkg/platform/tx"
	"ayala/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "companies"))
}

func (s *PostgresStoreSuite) insert(name, locality, activity string, tax2025 *float64) uuid.UUID {
	id := uuid.New()
	_, err := s.postgres.DB.ExecContext(context.Background(), `
		INSERT INTO companies (id, "BIN", "Company", "Activity", "Locality", tax_payment_2025)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, "123456789012", name, activity, locality, tax2025)
	s.Require().NoError(err)
	return id
}

func ptr(v float64) *float64 { return &v }

func (s *PostgresStoreSuite) TestSearchFiltersAndOrders() {
	ctx := context.Background()
	s.insert("ТОО Альфа", "г. Алматы", "Строительство жилых зданий", ptr(100))
	s.insert("ТОО Бета", "г. Алматы", "Розничная торговля", ptr(500))
	s.insert("ТОО Гамма", "г. Алматы", "Строительство дорог", nil)
	s.insert("ТОО Дельта", "г. Астана", "Строительство", ptr(900))

	got, err := s.store.Search(ctx, models.SearchFilter{Location: "almaty", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("ТОО Бета", got[0].Name)
	s.Equal("ТОО Альфа", got[1].Name)
	s.Equal("ТОО Гамма", got[2].Name)

	_, amount, ok := got[0].LatestTax()
	s.True(ok)
	s.Equal(float64(500), amount)
}

func (s *PostgresStoreSuite) TestMultiKeywordActivityUsesFullText() {
	ctx := context.Background()
	s.insert("ТОО Альфа", "Алматы", "Строительство жилых зданий", nil)
	s.insert("ТОО Бета", "Алматы", "Розничная торговля продуктами", nil)
	s.insert("ТОО Гамма", "Алматы", "Образование", nil)

	got, err := s.store.Search(ctx, models.SearchFilter{
		Location:         "Алматы",
		ActivityKeywords: []string{"строительство", "торговля"},
		Limit:            10,
	})
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *PostgresStoreSuite) TestPaginationNeverOverlaps() {
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		s.insert(fmt.Sprintf("ИП %02d", i), "Караганда", "Услуги", nil)
	}

	seen := map[uuid.UUID]bool{}
	for page := 1; page <= 3; page++ {
		got, err := s.store.Search(ctx, models.SearchFilter{Location: "Караганда", Limit: 10, Offset: (page - 1) * 10})
		s.Require().NoError(err)
		for _, c := range got {
			s.False(seen[c.ID])
			seen[c.ID] = true
		}
	}
	s.Len(seen, 25)

	total, err := s.store.Count(ctx, models.SearchFilter{Location: "Караганда", Limit: 10})
	s.Require().NoError(err)
	s.Equal(25, total)
}

func (s *PostgresStoreSuite) TestJoinsCallerTransaction() {
	ctx := context.Background()
	s.insert("ТОО Альфа", "Алматы", "Услуги", nil)

	err := tx.Run(ctx, s.postgres.DB, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context) error {
		got, err := s.store.Search(ctx, models.SearchFilter{Location: "Алматы", Limit: 10})
		s.Require().NoError(err)
		s.Len(got, 1)
		return nil
	})
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestClosedDatabaseReportsQueryFailed() {
	db, err := sql.Open("pgx", s.postgres.DSN)
	s.Require().NoError(err)
	s.Require().NoError(db.Close())

	_, err = store.NewPostgres(db).Search(context.Background(), models.SearchFilter{Limit: 1})
	s.True(store.IsQueryFailed(err))
}

func (s *PostgresStoreSuite) TestTieredFailureFallsBackToSimplified() {
	ctx := context.Background()
	s.insert("ТОО Альфа", "Алматы", "Строительство жилых зданий", nil)
	s.insert("ТОО Бета", "Алматы", "Розничная торговля продуктами", nil)
	s.insert("ТОО Гамма", "Алматы", "Образование", nil)

	m := companymetrics.NewWithRegistry(prometheus.NewRegistry())
	st := store.NewPostgres(s.postgres.DB,
		store.WithTextSearchConfig("no_such_config"),
		store.WithMetrics(m),
	)
	f := models.SearchFilter{
		Location:         "Алматы",
		ActivityKeywords: []string{"строительство", "торговля"},
		Limit:            10,
	}

	got, err := st.Search(ctx, f)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(1.0, promtest.ToFloat64(m.QueryFallbacks))
	s.Equal(0.0, promtest.ToFloat64(m.QueryFailures))

	total, err := st.Count(ctx, f)
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Equal(2.0, promtest.ToFloat64(m.QueryFallbacks))
}

func (s *PostgresStoreSuite) TestGet() {
	ctx := context.Background()
	id := s.insert("ТОО Альфа", "Алматы", "Услуги", ptr(42))

	got, err := s.store.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(id, got.ID)
	s.Equal("ТОО Альфа", got.Name)
	s.Equal(map[int]float64{2025: 42}, got.Taxes)

	_, err = s.store.Get(ctx, uuid.New())
	s.True(store.IsNotFound(err))
}

func (s *PostgresStoreSuite) TestNullCompanyNameScansEmpty() {
	ctx := context.Background()
	id := s.insert("", "Алматы", "Услуги", nil)
	_, err := s.postgres.DB.ExecContext(ctx, `UPDATE companies SET "Company" = NULL WHERE id = $1`, id)
	s.Require().NoError(err)

	got, err := s.store.Search(ctx, models.SearchFilter{Location: "Алматы", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Empty(got[0].Name)
}

func (s *PostgresStoreSuite) TestLocalities() {
	ctx := context.Background()
	s.insert("ТОО Альфа", "Алматы", "Услуги", nil)
	s.insert("ТОО Бета", "Алматы", "Услуги", nil)
	s.insert("ТОО Гамма", "Астана", "Услуги", nil)

	got, err := s.store.Localities(ctx)
	s.Require().NoError(err)
	s.Equal([]models.LocalityCount{
		{Location: "Алматы", CompanyCount: 2},
		{Location: "Астана", CompanyCount: 1},
	}, got)
}
