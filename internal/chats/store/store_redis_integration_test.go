//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companymodels "ayala/internal/companies/models"
	"ayala/internal/conversation/models"
	"ayala/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedis(s.redis.Client, WithMaxTurns(4), WithTTL(time.Hour))
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTripWithIntentAndResults() {
	ctx := context.Background()
	loc := "Алматы"
	intent := models.ResolvedIntent{Kind: models.KindFindCompanies, Location: &loc, Quantity: 10, PageNumber: 1, Source: models.SourcePrimary}
	user := models.Turn{Role: models.RoleUser, Content: "Найди компании в Алматы", Intent: &intent, CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}
	assistant := models.Turn{
		Role:          models.RoleAssistant,
		Content:       "Нашел 1 компанию",
		ResultSummary: []companymodels.Company{{BIN: "123456789012", Name: "ТОО Альфа", Taxes: map[int]float64{2024: 100}}},
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}

	s.Require().NoError(s.store.Append(ctx, "s1", user, assistant))

	h, err := s.store.Load(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(h, 2)
	s.Require().NotNil(h[0].Intent)
	s.Equal("Алматы", h[0].Intent.LocationValue())
	s.True(user.CreatedAt.Equal(h[0].CreatedAt))
	s.Require().Len(h[1].ResultSummary, 1)
	s.Equal(100.0, h[1].ResultSummary[0].Taxes[2024])
}

func (s *RedisStoreSuite) TestTrimAndTTL() {
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		s.Require().NoError(s.store.Append(ctx, "s1", models.Turn{Role: models.RoleUser, Content: fmt.Sprint(i)}))
	}
	h, err := s.store.Load(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(h, 4)
	s.Equal("2", h[0].Content)

	ttl, err := s.redis.Client.TTL(ctx, turnsKey("s1")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 59*time.Minute)
}

func (s *RedisStoreSuite) TestUnknownSessionIsEmpty() {
	h, err := s.store.Load(context.Background(), "missing")
	s.Require().NoError(err)
	s.Empty(h)
}
