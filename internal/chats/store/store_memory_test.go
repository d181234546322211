package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"ayala/internal/conversation/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory(WithMaxTurns(4))
}

func turn(role models.Role, content string) models.Turn {
	return models.Turn{Role: role, Content: content}
}

func (s *InMemoryStoreSuite) TestUnknownSessionIsEmpty() {
	h, err := s.store.Load(context.Background(), "missing")
	s.Require().NoError(err)
	s.Empty(h)
}

func (s *InMemoryStoreSuite) TestAppendKeepsOrder() {
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, "s1", turn(models.RoleUser, "привет"), turn(models.RoleAssistant, "здравствуйте")))
	s.Require().NoError(s.store.Append(ctx, "s1", turn(models.RoleUser, "еще")))

	h, err := s.store.Load(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(h, 3)
	s.Equal("привет", h[0].Content)
	s.Equal("еще", h[2].Content)
}

func (s *InMemoryStoreSuite) TestTrimsToNewestTurns() {
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		s.Require().NoError(s.store.Append(ctx, "s1", turn(models.RoleUser, fmt.Sprint(i))))
	}
	h, err := s.store.Load(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(h, 4)
	s.Equal("2", h[0].Content)
	s.Equal("5", h[3].Content)
}

func (s *InMemoryStoreSuite) TestLoadReturnsCopy() {
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, "s1", turn(models.RoleUser, "a")))
	h, _ := s.store.Load(ctx, "s1")
	h[0].Content = "changed"

	again, _ := s.store.Load(ctx, "s1")
	s.Equal("a", again[0].Content)
}

func (s *InMemoryStoreSuite) TestSessionIDRequired() {
	s.Error(s.store.Append(context.Background(), "", turn(models.RoleUser, "a")))
	_, err := s.store.Load(context.Background(), "")
	s.Error(err)
}
