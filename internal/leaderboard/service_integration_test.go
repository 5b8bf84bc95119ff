//go:build integration
// +build integration

package leaderboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gokatarajesh/puzzle-platform/internal/play"
)

type RedisSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcredis.RedisContainer
	client    *redis.Client
	svc       *Service
}

func (s *RedisSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.container, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(time.Minute),
		),
	)
	s.Require().NoError(err, "start redis container")

	host, err := s.container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := s.container.MappedPort(s.ctx, "6379/tcp")
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(s.client.Ping(s.ctx).Err())
	s.svc = NewService(s.client, zerolog.Nop(), ServiceOptions{GameEntryTTL: time.Hour})
}

func (s *RedisSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(s.ctx).Err())
}

func ended(gameID, player string, status play.Status, points int) play.Session {
	return play.Session{ID: player + "-" + gameID, GameID: gameID, PlayerID: player, Status: status, Points: points}
}

func (s *RedisSuite) TestBestScoreOnlyMovesUp() {
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g1", "p1", play.StatusCompleted, 3)))
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g1", "p1", play.StatusLost, 1)))
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g1", "p2", play.StatusCompleted, 5)))
	s.Require().NoError(s.svc.RecordSession(s.ctx, play.Session{GameID: "g1", PlayerID: "p3", Status: play.StatusActive, Points: 9}))

	top, err := s.svc.TopForGame(s.ctx, "g1", 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(Entry{Rank: 1, PlayerID: "p2", Points: 5, Plays: 1, Completions: 1}, top[0])
	s.Equal(Entry{Rank: 2, PlayerID: "p1", Points: 3, Plays: 2, Completions: 1}, top[1])

	ttl, err := s.client.TTL(s.ctx, "lb:game:g1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisSuite) TestPlayerTotalsSumCompletedRuns() {
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g1", "p1", play.StatusCompleted, 3)))
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g2", "p1", play.StatusCompleted, 4)))
	s.Require().NoError(s.svc.RecordSession(s.ctx, ended("g2", "p2", play.StatusTimeout, 6)))

	top, err := s.svc.TopPlayers(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("p1", top[0].PlayerID)
	s.Equal(7, top[0].Points)
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(RedisSuite))
}
