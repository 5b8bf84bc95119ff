package leaderboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/puzzle-platform/internal/play"
)

// Entry is one ranked row.
type Entry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	Points      int    `json:"points"`
	Plays       int    `json:"plays"`
	Completions int    `json:"completions"`
}

// ServiceOptions configures leaderboard behavior.
type ServiceOptions struct {
	TopN           int
	GameEntryTTL   time.Duration
	RedisKeyPrefix string
}

// Service keeps per-game best scores and all-time player totals in Redis
// sorted sets.
type Service struct {
	redis  *redis.Client
	logger zerolog.Logger
	topN   int
	ttl    time.Duration
	prefix string
}

// NewService constructs a leaderboard service instance.
func NewService(client *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 50
	}
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "lb"
	}
	return &Service{
		redis:  client,
		logger: logger.With().Str("component", "leaderboard").Logger(),
		topN:   topN,
		ttl:    opts.GameEntryTTL,
		prefix: prefix,
	}
}

// RecordSession stores the outcome of a finished session. A player's game
// score only moves up; the all-time board sums points of completed runs.
func (s *Service) RecordSession(ctx context.Context, sess play.Session) error {
	if !sess.Over() {
		return nil
	}
	zKey := s.gameKey(sess.GameID)
	metaKey := s.metaKey(sess.GameID, sess.PlayerID)
	completed := sess.Status == play.StatusCompleted

	pipe := s.redis.TxPipeline()
	pipe.ZAddGT(ctx, zKey, redis.Z{Score: float64(sess.Points), Member: sess.PlayerID})
	pipe.HIncrBy(ctx, metaKey, "plays", 1)
	if completed {
		pipe.HIncrBy(ctx, metaKey, "completions", 1)
		pipe.ZIncrBy(ctx, s.playersKey(), float64(sess.Points), sess.PlayerID)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, zKey, s.ttl)
		pipe.Expire(ctx, metaKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update leaderboard for game %s: %w", sess.GameID, err)
	}
	return nil
}

// TopForGame returns the best scores of one game, highest first.
func (s *Service) TopForGame(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	results, err := s.redis.ZRevRangeWithScores(ctx, s.gameKey(gameID), 0, int64(s.clamp(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch game leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		player, _ := z.Member.(string)
		entry := Entry{Rank: i + 1, PlayerID: player, Points: int(z.Score)}
		meta, err := s.redis.HGetAll(ctx, s.metaKey(gameID, player)).Result()
		if err != nil {
			s.logger.Warn().Err(err).Str("game_id", gameID).Msg("failed to read leaderboard metadata")
		} else {
			entry.Plays = parseInt(meta["plays"])
			entry.Completions = parseInt(meta["completions"])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TopPlayers returns all-time totals across every game.
func (s *Service) TopPlayers(ctx context.Context, limit int) ([]Entry, error) {
	results, err := s.redis.ZRevRangeWithScores(ctx, s.playersKey(), 0, int64(s.clamp(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch player leaderboard: %w", err)
	}
	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		player, _ := z.Member.(string)
		entries = append(entries, Entry{Rank: i + 1, PlayerID: player, Points: int(z.Score)})
	}
	return entries, nil
}

func (s *Service) clamp(limit int) int {
	if limit <= 0 || limit > s.topN {
		return s.topN
	}
	return limit
}

func (s *Service) gameKey(gameID string) string {
	return fmt.Sprintf("%s:game:%s", s.prefix, gameID)
}

func (s *Service) metaKey(gameID, playerID string) string {
	return fmt.Sprintf("%s:game:%s:meta:%s", s.prefix, gameID, playerID)
}

func (s *Service) playersKey() string {
	return s.prefix + ":players:all_time"
}

func parseInt(val string) int {
	if val == "" {
		return 0
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}
