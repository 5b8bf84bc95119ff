package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultGap is how far a skipped puzzle moves back in the queue.
const DefaultGap = 3

const queueTTL = 7 * 24 * time.Hour

var ErrNotQueued = errors.New("game is not in the feed")

// Defer returns a copy of order with the entry at index moved gap positions
// later, clamped to the end. Everything else keeps its relative order. An
// index out of range or a non-positive gap returns an unchanged copy.
func Defer(order []string, index, gap int) []string {
	out := slices.Clone(order)
	if index < 0 || index >= len(out) || gap <= 0 {
		return out
	}
	item := out[index]
	out = slices.Delete(out, index, index+1)
	to := min(index+gap, len(out))
	return slices.Insert(out, to, item)
}

// Source lists published games, newest first.
type Source interface {
	RecentIDs(ctx context.Context, limit int) ([]string, error)
}

// Queue stores a per-user ordering of game ids.
type Queue interface {
	Load(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, order []string) error
}

// RedisQueue keeps each user's feed as a Redis list.
type RedisQueue struct {
	client *redis.Client
}

var _ Queue = (*RedisQueue)(nil)

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) key(userID string) string {
	return "feed:" + userID
}

func (q *RedisQueue) Load(ctx context.Context, userID string) ([]string, error) {
	ids, err := q.client.LRange(ctx, q.key(userID), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return ids, nil
}

// Save replaces the list atomically.
func (q *RedisQueue) Save(ctx context.Context, userID string, order []string) error {
	key := q.key(userID)
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(order) == 0 {
			return nil
		}
		vals := make([]any, len(order))
		for i, id := range order {
			vals[i] = id
		}
		pipe.RPush(ctx, key, vals...)
		pipe.Expire(ctx, key, queueTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save feed: %w", err)
	}
	return nil
}

// Service serves a personal puzzle feed.
type Service struct {
	source Source
	queue  Queue
	gap    int
	logger zerolog.Logger
}

func NewService(source Source, queue Queue, gap int, logger zerolog.Logger) *Service {
	if gap <= 0 {
		gap = DefaultGap
	}
	return &Service{
		source: source,
		queue:  queue,
		gap:    gap,
		logger: logger.With().Str("component", "feed").Logger(),
	}
}

// Next returns up to n game ids for the user, refilling the queue with newly
// published games it does not already hold.
func (s *Service) Next(ctx context.Context, userID string, n int) ([]string, error) {
	order, err := s.queue.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(order) < n {
		recent, err := s.source.RecentIDs(ctx, n*4)
		if err != nil {
			return nil, fmt.Errorf("refill feed: %w", err)
		}
		added := 0
		for _, id := range recent {
			if !slices.Contains(order, id) {
				order = append(order, id)
				added++
			}
		}
		if added > 0 {
			if err := s.queue.Save(ctx, userID, order); err != nil {
				return nil, err
			}
			s.logger.Debug().Str("user_id", userID).Int("added", added).Msg("feed refilled")
		}
	}
	return order[:min(n, len(order))], nil
}

// Skip pushes gameID back in the user's feed and returns the new order.
func (s *Service) Skip(ctx context.Context, userID, gameID string) ([]string, error) {
	order, err := s.queue.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := slices.Index(order, gameID)
	if idx < 0 {
		return nil, ErrNotQueued
	}
	order = Defer(order, idx, s.gap)
	if err := s.queue.Save(ctx, userID, order); err != nil {
		return nil, err
	}
	return order, nil
}
