package publish

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/puzzle-platform/internal/game"
)

const defaultCacheTTL = 10 * time.Minute

// GameCache holds decoded published games.
type GameCache interface {
	Get(ctx context.Context, id string) (*game.Game, error)
	Set(ctx context.Context, g game.Game) error
}

// Cache is a Redis read-through cache of published game documents.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ GameCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(id string) string {
	return "customgame:" + id
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, id string) (*game.Game, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	g, err := game.Decode(data)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Cache) Set(ctx context.Context, g game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(g.ID), data, c.ttl).Err()
}
