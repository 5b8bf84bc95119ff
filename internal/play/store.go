package play

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	sessionTTL = 24 * time.Hour
	lockTTL    = 10 * time.Second
)

// Store persists sessions and serializes answers per session.
type Store interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Lock(ctx context.Context, id string) (func() error, error)
}

// RedisStore keeps sessions in Redis with a TTL.
type RedisStore struct {
	redis  *redis.Client
	logger zerolog.Logger
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{redis: client, logger: logger}
}

// unlockScript deletes the lock only when it still holds our token.
var unlockScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

// Lock acquires the per-session lock. It fails fast with ErrLocked when
// another answer is being processed.
func (r *RedisStore) Lock(ctx context.Context, id string) (func() error, error) {
	key := fmt.Sprintf("play:lock:%s", id)
	token := uuid.NewString()

	acquired, err := r.redis.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}
	return func() error {
		return unlockScript.Run(context.WithoutCancel(ctx), r.redis, []string{key}, token).Err()
	}, nil
}

// Save writes the session. Finished sessions keep the same TTL so results
// stay readable for a while.
func (r *RedisStore) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.redis.Set(ctx, sessionKey(s.ID), data, sessionTTL).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Warn().Err(err).Str("session_id", id).Msg("corrupted session state")
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func sessionKey(id string) string {
	return "play:session:" + id
}
