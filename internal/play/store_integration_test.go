//go:build integration
// +build integration

package play

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	container, err := tcredis.Run(ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	store := NewRedisStore(client, zerolog.Nop())

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := Session{ID: "s1", GameID: "g1", PlayerID: "p1", Status: StatusActive, Vars: map[string]float64{"v": 2}, History: []Step{}}
	require.NoError(t, store.Save(ctx, sess))
	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Vars["v"])

	ttl, err := client.TTL(ctx, "play:session:s1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 23*time.Hour)

	unlock, err := store.Lock(ctx, "s1")
	require.NoError(t, err)
	_, err = store.Lock(ctx, "s1")
	assert.ErrorIs(t, err, ErrLocked)
	require.NoError(t, unlock())

	unlock, err = store.Lock(ctx, "s1")
	require.NoError(t, err, "lock is free after release")
	require.NoError(t, unlock())
}
