package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/puzzle-platform/internal/auth"
	"github.com/gokatarajesh/puzzle-platform/internal/auth/jwt"
	"github.com/gokatarajesh/puzzle-platform/internal/config"
	"github.com/gokatarajesh/puzzle-platform/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/puzzle-platform/internal/db/sqlc"
	"github.com/gokatarajesh/puzzle-platform/internal/feed"
	"github.com/gokatarajesh/puzzle-platform/internal/leaderboard"
	"github.com/gokatarajesh/puzzle-platform/internal/logging"
	"github.com/gokatarajesh/puzzle-platform/internal/play"
	"github.com/gokatarajesh/puzzle-platform/internal/publish"
	"github.com/gokatarajesh/puzzle-platform/internal/server"
	"github.com/gokatarajesh/puzzle-platform/internal/studio"
	"github.com/gokatarajesh/puzzle-platform/internal/wordcheck"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	redis  *redis.Client
	mirror publish.Mirror
	http   *http.Server

	warmer    *publish.CacheWarmer
	bgCancels []context.CancelFunc
}

// New bootstraps configs, logger, Postgres, Redis, Firestore and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)
	gameRepo := repository.NewGameRepository(queries)

	words, err := wordcheck.Load(cfg.Publish.WordListPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			pool.Close()
			_ = redisClient.Close()
			return nil, fmt.Errorf("load word lists: %w", err)
		}
		logger.Warn().Str("path", cfg.Publish.WordListPath).Msg("word list not found; dictionary checks disabled")
		words = nil
	}

	opts := publish.Options{
		Cache: publish.NewCache(redisClient, cfg.Publish.CacheTTL),
		Words: words,
	}
	fsMirror, err := publish.NewFirestoreMirror(ctx, publish.FirestoreConfig{
		ProjectID:       cfg.Firestore.ProjectID,
		CredentialsPath: cfg.Firestore.CredentialsPath,
	}, logger)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init firestore mirror: %w", err)
	}
	// A nil *FirestoreMirror must not land in the interface.
	if fsMirror != nil {
		opts.Mirror = fsMirror
	}

	publishSvc := publish.NewService(gameRepo, opts, logger)
	boards := leaderboard.NewService(redisClient, logger, leaderboard.ServiceOptions{
		TopN:         cfg.Leaderboard.TopN,
		GameEntryTTL: cfg.Leaderboard.GameEntryTTL,
	})
	playSvc := play.NewService(publishSvc, play.NewRedisStore(redisClient, logger), logger).WithRecorder(boards)
	feedSvc := feed.NewService(publishSvc, feed.NewRedisQueue(redisClient), cfg.Feed.Gap, logger)

	tokens := jwt.NewManager(jwt.TokenConfig{
		Secret: []byte(cfg.Security.JWTSecret),
		Issuer: cfg.Name,
	})

	handlers := studio.NewHandlers(publishSvc, playSvc, feedSvc, logger)
	apiServer := server.NewHTTPServer(
		cfg,
		logger,
		[]server.Pinger{server.PostgresPinger(pool), server.RedisPinger(redisClient)},
		handlers,
		leaderboard.NewHTTPHandler(boards, logger),
		auth.AuthMiddleware(tokens, logger),
	)

	var warmer *publish.CacheWarmer
	if interval := cfg.Publish.WarmInterval; interval > 0 {
		warmer = publish.NewCacheWarmer(publishSvc, interval, cfg.Publish.WarmTopN, logger)
	}

	return &Application{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		redis:     redisClient,
		mirror:    opts.Mirror,
		http:      apiServer,
		warmer:    warmer,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.mirror != nil {
		if err := a.mirror.Close(); err != nil {
			a.logger.Error().Err(err).Msg("firestore shutdown error")
		}
	}
	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("publish cache warmer stopped")
			}
		}()
	}
}
