package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/gokatarajesh/puzzle-platform/internal/config"
	"github.com/gokatarajesh/puzzle-platform/internal/leaderboard"
	"github.com/gokatarajesh/puzzle-platform/internal/logging"
	"github.com/gokatarajesh/puzzle-platform/internal/studio"
	httperrors "github.com/gokatarajesh/puzzle-platform/pkg/http/errors"
)

const requestIDHeader = "X-Request-ID"

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

// PostgresPinger adapts a pgx pool.
func PostgresPinger(pool *pgxpool.Pool) Pinger {
	return pool.Ping
}

// RedisPinger adapts a redis client.
func RedisPinger(client *redis.Client) Pinger {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

// NewHTTPServer wires base routes (health, metrics, ping), the studio API and
// leaderboards. handlers and boards can be nil to serve only the base routes.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pingers []Pinger, handlers *studio.Handlers, boards *leaderboard.HTTPHandler, authn func(http.Handler) http.Handler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pingDependencies(ctx, pingers); err != nil {
			log := logging.FromContext(ctx)
			log.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if handlers != nil {
		handlers.Mount(mux, authn)
	}
	if boards != nil {
		boards.Mount(mux)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           withCORS(cfg.CORS, withRequestLogging(logger, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func pingDependencies(ctx context.Context, pingers []Pinger) error {
	for _, ping := range pingers {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// withRequestLogging stores a request-scoped logger carrying a request id in
// the context and logs one access line per request.
func withRequestLogging(logger zerolog.Logger, next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, elapsed time.Duration) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		reqLogger := hlog.FromRequest(r)
		evt := reqLogger.Debug()
		if status >= http.StatusInternalServerError {
			evt = reqLogger.Warn()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
	return hlog.NewHandler(logger)(
		hlog.RequestIDHandler("request_id", requestIDHeader)(
			hlog.CustomHeaderHandler("client_request_id", requestIDHeader)(
				access(next),
			),
		),
	)
}

func withCORS(cfg config.CORS, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}).Handler(next)
}
