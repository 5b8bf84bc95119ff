package server

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/puzzle-platform/internal/config"
	"github.com/gokatarajesh/puzzle-platform/internal/logging"
)

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         600,
		},
	}
}

func TestBaseRoutes(t *testing.T) {
	down := errors.New("down")
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return down }

	tests := []struct {
		name    string
		pingers []Pinger
		path    string
		status  int
	}{
		{"health", nil, "/healthz", http.StatusOK},
		{"metrics", nil, "/metrics", http.StatusOK},
		{"ping ok", []Pinger{healthy, healthy}, "/v1/ping", http.StatusOK},
		{"ping fails", []Pinger{healthy, failing}, "/v1/ping", http.StatusBadGateway},
		{"no studio routes", nil, "/v1/scene-kinds", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewHTTPServer(testConfig(), zerolog.Nop(), tt.pingers, nil, nil, nil)
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewHTTPServer(testConfig(), zerolog.Nop(), nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "puzzle-platform", "production")
	failing := func(context.Context) error { return errors.New("down") }
	srv := NewHTTPServer(testConfig(), logger, []Pinger{failing}, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("X-Request-ID", "client-42")
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	requestID := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"dependency ping failed"`)
	assert.Contains(t, lines[0], `"request_id":"`+requestID+`"`)
	assert.Contains(t, lines[1], `"level":"warn"`)
	assert.Contains(t, lines[1], `"status":502`)
	assert.Contains(t, lines[1], `"client_request_id":"client-42"`)
}
