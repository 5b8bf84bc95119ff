package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/puzzle-platform/pkg/http/errors"
)

// Reader is the query side of the leaderboard.
type Reader interface {
	TopForGame(ctx context.Context, gameID string, limit int) ([]Entry, error)
	TopPlayers(ctx context.Context, limit int) ([]Entry, error)
}

// HTTPHandler exposes REST endpoints for leaderboard queries.
type HTTPHandler struct {
	svc    Reader
	logger zerolog.Logger
	now    func() time.Time
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc Reader, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
		now:    time.Now,
	}
}

// Mount registers the leaderboard routes.
func (h *HTTPHandler) Mount(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/games/{id}/leaderboard", h.HandleGame)
	mux.HandleFunc("GET /v1/leaderboards/players", h.HandlePlayers)
}

// HandleGame responds with the best scores for one game.
// Route: GET /v1/games/{id}/leaderboard?limit=10
func (h *HTTPHandler) HandleGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	entries, err := h.svc.TopForGame(r.Context(), gameID, limitParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Str("game_id", gameID).Msg("game leaderboard fetch failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "failed to fetch leaderboard")
		return
	}
	writeJSON(w, map[string]interface{}{
		"gameId":      gameID,
		"top":         entries,
		"retrievedAt": h.now().UTC().Format(time.RFC3339),
	})
}

// HandlePlayers responds with all-time totals.
// Route: GET /v1/leaderboards/players?limit=10
func (h *HTTPHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.TopPlayers(r.Context(), limitParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Msg("player leaderboard fetch failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "failed to fetch leaderboard")
		return
	}
	writeJSON(w, map[string]interface{}{
		"top":         entries,
		"retrievedAt": h.now().UTC().Format(time.RFC3339),
	})
}

func limitParam(r *http.Request) int {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
