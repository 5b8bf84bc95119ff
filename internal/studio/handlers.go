package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/puzzle-platform/internal/auth"
	"github.com/gokatarajesh/puzzle-platform/internal/feed"
	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/play"
	"github.com/gokatarajesh/puzzle-platform/internal/publish"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
	httperrors "github.com/gokatarajesh/puzzle-platform/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// Publisher is the publishing surface used by the handlers.
type Publisher interface {
	Check(g game.Game) error
	Publish(ctx context.Context, authorID uuid.UUID, g game.Game) (*publish.Summary, error)
	Get(ctx context.Context, id string) (*game.Game, error)
	List(ctx context.Context, difficulty game.Difficulty, limit int) ([]publish.Summary, error)
}

// Player runs play sessions.
type Player interface {
	Start(ctx context.Context, gameID, playerID string) (*play.Session, error)
	Answer(ctx context.Context, sessionID, playerID string, answer scene.Answer) (*play.Session, error)
	Get(ctx context.Context, id string) (*play.Session, error)
}

// Feed serves personal puzzle feeds.
type Feed interface {
	Next(ctx context.Context, userID string, n int) ([]string, error)
	Skip(ctx context.Context, userID, gameID string) ([]string, error)
}

// Handlers exposes the creator, play and feed endpoints.
type Handlers struct {
	publisher Publisher
	player    Player
	feed      Feed
	logger    zerolog.Logger
}

func NewHandlers(publisher Publisher, player Player, feed Feed, logger zerolog.Logger) *Handlers {
	return &Handlers{
		publisher: publisher,
		player:    player,
		feed:      feed,
		logger:    logger.With().Str("component", "studio_http").Logger(),
	}
}

// Mount registers every route on mux. authn must inject claims when a valid
// bearer token is present.
func (h *Handlers) Mount(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	open := func(f http.HandlerFunc) http.Handler { return authn(f) }
	member := func(f http.HandlerFunc) http.Handler { return authn(auth.RequireAuth(f)) }
	author := func(f http.HandlerFunc) http.Handler { return authn(auth.RequireRegistered(f)) }

	mux.Handle("GET /v1/scene-kinds", open(h.ListKinds))
	mux.Handle("GET /v1/scenes/default", open(h.DefaultScene))
	mux.Handle("POST /v1/scenes/preview", open(h.PreviewScene))
	mux.Handle("POST /v1/scenes/grade", open(h.GradeScene))

	mux.Handle("POST /v1/games/validate", open(h.ValidateGame))
	mux.Handle("POST /v1/games", author(h.PublishGame))
	mux.Handle("GET /v1/games", open(h.ListGames))
	mux.Handle("GET /v1/games/{id}", open(h.GetGame))

	mux.Handle("POST /v1/games/{id}/sessions", member(h.StartSession))
	mux.Handle("POST /v1/sessions/{id}/answers", member(h.SubmitAnswer))
	mux.Handle("GET /v1/sessions/{id}", open(h.GetSession))

	mux.Handle("GET /v1/feed", member(h.GetFeed))
	mux.Handle("POST /v1/feed/skip", member(h.SkipFeed))
}

type kindInfo struct {
	Kind    scene.Kind `json:"kind"`
	Preview string     `json:"preview"`
}

// ListKinds handles GET /v1/scene-kinds
func (h *Handlers) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := scene.Kinds()
	out := make([]kindInfo, 0, len(kinds))
	for _, k := range kinds {
		c, err := scene.DefaultContent(k)
		if err != nil {
			httperrors.RespondInternalError(w, err.Error())
			return
		}
		out = append(out, kindInfo{Kind: k, Preview: scene.Preview(c)})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"kinds": out})
}

// DefaultScene handles GET /v1/scenes/default?kind=WORDLE
func (h *Handlers) DefaultScene(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("kind")
	if raw == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "kind is required", "kind")
		return
	}
	kind, err := scene.ParseKind(raw)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownKind, err.Error(), "kind")
		return
	}
	c, err := scene.DefaultContent(kind)
	if err != nil {
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	respondContent(w, c)
}

// PreviewScene handles POST /v1/scenes/preview with a content document.
func (h *Handlers) PreviewScene(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, err.Error())
		return
	}
	c, err := scene.UnmarshalContent(body)
	if err != nil {
		respondSceneError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kindInfo{Kind: c.Kind(), Preview: scene.Preview(c)})
}

type gradeRequest struct {
	Content json.RawMessage `json:"content"`
	Answer  scene.Answer    `json:"answer"`
}

// GradeScene handles POST /v1/scenes/grade for the editor's test-play.
func (h *Handlers) GradeScene(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	c, err := scene.UnmarshalContent(req.Content)
	if err != nil {
		respondSceneError(w, err)
		return
	}
	res, err := scene.Grade(c, req.Answer)
	if err != nil {
		respondSceneError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type validateResponse struct {
	Valid       bool         `json:"valid"`
	Publishable bool         `json:"publishable"`
	Issues      []game.Issue `json:"issues"`
}

// ValidateGame handles POST /v1/games/validate. It always answers 200 with
// the structural and publish issues.
func (h *Handlers) ValidateGame(w http.ResponseWriter, r *http.Request) {
	var g game.Game
	if err := decodeJSON(r, &g); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, err.Error())
		return
	}
	resp := validateResponse{Issues: []game.Issue{}}
	if err := game.Validate(g); err == nil {
		resp.Valid = true
	}
	err := h.publisher.Check(g)
	var verr *game.ValidationError
	switch {
	case err == nil:
		resp.Publishable = true
	case errors.As(err, &verr):
		resp.Issues = verr.Issues
	default:
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// PublishGame handles POST /v1/games
func (h *Handlers) PublishGame(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	var g game.Game
	if err := decodeJSON(r, &g); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, err.Error())
		return
	}
	sum, err := h.publisher.Publish(r.Context(), claims.UserID, g)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sum)
}

// ListGames handles GET /v1/games?difficulty=2&limit=20
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var difficulty game.Difficulty
	if raw := q.Get("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || !game.Difficulty(d).Valid() {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "difficulty must be 1, 2 or 3", "difficulty")
			return
		}
		difficulty = game.Difficulty(d)
	}
	games, err := h.publisher.List(r.Context(), difficulty, queryInt(r, "limit", publish.DefaultListLimit))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// GetGame handles GET /v1/games/{id}
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.publisher.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// StartSession handles POST /v1/games/{id}/sessions
func (h *Handlers) StartSession(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	sess, err := h.player.Start(r.Context(), r.PathValue("id"), claims.UserID.String())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sess)
}

// SubmitAnswer handles POST /v1/sessions/{id}/answers
func (h *Handlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	var answer scene.Answer
	if err := decodeJSON(r, &answer); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	sess, err := h.player.Answer(r.Context(), r.PathValue("id"), claims.UserID.String(), answer)
	if errors.Is(err, play.ErrSessionOver) && sess != nil {
		httperrors.RespondErrorWithDetails(w, http.StatusConflict, httperrors.ErrCodeSessionOver,
			"Session is over", map[string]interface{}{"status": sess.Status})
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// GetSession handles GET /v1/sessions/{id}
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.player.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// GetFeed handles GET /v1/feed?limit=10
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	ids, err := h.feed.Next(r.Context(), claims.UserID.String(), min(queryInt(r, "limit", 10), 50))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"gameIds": ids})
}

type skipRequest struct {
	GameID string `json:"gameId"`
}

// SkipFeed handles POST /v1/feed/skip
func (h *Handlers) SkipFeed(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	var req skipRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.GameID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "gameId is required", "gameId")
		return
	}
	ids, err := h.feed.Skip(r.Context(), claims.UserID.String(), req.GameID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"gameIds": ids})
}

func (h *Handlers) respondServiceError(w http.ResponseWriter, err error) {
	var verr *game.ValidationError
	switch {
	case errors.As(err, &verr):
		httperrors.RespondIssues(w, "Game is not publishable", verr.Issues)
	case errors.Is(err, game.ErrInvalidGame):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
	case errors.Is(err, publish.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeGameNotFound, "Game not found")
	case errors.Is(err, publish.ErrNotOwner):
		httperrors.RespondForbidden(w, httperrors.ErrCodeNotOwner, err.Error())
	case errors.Is(err, play.ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "Session not found")
	case errors.Is(err, play.ErrNotYourSession):
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, err.Error())
	case errors.Is(err, play.ErrSessionOver):
		httperrors.RespondConflict(w, httperrors.ErrCodeSessionOver, err.Error())
	case errors.Is(err, play.ErrLocked):
		httperrors.RespondConflict(w, httperrors.ErrCodeSessionBusy, err.Error())
	case errors.Is(err, feed.ErrNotQueued):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotQueued, err.Error())
	default:
		h.logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w, "Internal error")
	}
}

func respondSceneError(w http.ResponseWriter, err error) {
	var verr *scene.ValidationError
	switch {
	case errors.As(err, &verr):
		httperrors.RespondIssues(w, "Scene content is invalid", verr.Issues)
	case errors.Is(err, scene.ErrUnknownKind):
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownKind, err.Error(), "kind")
	default:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, err.Error())
	}
}

func respondContent(w http.ResponseWriter, c scene.Content) {
	body, err := scene.MarshalContent(c)
	if err != nil {
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    c.Kind(),
		"content": json.RawMessage(body),
		"preview": scene.Preview(c),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func queryInt(r *http.Request, key string, def int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}
