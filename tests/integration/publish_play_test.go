//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/play"
	"github.com/gokatarajesh/puzzle-platform/internal/publish"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
	httperrors "github.com/gokatarajesh/puzzle-platform/pkg/http/errors"
)

func wordleGame(t *testing.T) game.Game {
	t.Helper()
	g := game.New("Integration wordle", game.DifficultyMedium)
	g, intro, err := g.AddScene(scene.KindInfo)
	require.NoError(t, err)
	g, err = g.UpdateContent(intro, scene.Info{Title: "Welcome", Text: "Guess the word", ContinueLabel: "Start"})
	require.NoError(t, err)
	g, id, err := g.AddScene(scene.KindWordle)
	require.NoError(t, err)
	g, err = g.UpdateContent(id, scene.Wordle{Word: "crane", WordLength: 5, MaxAttempts: 6})
	require.NoError(t, err)
	return g
}

func TestSceneKinds(t *testing.T) {
	var out struct {
		Kinds []struct {
			Kind string `json:"kind"`
		} `json:"kinds"`
	}
	resp := doJSON(t, http.MethodGet, "/v1/scene-kinds", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	require.Len(t, out.Kinds, len(scene.Kinds()))
	assert.Equal(t, "MCQ", out.Kinds[0].Kind)
}

func TestPublishAndPlayFlow(t *testing.T) {
	_, author := mintToken(t, false)
	_, player := mintToken(t, true)
	g := wordleGame(t)

	resp := doJSON(t, http.MethodPost, "/v1/games", player, g)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode, "guests cannot publish")

	var sum publish.Summary
	resp = doJSON(t, http.MethodPost, "/v1/games", author, g)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &sum)
	assert.Equal(t, g.ID, sum.GameID)
	assert.Equal(t, 2, sum.SceneCount)

	var sess play.Session
	resp = doJSON(t, http.MethodPost, "/v1/games/"+g.ID+"/sessions", player, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &sess)
	assert.Equal(t, play.StatusActive, sess.Status)

	resp = doJSON(t, http.MethodPost, "/v1/sessions/"+sess.ID+"/answers", player, scene.Answer{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sess)
	assert.Equal(t, 1, sess.SceneIndex)

	resp = doJSON(t, http.MethodPost, "/v1/sessions/"+sess.ID+"/answers", player, scene.Answer{Guesses: []string{"slate", "crane"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sess)
	assert.Equal(t, play.StatusCompleted, sess.Status)
	assert.Equal(t, 1, sess.Points)

	var errResp httperrors.ErrorResponse
	resp = doJSON(t, http.MethodPost, "/v1/sessions/"+sess.ID+"/answers", player, scene.Answer{})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &errResp)
	assert.Equal(t, httperrors.ErrCodeSessionOver, errResp.Error)
}

func TestRepublishByAnotherAuthor(t *testing.T) {
	_, first := mintToken(t, false)
	_, second := mintToken(t, false)
	g := wordleGame(t)

	resp := doJSON(t, http.MethodPost, "/v1/games", first, g)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var errResp httperrors.ErrorResponse
	resp = doJSON(t, http.MethodPost, "/v1/games", second, g)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decode(t, resp, &errResp)
	assert.Equal(t, httperrors.ErrCodeNotOwner, errResp.Error)
}

func TestErrors(t *testing.T) {
	var errResp httperrors.ErrorResponse

	resp := doJSON(t, http.MethodGet, "/v1/feed", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decode(t, resp, &errResp)
	assert.Equal(t, httperrors.ErrCodeAuthenticationRequired, errResp.Error)

	resp = doJSON(t, http.MethodGet, "/v1/games/00000000-0000-0000-0000-000000000000", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	decode(t, resp, &errResp)
	assert.Equal(t, httperrors.ErrCodeGameNotFound, errResp.Error)

	_, author := mintToken(t, false)
	resp = doJSON(t, http.MethodPost, "/v1/games", author, game.New("", game.DifficultyEasy))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}
