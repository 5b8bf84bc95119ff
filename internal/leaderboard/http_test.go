package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) TopForGame(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	args := m.Called(ctx, gameID, limit)
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *mockReader) TopPlayers(ctx context.Context, limit int) ([]Entry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]Entry), args.Error(1)
}

func serve(h *HTTPHandler, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Mount(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleGame(t *testing.T) {
	reader := new(mockReader)
	reader.On("TopForGame", mock.Anything, "g1", 5).Return([]Entry{
		{Rank: 1, PlayerID: "p2", Points: 4, Plays: 2, Completions: 1},
		{Rank: 2, PlayerID: "p1", Points: 3, Plays: 1, Completions: 1},
	}, nil)
	reader.On("TopForGame", mock.Anything, "broken", 10).Return([]Entry(nil), errors.New("redis down"))

	h := NewHTTPHandler(reader, zerolog.Nop())

	rec := serve(h, "/v1/games/g1/leaderboard?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		GameID string  `json:"gameId"`
		Top    []Entry `json:"top"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "g1", body.GameID)
	require.Len(t, body.Top, 2)
	assert.Equal(t, "p2", body.Top[0].PlayerID)

	rec = serve(h, "/v1/games/broken/leaderboard?limit=500")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	reader.AssertExpectations(t)
}

func TestHandlePlayers(t *testing.T) {
	reader := new(mockReader)
	reader.On("TopPlayers", mock.Anything, 10).Return([]Entry{{Rank: 1, PlayerID: "p1", Points: 12}}, nil)

	rec := serve(NewHTTPHandler(reader, zerolog.Nop()), "/v1/leaderboards/players")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"playerId":"p1"`)
}
