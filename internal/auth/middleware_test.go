package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/puzzle-platform/internal/auth/jwt"
	httperrors "github.com/gokatarajesh/puzzle-platform/pkg/http/errors"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("secret")})
	user := uuid.New()
	token, err := tokens.GenerateAccessToken(jwt.User{ID: user, IsGuest: true})
	require.NoError(t, err)

	var seen *jwt.Claims
	h := AuthMiddleware(tokens, zerolog.Nop())(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + token, http.StatusNoContent, ""},
		{"anonymous", "", http.StatusUnauthorized, httperrors.ErrCodeAuthenticationRequired},
		{"bad scheme", "Token " + token, http.StatusUnauthorized, httperrors.ErrCodeInvalidToken},
		{"bad token", "Bearer nope", http.StatusUnauthorized, httperrors.ErrCodeInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				var body httperrors.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.code, body.Error)
			}
		})
	}
	require.NotNil(t, seen)
	assert.Equal(t, user, seen.UserID)
}

func TestRequireRegistered(t *testing.T) {
	h := RequireRegistered(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: uuid.New(), IsGuest: true}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: uuid.New()}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
