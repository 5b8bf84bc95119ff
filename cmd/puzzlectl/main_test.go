package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/gokatarajesh/puzzle-platform/internal/auth/jwt"
	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeGame(t *testing.T, g game.Game) string {
	t.Helper()
	doc, err := game.Encode(g)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, doc, 0o600))
	return path
}

func TestKindsListsEveryKind(t *testing.T) {
	out, err := run(t, "", "kinds")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(scene.Kinds()))
	assert.True(t, strings.HasPrefix(lines[0], "MCQ"))
}

func TestDefaultAndPreview(t *testing.T) {
	doc, err := run(t, "", "default", "wordle")
	require.NoError(t, err)
	assert.Equal(t, "WORDLE", gjson.Get(doc, "kind").String())

	out, err := run(t, `{"kind":"WORDLE","word":"crane","wordLength":5,"maxAttempts":6}`, "preview")
	require.NoError(t, err)
	assert.Equal(t, "word: crane\n", out)

	_, err = run(t, "", "default", "CROSSWORD")
	assert.ErrorIs(t, err, scene.ErrUnknownKind)
}

func TestValidate(t *testing.T) {
	g := game.New("Warmup", game.DifficultyEasy)
	g, id, err := g.AddScene(scene.KindWordle)
	require.NoError(t, err)
	g, err = g.UpdateContent(id, scene.Wordle{Word: "crane", WordLength: 5, MaxAttempts: 6})
	require.NoError(t, err)
	path := writeGame(t, g)

	out, err := run(t, "", "validate", "--publishable", path)
	require.NoError(t, err)
	assert.Contains(t, out, `ok: "Warmup", 1 scenes`)

	words := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(words, []byte("version: 1\ndictionary: [slate]\n"), 0o600))
	out, err = run(t, "", "validate", "--publishable", "--words", words, path)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "scenes[0].content.word:")

	empty := writeGame(t, game.New("", game.DifficultyEasy))
	_, err = run(t, "", "validate", empty)
	require.NoError(t, err, "structure is fine without --publishable")
	out, err = run(t, "", "validate", "--publishable", empty)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "meta.title")
}

func TestTokenIsAccepted(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	user := "6f1c1d7e-5d2c-4b51-9a43-5c2a8e0f7b11"

	out, err := run(t, "", "token", "--user", user, "--name", "ada")
	require.NoError(t, err)

	claims, err := jwt.NewManager(jwt.TokenConfig{Secret: []byte("dev-secret")}).ValidateAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, user, claims.UserID.String())
	assert.Equal(t, "ada", claims.DisplayName)
	assert.False(t, claims.IsGuest)

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "", "token")
	assert.Error(t, err)
}
