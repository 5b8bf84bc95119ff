package wordcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundledLists(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs", "words.yaml"))
	require.NoError(t, err)

	assert.NoError(t, c.CheckWord("Crane"))
	assert.ErrorIs(t, c.CheckWord("zzzzz"), ErrNotInLexicon)
	assert.ErrorIs(t, c.CheckWord("damn"), ErrProfane)
}

func TestCheckWord(t *testing.T) {
	c := New([]string{"Crap"}, nil)

	assert.NoError(t, c.CheckWord("anything"))
	assert.ErrorIs(t, c.CheckWord("CRAP"), ErrProfane)
	assert.ErrorIs(t, c.CheckWord("two words"), ErrNotLetters)
	assert.ErrorIs(t, c.CheckWord("abc1"), ErrNotLetters)
	assert.ErrorIs(t, c.CheckWord("  "), ErrNotLetters)

	var zero *Checker
	assert.NoError(t, zero.CheckWord("hello"))
	assert.False(t, zero.ContainsProfanity("crap"))
}

func TestContainsProfanity(t *testing.T) {
	c := New([]string{"damn"}, nil)
	assert.True(t, c.ContainsProfanity("Well, DAMN!"))
	assert.False(t, c.ContainsProfanity("Amsterdam"))
}

func TestParseRejectsVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 2\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Parse([]byte("profanity: [a"))
	assert.Error(t, err)
}
