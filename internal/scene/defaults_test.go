package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContentKindMatches(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			c, err := DefaultContent(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, c.Kind())
			assert.NoError(t, Validate(c), "default content must be structurally valid")
			assert.NotEmpty(t, Preview(c))
		})
	}
}

func TestDefaultContentUnknownKind(t *testing.T) {
	_, err := DefaultContent(Kind("CROSSWORD"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindsIsClosedSet(t *testing.T) {
	assert.Len(t, Kinds(), 13)
	k, err := ParseKind(" mcq_multi ")
	require.NoError(t, err)
	assert.Equal(t, KindMCQMulti, k)

	_, err = ParseKind("bogus")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDefaultShapes(t *testing.T) {
	mcq := mustDefault[MCQ](t, KindMCQ)
	require.Len(t, mcq.Choices, 2)
	assert.Equal(t, "a", mcq.Choices[0].ID)
	assert.Equal(t, "b", mcq.Choices[1].ID)
	assert.Equal(t, "a", mcq.CorrectID)
	assert.Empty(t, mcq.Question)

	multi := mustDefault[MCQMulti](t, KindMCQMulti)
	require.Len(t, multi.Questions, 1)
	assert.Len(t, multi.Questions[0].Choices, 2)
	assert.Equal(t, 1, multi.PointsPerCorrect)

	text := mustDefault[TextInput](t, KindTextInput)
	assert.False(t, text.CaseSensitive)
	assert.Empty(t, text.Prompt)
	assert.Empty(t, text.Answer)

	rounds := mustDefault[TextInputMulti](t, KindTextInputMulti)
	assert.Len(t, rounds.Rounds, 1)
	assert.Equal(t, 1, rounds.PointsPerCorrect)

	guess := mustDefault[WordGuess](t, KindWordGuess)
	assert.Empty(t, guess.Word)
	assert.Equal(t, 6, guess.MaxWrongGuesses)

	wordle := mustDefault[Wordle](t, KindWordle)
	assert.Equal(t, 5, wordle.WordLength)
	assert.Equal(t, 6, wordle.MaxAttempts)

	seq := mustDefault[Sequence](t, KindSequence)
	assert.Len(t, seq.Items, 3)
	assert.Equal(t, []int{0, 1, 2}, seq.Solution)

	cat := mustDefault[Category](t, KindCategory)
	require.Len(t, cat.Groups, 2)
	assert.NotEqual(t, cat.Groups[0].Color, cat.Groups[1].Color)
	assert.Empty(t, cat.Items)

	grid := mustDefault[NumberGrid](t, KindNumberGrid)
	assert.Equal(t, 3, grid.Size)
	assert.Equal(t, GridFree, grid.GridType)
	assert.Equal(t, make([]int, 9), grid.Solution)
	assert.Empty(t, grid.Givens)

	path := mustDefault[Path](t, KindPath)
	assert.Equal(t, 3, path.Rows)
	assert.Equal(t, 3, path.Cols)
	assert.Empty(t, path.Solution)

	code := mustDefault[CodeBreaker](t, KindCodeBreaker)
	assert.Len(t, code.SecretCode, 4)
	assert.Len(t, code.Options, 6)
	assert.Equal(t, 6, code.MaxGuesses)

	info := mustDefault[Info](t, KindInfo)
	assert.Empty(t, info.Text)
	assert.Equal(t, "Continue", info.ContinueLabel)
}

func TestDefaultMemoryIsOnePair(t *testing.T) {
	mem := mustDefault[Memory](t, KindMemory)
	require.Len(t, mem.Pairs, 2)
	a, b := mem.Pairs[0], mem.Pairs[1]
	assert.Equal(t, a.Value, b.Value)
	assert.Equal(t, b.ID, a.MatchID)
	assert.Equal(t, a.ID, b.MatchID)
	assert.Equal(t, 4, mem.Cols)
}

func TestDefaultContentReturnsIndependentValues(t *testing.T) {
	for _, kind := range Kinds() {
		first, err := DefaultContent(kind)
		require.NoError(t, err)
		second, err := DefaultContent(kind)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s defaults differ (-first +second):\n%s", kind, diff)
		}
	}

	a := mustDefault[Sequence](t, KindSequence)
	b := mustDefault[Sequence](t, KindSequence)
	a.Solution[0] = 2
	a.Items[0].Label = "changed"
	assert.Equal(t, 0, b.Solution[0])
	assert.Empty(t, b.Items[0].Label)

	c := mustDefault[CodeBreaker](t, KindCodeBreaker)
	c.Options[0] = "black"
	assert.Equal(t, "red", CodeColors[0], "palette must not alias default options")
}

func TestPreviewNeverEmpty(t *testing.T) {
	mcq := mustDefault[MCQ](t, KindMCQ)
	assert.Equal(t, "(no question)", Preview(mcq))

	mcq.Question = "2+2?"
	assert.Equal(t, "2+2?", Preview(mcq))

	wordle := mustDefault[Wordle](t, KindWordle)
	wordle.Word = "crane"
	assert.Equal(t, "word: crane", Preview(wordle))

	assert.Equal(t, "1 pair", Preview(mustDefault[Memory](t, KindMemory)))
	assert.Equal(t, "3 items", Preview(mustDefault[Sequence](t, KindSequence)))
	assert.Equal(t, "(empty info)", Preview(mustDefault[Info](t, KindInfo)))
	assert.Equal(t, "(empty scene)", Preview(nil))
	assert.NotEmpty(t, Preview(Info{Text: "   "}))
}

func mustDefault[T Content](t *testing.T, kind Kind) T {
	t.Helper()
	c, err := DefaultContent(kind)
	require.NoError(t, err)
	v, ok := c.(T)
	require.True(t, ok, "default for %s has type %T", kind, c)
	return v
}
