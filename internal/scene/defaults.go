package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Default shape constants.
const (
	DefaultMaxWrongGuesses  = 6
	DefaultWordleLength     = 5
	DefaultWordleAttempts   = 6
	DefaultCodeGuesses      = 6
	DefaultCodeLength       = 4
	DefaultCodeOptions      = 6
	DefaultGridSize         = 3
	DefaultMemoryCols       = 4
	DefaultPointsPerCorrect = 1
	DefaultContinueLabel    = "Continue"
)

// CodeColors is the full color palette a code breaker can draw options from.
var CodeColors = []string{"red", "blue", "green", "yellow", "purple", "orange", "pink", "cyan"}

// GroupColors is assigned to category groups in creation order.
var GroupColors = []string{"#FF6B6B", "#4ECDC4", "#FFD93D", "#6C5CE7"}

const defaultMemoryValue = "🍎"

// DefaultContent returns a minimal, structurally valid content value for kind.
// Every call builds fresh slices, so results never share backing arrays.
func DefaultContent(kind Kind) (Content, error) {
	switch kind {
	case KindMCQ:
		return MCQ{
			Choices:   []Choice{{ID: "a"}, {ID: "b"}},
			CorrectID: "a",
		}, nil
	case KindMCQMulti:
		return MCQMulti{
			Questions: []MultiQuestion{{
				ID:        "q1",
				Choices:   []Choice{{ID: "a"}, {ID: "b"}},
				CorrectID: "a",
			}},
			PointsPerCorrect: DefaultPointsPerCorrect,
		}, nil
	case KindTextInput:
		return TextInput{CaseSensitive: false}, nil
	case KindTextInputMulti:
		return TextInputMulti{
			Rounds:           []TextRound{{ID: "r1"}},
			PointsPerCorrect: DefaultPointsPerCorrect,
		}, nil
	case KindWordGuess:
		return WordGuess{MaxWrongGuesses: DefaultMaxWrongGuesses}, nil
	case KindWordle:
		return Wordle{WordLength: DefaultWordleLength, MaxAttempts: DefaultWordleAttempts}, nil
	case KindSequence:
		return Sequence{
			Items:    []SequenceItem{{ID: "i1"}, {ID: "i2"}, {ID: "i3"}},
			Solution: []int{0, 1, 2},
		}, nil
	case KindCategory:
		return Category{
			Groups: []CategoryGroup{
				{ID: "g1", Name: "Group 1", Color: GroupColors[0]},
				{ID: "g2", Name: "Group 2", Color: GroupColors[1]},
			},
			Items: []CategoryItem{},
		}, nil
	case KindNumberGrid:
		return NumberGrid{
			Size:     DefaultGridSize,
			GridType: GridFree,
			Solution: make([]int, DefaultGridSize*DefaultGridSize),
			Givens:   []int{},
		}, nil
	case KindPath:
		return Path{
			Rows:     DefaultGridSize,
			Cols:     DefaultGridSize,
			Cells:    make([]int, DefaultGridSize*DefaultGridSize),
			Solution: []int{},
		}, nil
	case KindCodeBreaker:
		return CodeBreaker{
			Options:    slices.Clone(CodeColors[:DefaultCodeOptions]),
			SecretCode: slices.Clone(CodeColors[:DefaultCodeLength]),
			MaxGuesses: DefaultCodeGuesses,
		}, nil
	case KindMemory:
		return Memory{
			Pairs: []MemoryCard{
				{ID: "m1", Value: defaultMemoryValue, MatchID: "m2"},
				{ID: "m2", Value: defaultMemoryValue, MatchID: "m1"},
			},
			Cols: DefaultMemoryCols,
		}, nil
	case KindInfo:
		return Info{ContinueLabel: DefaultContinueLabel}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// newID mints ids for elements added after the default shape.
func newID() string {
	return uuid.NewString()[:8]
}
