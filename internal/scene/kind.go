package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which puzzle mechanic a scene uses.
type Kind string

// Kind constants. The set is closed; see Kinds.
const (
	KindMCQ            Kind = "MCQ"
	KindMCQMulti       Kind = "MCQ_MULTI"
	KindTextInput      Kind = "TEXT_INPUT"
	KindTextInputMulti Kind = "TEXT_INPUT_MULTI"
	KindWordGuess      Kind = "WORD_GUESS"
	KindWordle         Kind = "WORDLE"
	KindSequence       Kind = "SEQUENCE"
	KindCategory       Kind = "CATEGORY"
	KindNumberGrid     Kind = "NUMBER_GRID"
	KindPath           Kind = "PATH"
	KindCodeBreaker    Kind = "CODEBREAKER"
	KindMemory         Kind = "MEMORY"
	KindInfo           Kind = "INFO"
)

// ErrUnknownKind is returned when a kind string is outside the closed set.
var ErrUnknownKind = errors.New("unknown scene kind")

var kinds = []Kind{
	KindMCQ,
	KindMCQMulti,
	KindTextInput,
	KindTextInputMulti,
	KindWordGuess,
	KindWordle,
	KindSequence,
	KindCategory,
	KindNumberGrid,
	KindPath,
	KindCodeBreaker,
	KindMemory,
	KindInfo,
}

// Kinds returns every scene kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind normalizes raw input (case-insensitive) into a Kind.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(raw)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}
