package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Edit bounds shared by validation and the structural edit helpers.
const (
	MinChoices     = 2
	MaxChoices     = 4
	MinGroups      = 2
	MaxGroups      = 4
	MinMemoryPairs = 2
	MaxMemoryPairs = 8
	MinGridSize    = 2
	MaxGridSize    = 9
)

var (
	// ErrInvalidContent matches every *ValidationError via errors.Is.
	ErrInvalidContent = errors.New("invalid scene content")
	// ErrUnsupportedContent is returned for Content values that are not one
	// of this package's kind structs, such as pointers to them.
	ErrUnsupportedContent = errors.New("unsupported scene content")
)

// Issue is a single problem found in a content value.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every issue found in one content value.
type ValidationError struct {
	Kind   Kind
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	if e.Kind == "" {
		return "scene content: " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%s content: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContent
}

type issues []Issue

func (l *issues) add(field, format string, args ...any) {
	*l = append(*l, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (l issues) err(kind Kind) error {
	if len(l) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Issues: l}
}

// Validate checks the structural invariants of content: local referential
// integrity, permutations, pairings and grid dimensions. Default content
// always passes.
func Validate(c Content) error {
	if c == nil {
		return &ValidationError{Issues: []Issue{{Field: "kind", Message: "content is missing"}}}
	}
	if !Supported(c) {
		return &ValidationError{Issues: []Issue{{Field: "kind", Message: fmt.Sprintf("unsupported content type %T", c)}}}
	}
	var l issues
	switch v := c.(type) {
	case MCQ:
		checkChoices(&l, "", v.Choices, v.CorrectID)
	case MCQMulti:
		if len(v.Questions) == 0 {
			l.add("questions", "at least one question is required")
		}
		seen := map[string]bool{}
		for i, q := range v.Questions {
			prefix := fmt.Sprintf("questions[%d].", i)
			checkID(&l, prefix+"id", q.ID, seen)
			checkChoices(&l, prefix, q.Choices, q.CorrectID)
		}
		if v.PointsPerCorrect <= 0 {
			l.add("pointsPerCorrect", "must be positive")
		}
	case TextInput:
	case TextInputMulti:
		if len(v.Rounds) == 0 {
			l.add("rounds", "at least one round is required")
		}
		seen := map[string]bool{}
		for i, r := range v.Rounds {
			checkID(&l, fmt.Sprintf("rounds[%d].id", i), r.ID, seen)
		}
		if v.PointsPerCorrect <= 0 {
			l.add("pointsPerCorrect", "must be positive")
		}
	case WordGuess:
		if v.MaxWrongGuesses <= 0 {
			l.add("maxWrongGuesses", "must be positive")
		}
	case Wordle:
		if v.WordLength <= 0 {
			l.add("wordLength", "must be positive")
		}
		if v.MaxAttempts <= 0 {
			l.add("maxAttempts", "must be positive")
		}
		if v.Word != "" && utf8.RuneCountInString(v.Word) != v.WordLength {
			l.add("word", "must be %d letters long", v.WordLength)
		}
	case Sequence:
		seen := map[string]bool{}
		for i, it := range v.Items {
			checkID(&l, fmt.Sprintf("items[%d].id", i), it.ID, seen)
		}
		if !isPermutation(v.Solution, len(v.Items)) {
			l.add("solution", "must be a permutation of item indices 0..%d", len(v.Items)-1)
		}
	case Category:
		if len(v.Groups) < MinGroups || len(v.Groups) > MaxGroups {
			l.add("groups", "must have between %d and %d groups", MinGroups, MaxGroups)
		}
		groups := map[string]bool{}
		for i, g := range v.Groups {
			checkID(&l, fmt.Sprintf("groups[%d].id", i), g.ID, groups)
		}
		seen := map[string]bool{}
		for i, it := range v.Items {
			checkID(&l, fmt.Sprintf("items[%d].id", i), it.ID, seen)
			if !groups[it.GroupID] {
				l.add(fmt.Sprintf("items[%d].groupId", i), "references unknown group %q", it.GroupID)
			}
		}
	case NumberGrid:
		if v.Size < MinGridSize || v.Size > MaxGridSize {
			l.add("size", "must be between %d and %d", MinGridSize, MaxGridSize)
		}
		switch v.GridType {
		case GridFree, GridMagic, GridLatin:
		default:
			l.add("gridType", "unknown grid type %q", v.GridType)
		}
		if len(v.Solution) != v.Size*v.Size {
			l.add("solution", "must have %d cells", v.Size*v.Size)
		}
		checkIndices(&l, "givens", v.Givens, v.Size*v.Size)
	case Path:
		if v.Rows < MinGridSize || v.Rows > MaxGridSize || v.Cols < MinGridSize || v.Cols > MaxGridSize {
			l.add("rows", "grid must be between %d and %d on each side", MinGridSize, MaxGridSize)
		}
		if len(v.Cells) != v.Rows*v.Cols {
			l.add("cells", "must have %d cells", v.Rows*v.Cols)
		}
		for i, n := range v.Cells {
			if n < 0 {
				l.add(fmt.Sprintf("cells[%d]", i), "must not be negative")
			}
		}
		checkIndices(&l, "solution", v.Solution, v.Rows*v.Cols)
	case CodeBreaker:
		if len(v.SecretCode) == 0 {
			l.add("secretCode", "must not be empty")
		}
		if len(v.Options) < len(v.SecretCode) {
			l.add("options", "must offer at least %d colors", len(v.SecretCode))
		}
		opts := map[string]bool{}
		for i, o := range v.Options {
			if o == "" || opts[o] {
				l.add(fmt.Sprintf("options[%d]", i), "must be unique and non-empty")
			}
			opts[o] = true
		}
		for i, slot := range v.SecretCode {
			if !opts[slot] {
				l.add(fmt.Sprintf("secretCode[%d]", i), "color %q is not an option", slot)
			}
		}
		if v.MaxGuesses <= 0 {
			l.add("maxGuesses", "must be positive")
		}
	case Memory:
		checkMemory(&l, v)
	case Info:
	default:
		l.add("kind", "unsupported content type %T", c)
	}
	return l.err(c.Kind())
}

// CheckPublishable runs Validate and additionally requires the content to be
// complete enough to play.
func CheckPublishable(c Content) error {
	if err := Validate(c); err != nil {
		return err
	}
	var l issues
	switch v := c.(type) {
	case MCQ:
		requireText(&l, "question", v.Question)
		requireLabels(&l, "", v.Choices)
	case MCQMulti:
		for i, q := range v.Questions {
			prefix := fmt.Sprintf("questions[%d].", i)
			requireText(&l, prefix+"question", q.Question)
			requireLabels(&l, prefix, q.Choices)
		}
	case TextInput:
		requireText(&l, "prompt", v.Prompt)
		requireText(&l, "answer", v.Answer)
	case TextInputMulti:
		for i, r := range v.Rounds {
			requireText(&l, fmt.Sprintf("rounds[%d].prompt", i), r.Prompt)
			requireText(&l, fmt.Sprintf("rounds[%d].answer", i), r.Answer)
		}
	case WordGuess:
		requireText(&l, "word", v.Word)
	case Wordle:
		requireText(&l, "word", v.Word)
	case Sequence:
		if len(v.Items) < 2 {
			l.add("items", "at least 2 items are required")
		}
		for i, it := range v.Items {
			requireText(&l, fmt.Sprintf("items[%d].label", i), it.Label)
		}
	case Category:
		if len(v.Items) < 2 {
			l.add("items", "at least 2 items are required")
		}
		for i, g := range v.Groups {
			requireText(&l, fmt.Sprintf("groups[%d].name", i), g.Name)
		}
		for i, it := range v.Items {
			requireText(&l, fmt.Sprintf("items[%d].label", i), it.Label)
		}
	case NumberGrid:
		if len(v.Givens) >= len(v.Solution) {
			l.add("givens", "at least one cell must be left for the player")
		}
		if err := CheckGrid(v, v.Solution); err != nil {
			l.add("solution", "%s", err.Error())
		}
		if v.GridType == GridFree && !slices.ContainsFunc(v.Solution, func(n int) bool { return n != 0 }) {
			l.add("solution", "free grid needs at least one non-zero cell")
		}
	case Path:
		if err := ValidatePath(v, v.Solution); err != nil {
			l.add("solution", "%s", err.Error())
		}
	case CodeBreaker:
		// The default palette code is already playable.
	case Memory:
		if len(v.Pairs)/2 < MinMemoryPairs {
			l.add("pairs", "at least %d pairs are required", MinMemoryPairs)
		}
		for i, card := range v.Pairs {
			requireText(&l, fmt.Sprintf("pairs[%d].value", i), card.Value)
		}
	case Info:
		requireText(&l, "text", v.Text)
	}
	return l.err(c.Kind())
}

func checkChoices(l *issues, prefix string, choices []Choice, correctID string) {
	if len(choices) < MinChoices || len(choices) > MaxChoices {
		l.add(prefix+"choices", "must have between %d and %d choices", MinChoices, MaxChoices)
	}
	seen := map[string]bool{}
	for i, ch := range choices {
		checkID(l, fmt.Sprintf("%schoices[%d].id", prefix, i), ch.ID, seen)
	}
	if !seen[correctID] {
		l.add(prefix+"correctId", "references unknown choice %q", correctID)
	}
}

func checkID(l *issues, field, id string, seen map[string]bool) {
	switch {
	case id == "":
		l.add(field, "must not be empty")
	case seen[id]:
		l.add(field, "duplicate id %q", id)
	}
	seen[id] = true
}

func checkIndices(l *issues, field string, idx []int, n int) {
	seen := make(map[int]bool, len(idx))
	for i, v := range idx {
		if v < 0 || v >= n {
			l.add(fmt.Sprintf("%s[%d]", field, i), "index %d out of range", v)
			continue
		}
		if seen[v] {
			l.add(fmt.Sprintf("%s[%d]", field, i), "duplicate index %d", v)
		}
		seen[v] = true
	}
}

func checkMemory(l *issues, m Memory) {
	if len(m.Pairs)%2 != 0 {
		l.add("pairs", "must have an even number of cards")
	}
	if len(m.Pairs)/2 > MaxMemoryPairs {
		l.add("pairs", "at most %d pairs are allowed", MaxMemoryPairs)
	}
	if m.Cols <= 0 {
		l.add("cols", "must be positive")
	}
	byID := make(map[string]MemoryCard, len(m.Pairs))
	seen := map[string]bool{}
	for i, card := range m.Pairs {
		checkID(l, fmt.Sprintf("pairs[%d].id", i), card.ID, seen)
		byID[card.ID] = card
	}
	for i, card := range m.Pairs {
		mate, ok := byID[card.MatchID]
		switch {
		case !ok || card.MatchID == card.ID:
			l.add(fmt.Sprintf("pairs[%d].matchId", i), "references unknown card %q", card.MatchID)
		case mate.MatchID != card.ID:
			l.add(fmt.Sprintf("pairs[%d].matchId", i), "card %q does not match back", mate.ID)
		case mate.Value != card.Value:
			l.add(fmt.Sprintf("pairs[%d].value", i), "differs from its match %q", mate.ID)
		}
	}
}

func requireText(l *issues, field, s string) {
	if strings.TrimSpace(s) == "" {
		l.add(field, "must not be empty")
	}
}

func requireLabels(l *issues, prefix string, choices []Choice) {
	for i, ch := range choices {
		requireText(l, fmt.Sprintf("%schoices[%d].label", prefix, i), ch.Label)
	}
}

func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
