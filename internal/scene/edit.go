package scene

import (
	"errors"
	"fmt"
	"slices"
)

// Edit errors. Every edit returns the input unchanged alongside the error.
var (
	ErrTooMany      = errors.New("limit reached")
	ErrTooFew       = errors.New("minimum reached")
	ErrOutOfRange   = errors.New("index out of range")
	ErrUnknownID    = errors.New("unknown id")
	ErrPoolTooSmall = errors.New("option pool smaller than code length")
)

// AddChoice appends an empty-labelled choice.
func (m MCQ) AddChoice(label string) (MCQ, error) {
	if len(m.Choices) >= MaxChoices {
		return m, fmt.Errorf("add choice: %w (%d)", ErrTooMany, MaxChoices)
	}
	out := m.clone()
	out.Choices = append(out.Choices, Choice{ID: newID(), Label: label})
	return out, nil
}

// RemoveChoice drops the choice at index i. When the removed choice was the
// correct one, the first remaining choice becomes correct.
func (m MCQ) RemoveChoice(i int) (MCQ, error) {
	choices, correct, err := removeChoice(m.Choices, m.CorrectID, i)
	if err != nil {
		return m, err
	}
	out := m
	out.Choices = choices
	out.CorrectID = correct
	return out, nil
}

// SetCorrect marks the choice with id as the answer.
func (m MCQ) SetCorrect(id string) (MCQ, error) {
	if !hasChoice(m.Choices, id) {
		return m, fmt.Errorf("set correct %q: %w", id, ErrUnknownID)
	}
	out := m.clone()
	out.CorrectID = id
	return out, nil
}

// AddQuestion appends a two-choice question.
func (m MCQMulti) AddQuestion(question string) MCQMulti {
	out := m.clone()
	a, b := newID(), newID()
	out.Questions = append(out.Questions, MultiQuestion{
		ID:        newID(),
		Question:  question,
		Choices:   []Choice{{ID: a}, {ID: b}},
		CorrectID: a,
	})
	return out
}

// RemoveQuestion drops question i; at least one question always remains.
func (m MCQMulti) RemoveQuestion(i int) (MCQMulti, error) {
	if i < 0 || i >= len(m.Questions) {
		return m, fmt.Errorf("remove question %d: %w", i, ErrOutOfRange)
	}
	if len(m.Questions) <= 1 {
		return m, fmt.Errorf("remove question: %w (1)", ErrTooFew)
	}
	out := m.clone()
	out.Questions = slices.Delete(out.Questions, i, i+1)
	return out, nil
}

// RemoveQuestionChoice applies the MCQ choice-removal rule to question q.
func (m MCQMulti) RemoveQuestionChoice(q, i int) (MCQMulti, error) {
	if q < 0 || q >= len(m.Questions) {
		return m, fmt.Errorf("remove choice from question %d: %w", q, ErrOutOfRange)
	}
	choices, correct, err := removeChoice(m.Questions[q].Choices, m.Questions[q].CorrectID, i)
	if err != nil {
		return m, err
	}
	out := m.clone()
	out.Questions[q].Choices = choices
	out.Questions[q].CorrectID = correct
	return out, nil
}

// AddRound appends an empty round.
func (m TextInputMulti) AddRound() TextInputMulti {
	out := m.clone()
	out.Rounds = append(out.Rounds, TextRound{ID: newID()})
	return out
}

// RemoveRound drops round i; at least one round always remains.
func (m TextInputMulti) RemoveRound(i int) (TextInputMulti, error) {
	if i < 0 || i >= len(m.Rounds) {
		return m, fmt.Errorf("remove round %d: %w", i, ErrOutOfRange)
	}
	if len(m.Rounds) <= 1 {
		return m, fmt.Errorf("remove round: %w (1)", ErrTooFew)
	}
	out := m.clone()
	out.Rounds = slices.Delete(out.Rounds, i, i+1)
	return out, nil
}

// AddItem appends an item and places it last in the solution.
func (s Sequence) AddItem(label string) Sequence {
	out := s.clone()
	out.Items = append(out.Items, SequenceItem{ID: newID(), Label: label})
	out.Solution = append(out.Solution, len(out.Items)-1)
	return out
}

// RemoveItem drops item i, removes i from the solution and shifts every
// solution entry above i down by one so the solution stays a permutation.
func (s Sequence) RemoveItem(i int) (Sequence, error) {
	if i < 0 || i >= len(s.Items) {
		return s, fmt.Errorf("remove item %d: %w", i, ErrOutOfRange)
	}
	out := Sequence{
		Prompt:   s.Prompt,
		Items:    slices.Delete(slices.Clone(s.Items), i, i+1),
		Solution: make([]int, 0, len(s.Solution)),
	}
	for _, idx := range s.Solution {
		switch {
		case idx == i:
		case idx > i:
			out.Solution = append(out.Solution, idx-1)
		default:
			out.Solution = append(out.Solution, idx)
		}
	}
	return out, nil
}

// MoveSolution moves the entry at solution position from to position to.
func (s Sequence) MoveSolution(from, to int) (Sequence, error) {
	if from < 0 || from >= len(s.Solution) || to < 0 || to >= len(s.Solution) {
		return s, fmt.Errorf("move %d->%d: %w", from, to, ErrOutOfRange)
	}
	out := s.clone()
	v := out.Solution[from]
	out.Solution = slices.Delete(out.Solution, from, from+1)
	out.Solution = slices.Insert(out.Solution, to, v)
	return out, nil
}

// AddPair appends two mutually matched cards showing value.
func (m Memory) AddPair(value string) (Memory, error) {
	if len(m.Pairs)/2 >= MaxMemoryPairs {
		return m, fmt.Errorf("add pair: %w (%d)", ErrTooMany, MaxMemoryPairs)
	}
	out := m.clone()
	a, b := newID(), newID()
	out.Pairs = append(out.Pairs,
		MemoryCard{ID: a, Value: value, MatchID: b},
		MemoryCard{ID: b, Value: value, MatchID: a},
	)
	return out, nil
}

// RemovePair removes the card with id together with its match.
func (m Memory) RemovePair(id string) (Memory, error) {
	if len(m.Pairs)/2 <= MinMemoryPairs {
		return m, fmt.Errorf("remove pair: %w (%d)", ErrTooFew, MinMemoryPairs)
	}
	idx := slices.IndexFunc(m.Pairs, func(c MemoryCard) bool { return c.ID == id })
	if idx < 0 {
		return m, fmt.Errorf("remove pair %q: %w", id, ErrUnknownID)
	}
	mate := m.Pairs[idx].MatchID
	out := m.clone()
	out.Pairs = slices.DeleteFunc(out.Pairs, func(c MemoryCard) bool {
		return c.ID == id || c.ID == mate
	})
	return out, nil
}

// SetPairValue updates the value shown on both cards of a pair.
func (m Memory) SetPairValue(id, value string) (Memory, error) {
	idx := slices.IndexFunc(m.Pairs, func(c MemoryCard) bool { return c.ID == id })
	if idx < 0 {
		return m, fmt.Errorf("set pair value %q: %w", id, ErrUnknownID)
	}
	mate := m.Pairs[idx].MatchID
	out := m.clone()
	for i := range out.Pairs {
		if out.Pairs[i].ID == id || out.Pairs[i].ID == mate {
			out.Pairs[i].Value = value
		}
	}
	return out, nil
}

// AddGroup appends a group colored from GroupColors.
func (c Category) AddGroup(name string) (Category, error) {
	if len(c.Groups) >= MaxGroups {
		return c, fmt.Errorf("add group: %w (%d)", ErrTooMany, MaxGroups)
	}
	out := c.clone()
	out.Groups = append(out.Groups, CategoryGroup{
		ID:    newID(),
		Name:  name,
		Color: GroupColors[len(c.Groups)%len(GroupColors)],
	})
	return out, nil
}

// RemoveGroup drops a group and every item assigned to it.
func (c Category) RemoveGroup(id string) (Category, error) {
	if len(c.Groups) <= MinGroups {
		return c, fmt.Errorf("remove group: %w (%d)", ErrTooFew, MinGroups)
	}
	if !slices.ContainsFunc(c.Groups, func(g CategoryGroup) bool { return g.ID == id }) {
		return c, fmt.Errorf("remove group %q: %w", id, ErrUnknownID)
	}
	out := c.clone()
	out.Groups = slices.DeleteFunc(out.Groups, func(g CategoryGroup) bool { return g.ID == id })
	out.Items = slices.DeleteFunc(out.Items, func(it CategoryItem) bool { return it.GroupID == id })
	return out, nil
}

// AddItem appends an item to an existing group.
func (c Category) AddItem(label, groupID string) (Category, error) {
	if !slices.ContainsFunc(c.Groups, func(g CategoryGroup) bool { return g.ID == groupID }) {
		return c, fmt.Errorf("add item to group %q: %w", groupID, ErrUnknownID)
	}
	out := c.clone()
	out.Items = append(out.Items, CategoryItem{ID: newID(), Label: label, GroupID: groupID})
	return out, nil
}

// RemoveItem drops the item with id.
func (c Category) RemoveItem(id string) (Category, error) {
	if !slices.ContainsFunc(c.Items, func(it CategoryItem) bool { return it.ID == id }) {
		return c, fmt.Errorf("remove item %q: %w", id, ErrUnknownID)
	}
	out := c.clone()
	out.Items = slices.DeleteFunc(out.Items, func(it CategoryItem) bool { return it.ID == id })
	return out, nil
}

// SetOptionCount resizes the option pool to the first n palette colors. The
// pool never shrinks below the code length; secret slots whose color left the
// pool are remapped to the first remaining option.
func (c CodeBreaker) SetOptionCount(n int) (CodeBreaker, error) {
	if n < len(c.SecretCode) {
		return c, fmt.Errorf("set option count %d: %w (%d)", n, ErrPoolTooSmall, len(c.SecretCode))
	}
	if n > len(CodeColors) {
		return c, fmt.Errorf("set option count %d: %w (%d)", n, ErrTooMany, len(CodeColors))
	}
	out := c.clone()
	if n <= len(out.Options) {
		out.Options = out.Options[:n]
	} else {
		for _, color := range CodeColors {
			if len(out.Options) == n {
				break
			}
			if !slices.Contains(out.Options, color) {
				out.Options = append(out.Options, color)
			}
		}
	}
	for i, slot := range out.SecretCode {
		if !slices.Contains(out.Options, slot) {
			out.SecretCode[i] = out.Options[0]
		}
	}
	return out, nil
}

// SetSlot sets secret code position i to color, which must be in the pool.
func (c CodeBreaker) SetSlot(i int, color string) (CodeBreaker, error) {
	if i < 0 || i >= len(c.SecretCode) {
		return c, fmt.Errorf("set slot %d: %w", i, ErrOutOfRange)
	}
	if !slices.Contains(c.Options, color) {
		return c, fmt.Errorf("set slot color %q: %w", color, ErrUnknownID)
	}
	out := c.clone()
	out.SecretCode[i] = color
	return out, nil
}

// Resize reallocates the grid to size*size zeros and clears the givens.
func (g NumberGrid) Resize(size int) (NumberGrid, error) {
	if size < MinGridSize || size > MaxGridSize {
		return g, fmt.Errorf("resize grid to %d: %w", size, ErrOutOfRange)
	}
	out := g
	out.Size = size
	out.Solution = make([]int, size*size)
	out.Givens = []int{}
	return out, nil
}

// SetCell writes value into solution cell idx.
func (g NumberGrid) SetCell(idx, value int) (NumberGrid, error) {
	if idx < 0 || idx >= len(g.Solution) {
		return g, fmt.Errorf("set cell %d: %w", idx, ErrOutOfRange)
	}
	out := g.clone()
	out.Solution[idx] = value
	return out, nil
}

// ToggleGiven reveals or hides cell idx.
func (g NumberGrid) ToggleGiven(idx int) (NumberGrid, error) {
	if idx < 0 || idx >= len(g.Solution) {
		return g, fmt.Errorf("toggle given %d: %w", idx, ErrOutOfRange)
	}
	out := g.clone()
	if pos := slices.Index(out.Givens, idx); pos >= 0 {
		out.Givens = slices.Delete(out.Givens, pos, pos+1)
	} else {
		out.Givens = append(out.Givens, idx)
		slices.Sort(out.Givens)
	}
	return out, nil
}

// Resize reallocates the cells to rows*cols blanks and clears the solution.
func (p Path) Resize(rows, cols int) (Path, error) {
	if rows < MinGridSize || rows > MaxGridSize || cols < MinGridSize || cols > MaxGridSize {
		return p, fmt.Errorf("resize path to %dx%d: %w", rows, cols, ErrOutOfRange)
	}
	out := p
	out.Rows, out.Cols = rows, cols
	out.Cells = make([]int, rows*cols)
	out.Solution = []int{}
	return out, nil
}

func removeChoice(choices []Choice, correctID string, i int) ([]Choice, string, error) {
	if i < 0 || i >= len(choices) {
		return nil, "", fmt.Errorf("remove choice %d: %w", i, ErrOutOfRange)
	}
	if len(choices) <= MinChoices {
		return nil, "", fmt.Errorf("remove choice: %w (%d)", ErrTooFew, MinChoices)
	}
	removed := choices[i].ID
	out := slices.Delete(slices.Clone(choices), i, i+1)
	if correctID == removed {
		correctID = out[0].ID
	}
	return out, correctID, nil
}

func hasChoice(choices []Choice, id string) bool {
	return slices.ContainsFunc(choices, func(c Choice) bool { return c.ID == id })
}
