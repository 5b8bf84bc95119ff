package scene

import "slices"

// Clone returns a deep copy of c that shares no slices with it.
func Clone(c Content) Content {
	switch v := c.(type) {
	case MCQ:
		return v.clone()
	case MCQMulti:
		return v.clone()
	case TextInput:
		return v
	case TextInputMulti:
		return v.clone()
	case WordGuess:
		return v
	case Wordle:
		return v
	case Sequence:
		return v.clone()
	case Category:
		return v.clone()
	case NumberGrid:
		return v.clone()
	case Path:
		return v.clone()
	case CodeBreaker:
		return v.clone()
	case Memory:
		return v.clone()
	case Info:
		return v
	}
	return c
}

func (m MCQ) clone() MCQ {
	m.Choices = slices.Clone(m.Choices)
	return m
}

func (m MCQMulti) clone() MCQMulti {
	qs := make([]MultiQuestion, len(m.Questions))
	for i, q := range m.Questions {
		q.Choices = slices.Clone(q.Choices)
		qs[i] = q
	}
	m.Questions = qs
	return m
}

func (m TextInputMulti) clone() TextInputMulti {
	m.Rounds = slices.Clone(m.Rounds)
	return m
}

func (s Sequence) clone() Sequence {
	s.Items = slices.Clone(s.Items)
	s.Solution = slices.Clone(s.Solution)
	return s
}

func (c Category) clone() Category {
	c.Groups = slices.Clone(c.Groups)
	c.Items = slices.Clone(c.Items)
	return c
}

func (g NumberGrid) clone() NumberGrid {
	g.Solution = slices.Clone(g.Solution)
	g.Givens = slices.Clone(g.Givens)
	return g
}

func (p Path) clone() Path {
	p.Cells = slices.Clone(p.Cells)
	p.Solution = slices.Clone(p.Solution)
	return p
}

func (c CodeBreaker) clone() CodeBreaker {
	c.Options = slices.Clone(c.Options)
	c.SecretCode = slices.Clone(c.SecretCode)
	return c
}

func (m Memory) clone() Memory {
	m.Pairs = slices.Clone(m.Pairs)
	return m
}
