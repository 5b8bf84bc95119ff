package scene

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Answer is a player's response to a scene. Only the fields relevant to the
// scene's kind are read.
type Answer struct {
	ChoiceID    string            `json:"choiceId,omitempty"`
	ChoiceIDs   []string          `json:"choiceIds,omitempty"`
	Text        string            `json:"text,omitempty"`
	Texts       []string          `json:"texts,omitempty"`
	Letters     []string          `json:"letters,omitempty"`
	Guesses     []string          `json:"guesses,omitempty"`
	Order       []string          `json:"order,omitempty"`
	Assignments map[string]string `json:"assignments,omitempty"`
	Grid        []int             `json:"grid,omitempty"`
	Path        []int             `json:"path,omitempty"`
	Codes       [][]string        `json:"codes,omitempty"`
	Matches     [][2]string       `json:"matches,omitempty"`
}

// Result is the outcome of grading one answer. Unscored results (info cards)
// do not trigger game rules.
type Result struct {
	Correct bool `json:"correct"`
	Scored  bool `json:"scored"`
	Points  int  `json:"points"`
	Max     int  `json:"max"`
}

func binary(ok bool) Result {
	r := Result{Correct: ok, Scored: true, Max: 1}
	if ok {
		r.Points = 1
	}
	return r
}

// Grade checks answer against content. It fails only when content itself is
// structurally invalid.
func Grade(c Content, a Answer) (Result, error) {
	if err := Validate(c); err != nil {
		return Result{}, err
	}
	switch v := c.(type) {
	case MCQ:
		return binary(a.ChoiceID == v.CorrectID), nil
	case MCQMulti:
		hits := 0
		for i, q := range v.Questions {
			if i < len(a.ChoiceIDs) && a.ChoiceIDs[i] == q.CorrectID {
				hits++
			}
		}
		return Result{
			Correct: hits == len(v.Questions),
			Scored:  true,
			Points:  hits * v.PointsPerCorrect,
			Max:     len(v.Questions) * v.PointsPerCorrect,
		}, nil
	case TextInput:
		return binary(sameText(a.Text, v.Answer, v.CaseSensitive)), nil
	case TextInputMulti:
		hits := 0
		for i, r := range v.Rounds {
			if i < len(a.Texts) && sameText(a.Texts[i], r.Answer, v.CaseSensitive) {
				hits++
			}
		}
		return Result{
			Correct: hits == len(v.Rounds),
			Scored:  true,
			Points:  hits * v.PointsPerCorrect,
			Max:     len(v.Rounds) * v.PointsPerCorrect,
		}, nil
	case WordGuess:
		return binary(SolveHangman(v, a.Letters).Won), nil
	case Wordle:
		won := false
		for i, g := range a.Guesses {
			if i >= v.MaxAttempts {
				break
			}
			if v.Word != "" && strings.EqualFold(strings.TrimSpace(g), v.Word) {
				won = true
				break
			}
		}
		return binary(won), nil
	case Sequence:
		return binary(checkOrder(v, a.Order)), nil
	case Category:
		ok := len(a.Assignments) == len(v.Items)
		for _, it := range v.Items {
			if a.Assignments[it.ID] != it.GroupID {
				ok = false
			}
		}
		return binary(ok), nil
	case NumberGrid:
		return binary(gradeGrid(v, a.Grid)), nil
	case Path:
		return binary(ValidatePath(v, a.Path) == nil), nil
	case CodeBreaker:
		won := false
		for i, code := range a.Codes {
			if i >= v.MaxGuesses {
				break
			}
			if exact, _ := CodeFeedback(v.SecretCode, code); exact == len(v.SecretCode) && len(code) == len(v.SecretCode) {
				won = true
				break
			}
		}
		return binary(won), nil
	case Memory:
		return binary(checkMatches(v, a.Matches)), nil
	case Info:
		return Result{Correct: true}, nil
	}
	return Result{}, fmt.Errorf("grade %T: %w", c, ErrUnsupportedContent)
}

func sameText(got, want string, caseSensitive bool) bool {
	got, want = strings.TrimSpace(got), strings.TrimSpace(want)
	if want == "" {
		return false
	}
	if caseSensitive {
		return got == want
	}
	return strings.EqualFold(got, want)
}

// checkOrder verifies the player's ordering: every item exactly once, and
// each position holding the item the solution puts there.
func checkOrder(s Sequence, order []string) bool {
	if len(order) != len(s.Items) {
		return false
	}
	seen := make(map[string]bool, len(order))
	for k, id := range order {
		if seen[id] {
			return false
		}
		seen[id] = true
		if s.Items[s.Solution[k]].ID != id {
			return false
		}
	}
	return true
}

func checkMatches(m Memory, matches [][2]string) bool {
	byID := make(map[string]MemoryCard, len(m.Pairs))
	for _, card := range m.Pairs {
		byID[card.ID] = card
	}
	found := make(map[string]bool, len(m.Pairs))
	for _, pair := range matches {
		a, ok := byID[pair[0]]
		if !ok || a.MatchID != pair[1] || found[a.ID] {
			return false
		}
		found[a.ID] = true
		found[a.MatchID] = true
	}
	return len(found) == len(m.Pairs)
}

// HangmanState is the board after replaying a sequence of guessed letters.
type HangmanState struct {
	Revealed string   `json:"revealed"`
	Wrong    []string `json:"wrong"`
	Won      bool     `json:"won"`
	Lost     bool     `json:"lost"`
}

// SolveHangman replays letters against the word. Non-letters in the word are
// shown from the start; the game is lost once wrong guesses reach the limit.
func SolveHangman(w WordGuess, letters []string) HangmanState {
	word := []rune(strings.ToLower(strings.TrimSpace(w.Word)))
	guessed := map[rune]bool{}
	var st HangmanState
	for _, raw := range letters {
		if st.Won || st.Lost {
			break
		}
		r := []rune(strings.ToLower(strings.TrimSpace(raw)))
		if len(r) != 1 || !unicode.IsLetter(r[0]) || guessed[r[0]] {
			continue
		}
		guessed[r[0]] = true
		if !slices.Contains(word, r[0]) {
			st.Wrong = append(st.Wrong, string(r[0]))
			st.Lost = len(st.Wrong) >= w.MaxWrongGuesses
			continue
		}
		st.Won = allRevealed(word, guessed)
	}
	var b strings.Builder
	for _, r := range word {
		if !unicode.IsLetter(r) || guessed[r] {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	st.Revealed = b.String()
	if len(word) > 0 && !st.Lost {
		st.Won = allRevealed(word, guessed)
	}
	return st
}

func allRevealed(word []rune, guessed map[rune]bool) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !guessed[r] {
			return false
		}
	}
	return true
}
