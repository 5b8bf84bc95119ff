package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is the per-letter verdict of a Wordle guess.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// WordleFeedback scores guess against word. Exact positions are marked first
// so a repeated letter is only reported present as often as it remains
// unmatched in the word.
func WordleFeedback(word, guess string) []Mark {
	w := []rune(strings.ToLower(word))
	g := []rune(strings.ToLower(guess))
	marks := make([]Mark, len(g))
	remaining := map[rune]int{}
	for i, r := range g {
		if i < len(w) && w[i] == r {
			marks[i] = MarkHit
			continue
		}
		marks[i] = MarkMiss
	}
	for i, r := range w {
		if i >= len(g) || g[i] != r {
			remaining[r]++
		}
	}
	for i, r := range g {
		if marks[i] == MarkHit {
			continue
		}
		if remaining[r] > 0 {
			marks[i] = MarkPresent
			remaining[r]--
		}
	}
	return marks
}

// CodeFeedback returns the number of pegs with the right color in the right
// slot, and the number with a right color in the wrong slot.
func CodeFeedback(secret, guess []string) (exact, partial int) {
	secretLeft := map[string]int{}
	guessLeft := map[string]int{}
	for i := range secret {
		if i < len(guess) && guess[i] == secret[i] {
			exact++
			continue
		}
		secretLeft[secret[i]]++
		if i < len(guess) {
			guessLeft[guess[i]]++
		}
	}
	for color, n := range guessLeft {
		partial += min(n, secretLeft[color])
	}
	return exact, partial
}

// Path validation errors.
var (
	ErrPathIncomplete = errors.New("path must visit every cell once")
	ErrPathStep       = errors.New("path steps must be orthogonally adjacent")
	ErrPathOrder      = errors.New("checkpoints must be visited in ascending order")
)

// ValidatePath checks that path visits every cell exactly once through
// orthogonal steps, passing numbered checkpoints in ascending order starting
// at 1 and ending on the highest one.
func ValidatePath(p Path, path []int) error {
	n := p.Rows * p.Cols
	if n == 0 || len(path) != n || len(p.Cells) != n {
		return ErrPathIncomplete
	}
	seen := make([]bool, n)
	highest := 0
	for _, v := range p.Cells {
		highest = max(highest, v)
	}
	next := 1
	for i, cell := range path {
		if cell < 0 || cell >= n || seen[cell] {
			return ErrPathIncomplete
		}
		seen[cell] = true
		if i > 0 && !adjacent(path[i-1], cell, p.Cols) {
			return fmt.Errorf("%w: %d -> %d", ErrPathStep, path[i-1], cell)
		}
		if v := p.Cells[cell]; v != 0 {
			if v != next {
				return fmt.Errorf("%w: reached %d, expected %d", ErrPathOrder, v, next)
			}
			next++
		}
	}
	if highest > 0 && (p.Cells[path[0]] != 1 || p.Cells[path[n-1]] != highest) {
		return fmt.Errorf("%w: must start on 1 and end on %d", ErrPathOrder, highest)
	}
	return nil
}

func adjacent(a, b, cols int) bool {
	ar, ac := a/cols, a%cols
	br, bc := b/cols, b%cols
	dr, dc := ar-br, ac-bc
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// CheckGrid verifies grid against the constraints of g's grid type. Free
// grids only need the right number of cells.
func CheckGrid(g NumberGrid, grid []int) error {
	n := g.Size
	if len(grid) != n*n {
		return fmt.Errorf("grid must have %d cells", n*n)
	}
	switch g.GridType {
	case GridMagic:
		seen := map[int]bool{}
		for _, v := range grid {
			if v < 1 || v > n*n || seen[v] {
				return fmt.Errorf("magic square needs each of 1..%d once", n*n)
			}
			seen[v] = true
		}
		target := n * (n*n + 1) / 2
		var d1, d2 int
		for i := 0; i < n; i++ {
			var row, col int
			for j := 0; j < n; j++ {
				row += grid[i*n+j]
				col += grid[j*n+i]
			}
			if row != target || col != target {
				return fmt.Errorf("rows and columns must sum to %d", target)
			}
			d1 += grid[i*n+i]
			d2 += grid[i*n+(n-1-i)]
		}
		if d1 != target || d2 != target {
			return fmt.Errorf("diagonals must sum to %d", target)
		}
	case GridLatin:
		for i := 0; i < n; i++ {
			row := make([]bool, n+1)
			col := make([]bool, n+1)
			for j := 0; j < n; j++ {
				r, c := grid[i*n+j], grid[j*n+i]
				if r < 1 || r > n || c < 1 || c > n || row[r] || col[c] {
					return fmt.Errorf("each row and column needs 1..%d once", n)
				}
				row[r], col[c] = true, true
			}
		}
	}
	return nil
}

func gradeGrid(g NumberGrid, grid []int) bool {
	if len(grid) != len(g.Solution) {
		return false
	}
	for _, idx := range g.Givens {
		if grid[idx] != g.Solution[idx] {
			return false
		}
	}
	if g.GridType == GridFree {
		for i := range grid {
			if grid[i] != g.Solution[i] {
				return false
			}
		}
		return true
	}
	return CheckGrid(g, grid) == nil
}
