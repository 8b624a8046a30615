package entity

import (
	"errors"
	"strings"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

var (
	ErrNotDigit    = errors.New("only digits are allowed")
	ErrCellOutside = errors.New("cell index out of range")
)

// CodeGrid models the six single-digit inputs of the code screen.
type CodeGrid struct {
	cells     [CodeLength]string
	focus     int
	submitted bool
}

// Focus is the index of the cell that receives the next keystroke.
func (g *CodeGrid) Focus() int { return g.focus }

func (g *CodeGrid) Cells() [CodeLength]string { return g.cells }

// Code joins the cells. It is shorter than CodeLength while cells are empty.
func (g *CodeGrid) Code() string { return strings.Join(g.cells[:], "") }

func (g *CodeGrid) Complete() bool {
	for _, c := range g.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Input sets cell i to text. An empty text clears the cell. A digit moves
// focus to the next cell. ready is true exactly once per completed grid.
func (g *CodeGrid) Input(i int, text string) (ready bool, err error) {
	if i < 0 || i >= CodeLength {
		return false, ErrCellOutside
	}

	if text == "" {
		g.cells[i] = ""
		g.submitted = false
		return false, nil
	}

	if len(text) != 1 || text[0] < '0' || text[0] > '9' {
		return false, ErrNotDigit
	}

	g.cells[i] = text
	if i < CodeLength-1 {
		g.focus = i + 1
	}

	if g.Complete() && !g.submitted {
		g.submitted = true
		return true, nil
	}
	return false, nil
}

// Backspace clears cell i, or moves focus back when it is already empty.
func (g *CodeGrid) Backspace(i int) {
	if i < 0 || i >= CodeLength {
		return
	}
	if g.cells[i] != "" {
		g.cells[i] = ""
		g.submitted = false
		return
	}
	if i > 0 {
		g.focus = i - 1
	}
}

// Reset empties every cell and focuses the first one.
func (g *CodeGrid) Reset() {
	*g = CodeGrid{}
}
