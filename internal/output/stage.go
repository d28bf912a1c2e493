package output

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/manav03panchal/blockstage/internal/store"
)

// Grid maps stage coordinates onto a character grid. The stage is centered
// on the origin with y pointing up.
type Grid struct {
	Cols, Rows    int
	Width, Height float64
}

// NewGrid sizes a grid to fit cols columns while keeping the stage's aspect
// ratio. Terminal cells are about twice as tall as wide.
func NewGrid(cols int, width, height float64) Grid {
	if cols < 8 {
		cols = 8
	}
	rows := int(math.Round(float64(cols) * height / width / 2))
	if rows < 4 {
		rows = 4
	}
	return Grid{Cols: cols, Rows: rows, Width: width, Height: height}
}

// Project returns the cell for stage point (x, y). Points off the stage are
// clamped to the border and reported with ok=false.
func (g Grid) Project(x, y float64) (col, row int, ok bool) {
	fx := (x + g.Width/2) / g.Width
	fy := (g.Height/2 - y) / g.Height
	ok = fx >= 0 && fx <= 1 && fy >= 0 && fy <= 1

	col = clamp(int(math.Round(fx*float64(g.Cols-1))), 0, g.Cols-1)
	row = clamp(int(math.Round(fy*float64(g.Rows-1))), 0, g.Rows-1)
	return col, row, ok
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Glyph is the single character an actor is drawn with.
func Glyph(a store.Actor) rune {
	r, _ := utf8.DecodeRuneInString(a.Name)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return '@'
	}
	return unicode.ToUpper(r)
}

// Cells returns the grid as rows of runes with visible actors placed. Later
// actors overwrite earlier ones sharing a cell. Axes are drawn through the
// origin.
func (g Grid) Cells(actors []store.Actor) [][]rune {
	cells := make([][]rune, g.Rows)
	originCol, originRow, _ := g.Project(0, 0)
	for r := range cells {
		cells[r] = make([]rune, g.Cols)
		for c := range cells[r] {
			switch {
			case r == originRow && c == originCol:
				cells[r][c] = '+'
			case r == originRow:
				cells[r][c] = '·'
			case c == originCol:
				cells[r][c] = '·'
			default:
				cells[r][c] = ' '
			}
		}
	}
	for _, a := range actors {
		if !a.Visible {
			continue
		}
		c, r, _ := g.Project(a.X, a.Y)
		cells[r][c] = Glyph(a)
	}
	return cells
}

// RenderStage draws the stage in a box, followed by one line per active
// speech or thought bubble.
func RenderStage(s store.State, g Grid) string {
	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", g.Cols) + "┐\n")
	for _, row := range g.Cells(s.Actors) {
		sb.WriteString("│")
		sb.WriteString(string(row))
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", g.Cols) + "┘\n")

	for _, a := range s.Actors {
		if line := Bubble(a); line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Bubble renders an actor's message, or "" when it has none.
func Bubble(a store.Actor) string {
	if a.Message == nil {
		return ""
	}
	if a.Message.Kind == store.MessageThink {
		return string(Glyph(a)) + " " + a.Name + " thinks ( " + a.Message.Text + " )"
	}
	return string(Glyph(a)) + " " + a.Name + " says « " + a.Message.Text + " »"
}
