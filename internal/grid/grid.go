// Package grid turns navigation state into rows of colored character cells
// and computes which rows changed between two frames.
package grid

// Cell is one character position on screen. Rune 0 marks the right half of a
// wide character drawn in the cell to its left.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Kind tells which palette a row was drawn with
type Kind int

const (
	KindNormal Kind = iota
	KindActive
	KindHeader
)

func (k Kind) String() string {
	switch k {
	case KindActive:
		return "active"
	case KindHeader:
		return "header"
	default:
		return "normal"
	}
}

// Row is one rendered line
type Row struct {
	Cells []Cell
	Kind  Kind
}

// Text returns the characters of the row, skipping wide-character continuations
func (r Row) Text() string {
	runes := make([]rune, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// Equal reports whether both rows hold the same cells in the same positions
func (r Row) Equal(other Row) bool {
	if len(r.Cells) != len(other.Cells) {
		return false
	}
	for i := range r.Cells {
		if r.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// Grid is a rendered frame. Grids are values: renderers build new ones and
// never modify a grid they returned.
type Grid struct {
	Rows  []Row
	Width int
}

// Height returns the number of rows
func (g Grid) Height() int {
	return len(g.Rows)
}

// Lines returns the text of every row
func (g Grid) Lines() []string {
	lines := make([]string, len(g.Rows))
	for i, r := range g.Rows {
		lines[i] = r.Text()
	}
	return lines
}

// paint builds a row of formatted characters in one palette
func paint(chars FormattedRow, p Palette, kind Kind) Row {
	cells := make([]Cell, len(chars))
	for i, r := range chars {
		cells[i] = Cell{Rune: r, Fg: p.Fg, Bg: p.Bg}
	}
	return Row{Cells: cells, Kind: kind}
}
