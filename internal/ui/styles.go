package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"listmenu/internal/grid"
)

// Styles caches one lipgloss style per palette. Every cell of a rendered row
// carries the same colors, so a row is styled as a single string.
type Styles struct {
	defaultFg grid.Color
	defaultBg grid.Color
	cache     map[grid.Palette]lipgloss.Style
}

// NewStyles creates styles substituting fg and bg for unset colors
func NewStyles(fg, bg grid.Color) *Styles {
	return &Styles{
		defaultFg: fg,
		defaultBg: bg,
		cache:     make(map[grid.Palette]lipgloss.Style),
	}
}

func (s *Styles) style(p grid.Palette) lipgloss.Style {
	if st, ok := s.cache[p]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if fg := p.Fg.Or(s.defaultFg); !fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(int(fg))))
	}
	if bg := p.Bg.Or(s.defaultBg); !bg.IsDefault() {
		st = st.Background(lipgloss.Color(strconv.Itoa(int(bg))))
	}
	s.cache[p] = st
	return st
}

// Row renders one grid row as a styled line
func (s *Styles) Row(row grid.Row) string {
	if len(row.Cells) == 0 {
		return ""
	}
	first := row.Cells[0]
	return s.style(grid.Palette{Fg: first.Fg, Bg: first.Bg}).Render(row.Text())
}
