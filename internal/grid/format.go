package grid

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// FormattedRow is exactly width runes, one per terminal column. A wide
// character is followed by a 0 rune for the column it also covers.
type FormattedRow []rune

// FormatRow truncates text to width terminal columns and right-pads it with
// spaces. Control characters become spaces and zero-width runes are dropped.
// A wide character that would straddle the right edge is replaced by padding.
func FormatRow(text string, width int) FormattedRow {
	if width <= 0 {
		return FormattedRow{}
	}
	row := make(FormattedRow, 0, width)
	for _, r := range text {
		if unicode.IsControl(r) {
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if len(row)+w > width {
			break
		}
		row = append(row, r)
		if w == 2 {
			row = append(row, 0)
		}
	}
	for len(row) < width {
		row = append(row, ' ')
	}
	return row
}
