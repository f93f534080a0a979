package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidViewport is returned when asked to render into a non-positive area
var ErrInvalidViewport = errors.New("invalid viewport")

// NoSelection mirrors menu.NoSelection for sources without a cursor
const NoSelection = -1

// Source is the navigation state a Renderer draws
type Source interface {
	Len() int
	Element(i int) string
	// Cursor returns the highlighted index or NoSelection
	Cursor() int
	// Window returns the inclusive range of visible indexes
	Window() (start, end int)
}

// Header is an optional decoration row drawn above the list
type Header struct {
	Text    string
	Palette Palette
}

// Renderer produces grids from navigation state
type Renderer struct {
	palettes Palettes
}

// NewRenderer creates a renderer drawing with the given palettes
func NewRenderer(palettes Palettes) *Renderer {
	return &Renderer{palettes: palettes}
}

// Palettes returns the palettes the renderer draws with
func (r *Renderer) Palettes() Palettes {
	return r.palettes
}

// Render draws height rows of width cells starting at the first visible
// element. Rows past the end of the list are blank. When header is non-nil
// one extra row is drawn above the list, so the grid is height+1 rows tall.
func (r *Renderer) Render(src Source, width, height int, header *Header) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}

	rows := make([]Row, 0, height+1)
	if header != nil {
		rows = append(rows, paint(FormatRow(header.Text, width), header.Palette, KindHeader))
	}

	start, _ := src.Window()
	cursor := src.Cursor()
	for i := 0; i < height; i++ {
		idx := start + i
		if idx < 0 || idx >= src.Len() {
			rows = append(rows, paint(FormatRow("", width), r.palettes.Normal, KindNormal))
			continue
		}
		if idx == cursor {
			rows = append(rows, paint(FormatRow(src.Element(idx), width), r.palettes.Active, KindActive))
		} else {
			rows = append(rows, paint(FormatRow(src.Element(idx), width), r.palettes.Normal, KindNormal))
		}
	}
	return Grid{Rows: rows, Width: width}, nil
}
