package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an xterm palette index (0-255) or ColorDefault. ColorDefault
// means the cell did not override the color and the painting layer picks.
type Color int16

// ColorDefault leaves the color to the painting layer
const ColorDefault Color = -1

// The eight ANSI colors
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

// ParseColor accepts a color name ("cyan", "default", ...) or a palette
// index between 0 and 255. The empty string parses as ColorDefault.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ColorDefault, nil
	}
	if c, ok := colorNames[name]; ok {
		return c, nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 255 {
		return ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return Color(n), nil
}

// IsDefault reports whether c is unset
func (c Color) IsDefault() bool {
	return c < 0
}

// Or returns c, or fallback when c is unset
func (c Color) Or(fallback Color) Color {
	if c.IsDefault() {
		return fallback
	}
	return c
}

// String returns the name ParseColor accepts for c
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return strconv.Itoa(int(c))
}

// Palette is the foreground and background pair applied to a row
type Palette struct {
	Fg Color
	Bg Color
}

// Palettes holds the palette of ordinary rows and of the cursor row
type Palettes struct {
	Normal Palette
	Active Palette
}

// DefaultPalettes leaves ordinary rows to the painting layer and draws the
// cursor row black on cyan.
func DefaultPalettes() Palettes {
	return Palettes{
		Normal: Palette{Fg: ColorDefault, Bg: ColorDefault},
		Active: Palette{Fg: ColorBlack, Bg: ColorCyan},
	}
}

// DefaultHeaderPalette draws header rows black on red
var DefaultHeaderPalette = Palette{Fg: ColorBlack, Bg: ColorRed}
