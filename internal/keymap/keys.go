// Package keymap maps keystrokes to menu actions.
package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownKey is returned when a key name cannot be parsed
var ErrUnknownKey = errors.New("unknown key")

// Key identifies a keyboard key independently of any terminal library
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyCtrlC
)

// keyNames use the spelling bubbletea gives tea.KeyMsg.String() so config
// files and both frontends agree on names.
var keyNames = map[Key]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdown",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyCtrlC:     "ctrl+c",
}

// aliases accepted by ParseStroke in addition to the canonical names
var keyAliases = map[string]Key{
	"pagedown": KeyPgDn,
	"pageup":   KeyPgUp,
	"pgdn":     KeyPgDn,
	"return":   KeyEnter,
	"escape":   KeyEsc,
	"space":    KeyRune,
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "rune"
	}
	return "none"
}

// Stroke is one key press. Rune is only meaningful for KeyRune.
type Stroke struct {
	Key  Key
	Rune rune
}

// Special returns the stroke of a non-character key
func Special(k Key) Stroke {
	return Stroke{Key: k}
}

// Char returns the stroke of a printable character
func Char(r rune) Stroke {
	return Stroke{Key: KeyRune, Rune: r}
}

// String returns the canonical name of the stroke, e.g. "down", "j" or "ctrl+c"
func (s Stroke) String() string {
	if s.Key == KeyRune {
		return string(s.Rune)
	}
	return s.Key.String()
}

// ParseStroke parses a key name as written in configuration files. Names are
// case-insensitive except for single characters.
func ParseStroke(name string) (Stroke, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Char(r), nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == lower {
			return Special(k), nil
		}
	}
	if k, ok := keyAliases[lower]; ok {
		if k == KeyRune {
			return Char(' '), nil
		}
		return Special(k), nil
	}
	return Stroke{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
