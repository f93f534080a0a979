// Package backend abstracts the terminal the cell loop draws on.
package backend

import (
	"listmenu/internal/grid"
	"listmenu/internal/keymap"
)

// Backend is a character-cell terminal
type Backend interface {
	// PollEvent blocks until an event arrives. It returns nil once the
	// backend is closed and no further events will be delivered.
	PollEvent() Event
	// PeekEvent returns an already pending event without blocking, or nil
	PeekEvent() Event
	// SetCell paints one cell. Coordinates outside the viewport are ignored.
	SetCell(x, y int, r rune, fg, bg grid.Color)
	// Flush makes painted cells visible
	Flush()
	// Size returns the viewport size in cells
	Size() (width, height int)
	Close()
}

// Event is one of KeyEvent, ResizeEvent or MouseEvent
type Event interface {
	event()
}

// Mod is a set of keyboard modifiers
type Mod int

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModNone Mod = 0
)

// KeyEvent is a key press
type KeyEvent struct {
	Key  keymap.Key
	Rune rune
	Mod  Mod
}

// Stroke returns the keymap stroke of the press
func (e KeyEvent) Stroke() keymap.Stroke {
	if e.Key == keymap.KeyRune {
		return keymap.Char(e.Rune)
	}
	return keymap.Special(e.Key)
}

// ResizeEvent reports a new viewport size
type ResizeEvent struct {
	Width  int
	Height int
}

// MouseEvent reports pointer activity. The menu ignores it.
type MouseEvent struct {
	X       int
	Y       int
	Buttons int
}

func (KeyEvent) event()    {}
func (ResizeEvent) event() {}
func (MouseEvent) event()  {}

// Key builds a KeyEvent for a special key
func Key(k keymap.Key) KeyEvent {
	return KeyEvent{Key: k}
}

// Rune builds a KeyEvent for a printable character
func Rune(r rune) KeyEvent {
	return KeyEvent{Key: keymap.KeyRune, Rune: r}
}
