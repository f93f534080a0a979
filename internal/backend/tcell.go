package backend

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"listmenu/internal/grid"
	"listmenu/internal/keymap"
)

const eventBuffer = 64

var tcellKeys = map[tcell.Key]keymap.Key{
	tcell.KeyUp:         keymap.KeyUp,
	tcell.KeyDown:       keymap.KeyDown,
	tcell.KeyLeft:       keymap.KeyLeft,
	tcell.KeyRight:      keymap.KeyRight,
	tcell.KeyHome:       keymap.KeyHome,
	tcell.KeyEnd:        keymap.KeyEnd,
	tcell.KeyPgUp:       keymap.KeyPgUp,
	tcell.KeyPgDn:       keymap.KeyPgDn,
	tcell.KeyEnter:      keymap.KeyEnter,
	tcell.KeyEscape:     keymap.KeyEsc,
	tcell.KeyTab:        keymap.KeyTab,
	tcell.KeyBackspace:  keymap.KeyBackspace,
	tcell.KeyBackspace2: keymap.KeyBackspace,
	tcell.KeyCtrlC:      keymap.KeyCtrlC,
}

// Tcell draws on a tcell screen. Events are read by a background goroutine
// into a buffered channel so PeekEvent never blocks.
type Tcell struct {
	screen tcell.Screen
	events chan Event
	quit   chan struct{}
	once   sync.Once
}

// OpenTerminal opens the controlling terminal
func OpenTerminal() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewTcell(screen)
}

// NewTcell initializes screen and starts reading its events. The caller must
// Close the returned backend to restore the terminal.
func NewTcell(screen tcell.Screen) (*Tcell, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Tcell{
		screen: screen,
		events: make(chan Event, eventBuffer),
		quit:   make(chan struct{}),
	}
	go t.read()
	return t, nil
}

func (t *Tcell) read() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		e := translate(ev)
		if e == nil {
			continue
		}
		select {
		case t.events <- e:
		case <-t.quit:
			return
		}
	}
}

func translate(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := ev.Position()
		return MouseEvent{X: x, Y: y, Buttons: int(ev.Buttons())}
	}
	return nil
}

func translateKey(ev *tcell.EventKey) Event {
	var mod Mod
	if ev.Modifiers()&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if ev.Key() == tcell.KeyRune {
		return KeyEvent{Key: keymap.KeyRune, Rune: ev.Rune(), Mod: mod}
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return KeyEvent{Key: k, Mod: mod}
	}
	return KeyEvent{Key: keymap.KeyNone, Mod: mod}
}

func tcellColor(c grid.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

func (t *Tcell) PollEvent() Event {
	ev, ok := <-t.events
	if !ok {
		return nil
	}
	return ev
}

func (t *Tcell) PeekEvent() Event {
	select {
	case ev, ok := <-t.events:
		if !ok {
			return nil
		}
		return ev
	default:
		return nil
	}
}

func (t *Tcell) SetCell(x, y int, r rune, fg, bg grid.Color) {
	style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Tcell) Flush() {
	t.screen.Show()
}

func (t *Tcell) Size() (int, int) {
	return t.screen.Size()
}

// Close restores the terminal. It is safe to call more than once.
func (t *Tcell) Close() {
	t.once.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}
