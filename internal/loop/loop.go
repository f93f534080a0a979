// Package loop drives a menu on a cell backend: it polls input, applies key
// bindings to the navigator and repaints only what changed.
package loop

import (
	"context"
	"errors"

	"listmenu/internal/backend"
	"listmenu/internal/eventbus"
	"listmenu/internal/grid"
	"listmenu/internal/keymap"
	"listmenu/internal/menu"
)

var (
	// ErrQuit is returned when the user pressed a key bound to Quit
	ErrQuit = errors.New("quit")
	// ErrBackendClosed is returned when the backend stopped delivering events
	ErrBackendClosed = errors.New("backend closed")
)

// Option configures Run
type Option func(*runner)

// WithHeader draws header above the list
func WithHeader(header *grid.Header) Option {
	return func(r *runner) { r.header = header }
}

// WithPalettes sets the row palettes
func WithPalettes(p grid.Palettes) Option {
	return func(r *runner) { r.renderer = grid.NewRenderer(p) }
}

// WithDefaultColors sets the colors painted for cells whose palette leaves
// the color unset
func WithDefaultColors(fg, bg grid.Color) Option {
	return func(r *runner) { r.defaultFg, r.defaultBg = fg, bg }
}

// WithContext closes the backend when ctx is done, and Run then returns the
// context error
func WithContext(ctx context.Context) Option {
	return func(r *runner) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// WithBus publishes viewport, redraw and session events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(r *runner) {
		if bus != nil {
			r.bus = bus
		}
	}
}

type runner struct {
	ctx       context.Context
	b         backend.Backend
	nav       *menu.Navigator
	bindings  keymap.Bindings
	renderer  *grid.Renderer
	header    *grid.Header
	defaultFg grid.Color
	defaultBg grid.Color
	bus       eventbus.EventBus

	width  int
	height int
	// last painted frame, nil until the first successful draw
	frame *grid.Grid
}

// outcome of handling one event
type outcome int

const (
	proceed outcome = iota
	redrawAll
	accepted
	quit
)

// Run shows nav on b until an Accept or Quit key, or until the context given
// with WithContext is done. It returns the element under the cursor on
// Accept and ErrQuit on Quit. Accept on an empty menu is ignored. Every event already queued when a batch starts is applied before
// the next frame is painted, so intermediate states are never drawn.
func Run(b backend.Backend, nav *menu.Navigator, bindings keymap.Bindings, opts ...Option) (string, error) {
	r := &runner{
		ctx:       context.Background(),
		b:         b,
		nav:       nav,
		bindings:  bindings,
		renderer:  grid.NewRenderer(grid.DefaultPalettes()),
		defaultFg: grid.ColorDefault,
		defaultBg: grid.ColorDefault,
		bus:       eventbus.NullBus{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bindings == nil {
		r.bindings = keymap.DefaultBindings()
	}
	// a blocked PollEvent only returns once the backend is closed
	stop := context.AfterFunc(r.ctx, b.Close)
	defer stop()

	r.resize(b.Size())
	r.draw(true)

	for {
		ev := b.PollEvent()
		if ev == nil {
			if err := r.ctx.Err(); err != nil {
				return "", err
			}
			return "", ErrBackendClosed
		}
		full := false
		for ; ev != nil; ev = b.PeekEvent() {
			switch r.handle(ev) {
			case redrawAll:
				full = true
			case accepted:
				sel, _ := nav.Selected()
				r.bus.Publish(eventbus.AcceptedEvent{Index: nav.Cursor(), Element: sel})
				return sel, nil
			case quit:
				r.bus.Publish(eventbus.QuitEvent{})
				return "", ErrQuit
			}
		}
		r.draw(full)
	}
}

func (r *runner) handle(ev backend.Event) outcome {
	switch ev := ev.(type) {
	case backend.ResizeEvent:
		r.resize(ev.Width, ev.Height)
		return redrawAll
	case backend.KeyEvent:
		action, ok := r.bindings.Lookup(ev.Stroke())
		if !ok {
			r.bus.Publish(eventbus.KeyUnboundEvent{Key: ev.Stroke().String()})
			return proceed
		}
		switch action {
		case keymap.Accept:
			if r.nav.Empty() {
				r.bus.Publish(eventbus.AcceptIgnoredEvent{Reason: menu.ErrEmptySelection.Error()})
				return proceed
			}
			return accepted
		case keymap.Quit:
			return quit
		}
		keymap.Apply(r.nav, action)
	}
	return proceed
}

// listHeight is the number of rows left for elements below the header
func (r *runner) listHeight() int {
	if r.header != nil {
		return max(1, r.height-1)
	}
	return max(1, r.height)
}

func (r *runner) resize(width, height int) {
	r.width, r.height = width, height
	// listHeight is at least 1, which Resize always accepts
	_ = r.nav.Resize(r.listHeight())
	r.bus.Publish(eventbus.ViewportResizedEvent{Width: width, Height: height})
}

func (r *runner) draw(full bool) {
	if r.width <= 0 || r.height <= 0 {
		// nothing to paint into; the next good frame must be complete
		r.frame = nil
		return
	}
	g, err := r.renderer.Render(r.nav, r.width, r.listHeight(), r.header)
	if err != nil {
		return
	}

	var rows []int
	if full || r.frame == nil {
		full = true
		rows = make([]int, g.Height())
		for i := range rows {
			rows[i] = i
		}
	} else {
		rows = grid.Diff(*r.frame, g)
	}
	r.frame = &g
	if len(rows) == 0 {
		return
	}

	for _, y := range rows {
		for x, c := range g.Rows[y].Cells {
			if c.Rune == 0 {
				continue
			}
			r.b.SetCell(x, y, c.Rune, c.Fg.Or(r.defaultFg), c.Bg.Or(r.defaultBg))
		}
	}
	r.b.Flush()
	r.bus.Publish(eventbus.RedrawEvent{Full: full, Rows: rows})
}
