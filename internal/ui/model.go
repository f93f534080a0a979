// Package ui is the bubbletea frontend of the menu. It shares the navigator,
// renderer and key bindings with the cell loop and restyles only the rows
// that changed between frames.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"listmenu/internal/eventbus"
	"listmenu/internal/grid"
	"listmenu/internal/keymap"
	"listmenu/internal/loop"
	"listmenu/internal/menu"
)

// Option configures a Model
type Option func(*Model)

// WithHeader draws header above the list
func WithHeader(header *grid.Header) Option {
	return func(m *Model) { m.header = header }
}

// WithPalettes sets the row palettes
func WithPalettes(p grid.Palettes) Option {
	return func(m *Model) { m.renderer = grid.NewRenderer(p) }
}

// WithDefaultColors sets the colors used where a palette leaves them unset
func WithDefaultColors(fg, bg grid.Color) Option {
	return func(m *Model) { m.styles = NewStyles(fg, bg) }
}

// WithBus publishes viewport, redraw and session events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(m *Model) {
		if bus != nil {
			m.bus = bus
		}
	}
}

// Model is a tea.Model showing a navigator
type Model struct {
	nav      *menu.Navigator
	renderer *grid.Renderer
	header   *grid.Header
	keys     keyMap
	styles   *Styles
	bus      eventbus.EventBus

	width  int
	height int
	frame  *grid.Grid
	lines  []string

	selected string
	accepted bool
	quit     bool
}

// NewModel creates a model over nav using bindings, or the default bindings
// when bindings is nil
func NewModel(nav *menu.Navigator, bindings keymap.Bindings, opts ...Option) *Model {
	if bindings == nil {
		bindings = keymap.DefaultBindings()
	}
	m := &Model{
		nav:      nav,
		renderer: grid.NewRenderer(grid.DefaultPalettes()),
		keys:     newKeyMap(bindings),
		styles:   NewStyles(grid.ColorDefault, grid.ColorDefault),
		bus:      eventbus.NullBus{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_ = m.nav.Resize(m.listHeight())
		m.bus.Publish(eventbus.ViewportResizedEvent{Width: msg.Width, Height: msg.Height})
		m.frame = nil
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		action, ok := m.keys.lookup(msg)
		if !ok {
			m.bus.Publish(eventbus.KeyUnboundEvent{Key: msg.String()})
			return m, nil
		}
		switch action {
		case keymap.Accept:
			sel, err := m.nav.Selected()
			if err != nil {
				m.bus.Publish(eventbus.AcceptIgnoredEvent{Reason: err.Error()})
				return m, nil
			}
			m.selected, m.accepted = sel, true
			m.bus.Publish(eventbus.AcceptedEvent{Index: m.nav.Cursor(), Element: sel})
			return m, tea.Quit
		case keymap.Quit:
			m.quit = true
			m.bus.Publish(eventbus.QuitEvent{})
			return m, tea.Quit
		}
		keymap.Apply(m.nav, action)
		m.refresh()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.accepted || m.quit {
		return ""
	}
	// like the cell loop, rows below the terminal are dropped and the header stays
	lines := m.lines
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

// Selected returns the accepted element and whether one was accepted
func (m *Model) Selected() (string, bool) {
	return m.selected, m.accepted
}

// Quit reports whether the session ended on a quit key
func (m *Model) Quit() bool {
	return m.quit
}

func (m *Model) listHeight() int {
	if m.header != nil {
		return max(1, m.height-1)
	}
	return max(1, m.height)
}

// refresh renders the navigator and restyles the rows that changed
func (m *Model) refresh() {
	if m.width <= 0 || m.height <= 0 {
		m.frame, m.lines = nil, nil
		return
	}
	g, err := m.renderer.Render(m.nav, m.width, m.listHeight(), m.header)
	if err != nil {
		return
	}

	full := m.frame == nil || len(m.lines) != g.Height()
	var rows []int
	if full {
		m.lines = make([]string, g.Height())
		rows = make([]int, g.Height())
		for i := range rows {
			rows[i] = i
		}
	} else {
		rows = grid.Diff(*m.frame, g)
	}
	for _, y := range rows {
		m.lines[y] = m.styles.Row(g.Rows[y])
	}
	m.frame = &g
	if len(rows) > 0 {
		m.bus.Publish(eventbus.RedrawEvent{Full: full, Rows: rows})
	}
}

// Run runs m as a full-screen program drawing on stderr, so the selection
// printed on stdout can be captured by the caller. It returns loop.ErrQuit
// when the user quit.
func Run(m *Model, opts ...tea.ProgramOption) (string, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", loop.ErrQuit
		}
		return "", fmt.Errorf("run menu: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("run menu: unexpected model %T", final)
	}
	if sel, ok := fm.Selected(); ok {
		return sel, nil
	}
	return "", loop.ErrQuit
}
