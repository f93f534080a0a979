package backend

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"listmenu/internal/grid"
)

// Memory is a scripted backend. Each batch of events is delivered as one
// PollEvent followed by PeekEvents for the rest of the batch, the way a
// burst of typed keys arrives from a real terminal. PollEvent returns nil
// once the script is exhausted.
type Memory struct {
	mu      sync.Mutex
	wake    *sync.Cond
	hold    bool
	closed  bool
	batches [][]Event
	pending []Event
	width   int
	height  int
	cells   []grid.Cell
	flushes int
	painted int
}

// NewMemory creates a width by height backend delivering batches in order
func NewMemory(width, height int, batches ...[]Event) *Memory {
	m := &Memory{batches: batches}
	m.wake = sync.NewCond(&m.mu)
	m.resize(width, height)
	return m
}

func (m *Memory) resize(width, height int) {
	m.width, m.height = max(0, width), max(0, height)
	m.cells = make([]grid.Cell, m.width*m.height)
	for i := range m.cells {
		m.cells[i] = grid.Cell{Rune: ' ', Fg: grid.ColorDefault, Bg: grid.ColorDefault}
	}
}

// HoldOpen makes PollEvent wait for more batches instead of returning nil
// when the script runs out, the way a terminal waits for input. Close
// releases it.
func (m *Memory) HoldOpen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hold = true
}

// Push appends a batch to the script
func (m *Memory) Push(batch ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, batch)
	m.wake.Broadcast()
}

func (m *Memory) PollEvent() Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.pending) == 0 {
		if len(m.batches) == 0 {
			if !m.hold || m.closed {
				return nil
			}
			m.wake.Wait()
			continue
		}
		m.pending, m.batches = m.batches[0], m.batches[1:]
	}
	return m.next()
}

func (m *Memory) PeekEvent() Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil
	}
	return m.next()
}

func (m *Memory) next() Event {
	ev := m.pending[0]
	m.pending = m.pending[1:]
	if r, ok := ev.(ResizeEvent); ok {
		m.resize(r.Width, r.Height)
	}
	return ev
}

func (m *Memory) SetCell(x, y int, r rune, fg, bg grid.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.cells[y*m.width+x] = grid.Cell{Rune: r, Fg: fg, Bg: bg}
	if runewidth.RuneWidth(r) == 2 && x+1 < m.width {
		m.cells[y*m.width+x+1] = grid.Cell{Rune: 0, Fg: fg, Bg: bg}
	}
	m.painted++
}

func (m *Memory) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Close drops the rest of the script and wakes a waiting PollEvent
func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches, m.pending = nil, nil
	m.closed = true
	m.wake.Broadcast()
}

// Closed reports whether Close was called
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Cell returns the cell painted at x, y
func (m *Memory) Cell(x, y int) grid.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return grid.Cell{}
	}
	return m.cells[y*m.width+x]
}

// Line returns the text of row y, skipping wide-character continuations
func (m *Memory) Line(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	runes := make([]rune, 0, m.width)
	for _, c := range m.cells[y*m.width : (y+1)*m.width] {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// Flushes returns how many times Flush was called
func (m *Memory) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Painted returns how many cells were painted in total
func (m *Memory) Painted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.painted
}
