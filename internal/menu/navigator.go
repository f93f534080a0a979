// Package menu holds the navigation state of a single flat list menu: the
// elements, the highlighted cursor, the wrap policy and the window of
// elements visible in a viewport of fixed height.
package menu

import (
	"errors"
	"fmt"

	"listmenu/internal/eventbus"
)

// NoSelection is the cursor value of a menu without elements
const NoSelection = -1

var (
	// ErrInvalidConfiguration is returned for a non-positive viewport height
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEmptySelection is returned when asking for the selected element of an empty menu
	ErrEmptySelection = errors.New("empty selection")
)

// Navigator owns the cursor and the visible window of a list of elements.
//
// After every exported call returns:
//   - 0 <= cursor < Len() when the list is non-empty
//   - windowStart <= cursor <= windowEnd
//   - the window spans exactly height elements, or the whole list when
//     Len() < height
type Navigator struct {
	elements    []string
	height      int
	cursor      int
	windowStart int
	wrap        bool
	bus         eventbus.EventBus
}

// Option configures a Navigator at construction
type Option func(*options)

type options struct {
	cursor int
	wrap   bool
	bus    eventbus.EventBus
}

// WithCursor sets the initially highlighted element. It is resolved with the
// same wrap or clamp policy as Goto.
func WithCursor(cursor int) Option {
	return func(o *options) { o.cursor = cursor }
}

// WithWrap selects between wrapping (true, the default) and clamping at the ends
func WithWrap(wrap bool) Option {
	return func(o *options) { o.wrap = wrap }
}

// WithBus publishes cursor and window changes on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(o *options) {
		if bus != nil {
			o.bus = bus
		}
	}
}

// New creates a navigator over elements for a viewport of the given height.
// The elements slice is copied.
func New(elements []string, height int, opts ...Option) (*Navigator, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: viewport height must be positive, got %d", ErrInvalidConfiguration, height)
	}

	o := options{wrap: true, bus: eventbus.NullBus{}}
	for _, opt := range opts {
		opt(&o)
	}

	n := &Navigator{
		elements: append([]string(nil), elements...),
		height:   height,
		wrap:     o.wrap,
		bus:      o.bus,
	}
	if n.Empty() {
		n.cursor = NoSelection
		return n, nil
	}
	n.cursor = n.resolve(o.cursor)
	n.follow()
	return n, nil
}

// Len returns the number of elements
func (n *Navigator) Len() int {
	return len(n.elements)
}

// Empty reports whether the menu has no elements
func (n *Navigator) Empty() bool {
	return len(n.elements) == 0
}

// Element returns the element at index i
func (n *Navigator) Element(i int) string {
	return n.elements[i]
}

// Elements returns a copy of the element list
func (n *Navigator) Elements() []string {
	return append([]string(nil), n.elements...)
}

// Cursor returns the highlighted index, or NoSelection for an empty menu
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Height returns the viewport height the window is computed against
func (n *Navigator) Height() int {
	return n.height
}

// Wrap reports whether relative moves cycle past the ends
func (n *Navigator) Wrap() bool {
	return n.wrap
}

// Window returns the inclusive range of visible element indexes.
// For an empty menu it returns (0, -1).
func (n *Navigator) Window() (start, end int) {
	return n.windowStart, n.windowStart + n.visibleCount() - 1
}

// Selected returns the highlighted element
func (n *Navigator) Selected() (string, error) {
	if n.Empty() {
		return "", ErrEmptySelection
	}
	return n.elements[n.cursor], nil
}

// Goto moves the cursor to target, wrapping or clamping out-of-range values,
// and scrolls the window by the minimum amount that keeps the cursor visible.
func (n *Navigator) Goto(target int) {
	if n.Empty() {
		return
	}
	n.setCursor(n.resolve(target))
}

// MoveBy moves the cursor delta elements relative to its current position
func (n *Navigator) MoveBy(delta int) {
	if n.Empty() {
		return
	}
	n.Goto(n.offset(delta))
}

// MoveUp moves the cursor one element up
func (n *Navigator) MoveUp() {
	n.MoveBy(-1)
}

// MoveDown moves the cursor one element down
func (n *Navigator) MoveDown() {
	n.MoveBy(1)
}

// GotoFirst jumps to the first element. The jump is absolute and never wraps.
func (n *Navigator) GotoFirst() {
	if n.Empty() {
		return
	}
	n.setCursor(0)
}

// GotoLast jumps to the last element. The jump is absolute and never wraps.
func (n *Navigator) GotoLast() {
	if n.Empty() {
		return
	}
	n.setCursor(len(n.elements) - 1)
}

// PageUp moves the cursor one viewport height up, stopping at the first element
func (n *Navigator) PageUp() {
	if n.Empty() {
		return
	}
	n.setCursor(n.saturate(-n.height))
}

// PageDown moves the cursor one viewport height down, stopping at the last element
func (n *Navigator) PageDown() {
	if n.Empty() {
		return
	}
	n.setCursor(n.saturate(n.height))
}

// Resize changes the viewport height and re-derives the window around the
// existing cursor.
func (n *Navigator) Resize(height int) error {
	if height <= 0 {
		return fmt.Errorf("%w: viewport height must be positive, got %d", ErrInvalidConfiguration, height)
	}
	if height == n.height {
		return nil
	}
	oldStart, oldEnd := n.Window()
	n.height = height
	if !n.Empty() {
		n.follow()
	}
	n.publishWindow(oldStart, oldEnd)
	return nil
}

func (n *Navigator) setCursor(cursor int) {
	if cursor == n.cursor {
		return
	}
	old := n.cursor
	oldStart, oldEnd := n.Window()

	n.cursor = cursor
	n.follow()

	n.bus.Publish(eventbus.CursorMovedEvent{OldIndex: old, NewIndex: n.cursor})
	n.publishWindow(oldStart, oldEnd)
}

func (n *Navigator) publishWindow(oldStart, oldEnd int) {
	start, end := n.Window()
	if start == oldStart && end == oldEnd {
		return
	}
	n.bus.Publish(eventbus.WindowChangedEvent{Start: start, End: end, Height: n.height})
}

// resolve applies the wrap or clamp policy to a raw target
func (n *Navigator) resolve(target int) int {
	if n.wrap {
		size := len(n.elements)
		return ((target % size) + size) % size
	}
	return n.clamp(target)
}

// offset returns a target delta elements from the cursor. The delta is
// reduced before it is added so extreme values cannot overflow.
func (n *Navigator) offset(delta int) int {
	if n.wrap {
		return n.cursor + delta%len(n.elements)
	}
	return n.saturate(delta)
}

// saturate moves delta elements from the cursor, stopping at either end
func (n *Navigator) saturate(delta int) int {
	last := len(n.elements) - 1
	switch {
	case delta > last-n.cursor:
		return last
	case delta < -n.cursor:
		return 0
	}
	return n.cursor + delta
}

func (n *Navigator) clamp(i int) int {
	return max(0, min(i, len(n.elements)-1))
}

// follow scrolls the window by the minimum amount that brings the cursor into
// view, then keeps the window inside the list.
func (n *Navigator) follow() {
	if n.cursor < n.windowStart {
		n.windowStart = n.cursor
	} else if n.cursor-n.windowStart > n.height-1 {
		n.windowStart = n.cursor - n.height + 1
	}
	maxStart := max(0, len(n.elements)-n.height)
	n.windowStart = max(0, min(n.windowStart, maxStart))
}

func (n *Navigator) visibleCount() int {
	return min(n.height, len(n.elements)-n.windowStart)
}
