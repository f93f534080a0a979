package menu

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listmenu/internal/eventbus"
)

func elements(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%d", i)
	}
	return out
}

func window(t *testing.T, n *Navigator) [2]int {
	t.Helper()
	start, end := n.Window()
	return [2]int{start, end}
}

func requireInvariants(t *testing.T, n *Navigator) {
	t.Helper()
	start, end := n.Window()
	if n.Empty() {
		require.Equal(t, NoSelection, n.Cursor())
		return
	}
	require.GreaterOrEqual(t, n.Cursor(), 0)
	require.Less(t, n.Cursor(), n.Len())
	require.LessOrEqual(t, start, n.Cursor(), "window must contain cursor")
	require.GreaterOrEqual(t, end, n.Cursor(), "window must contain cursor")
	require.GreaterOrEqual(t, start, 0)
	require.Less(t, end, n.Len())
	require.Equal(t, min(n.Height(), n.Len()), end-start+1, "window size")
}

func TestNewRejectsNonPositiveHeight(t *testing.T) {
	for _, h := range []int{0, -1} {
		_, err := New(elements(3), h)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestNewDefaults(t *testing.T) {
	n, err := New(elements(5), 3)
	require.NoError(t, err)

	assert.Equal(t, 0, n.Cursor())
	assert.True(t, n.Wrap(), "wrap is the default policy")
	assert.Equal(t, [2]int{0, 2}, window(t, n))
}

func TestNewCopiesElements(t *testing.T) {
	src := []string{"a", "b"}
	n, err := New(src, 2)
	require.NoError(t, err)

	src[0] = "changed"
	assert.Equal(t, "a", n.Element(0))
}

func TestNewResolvesInitialCursor(t *testing.T) {
	n, err := New(elements(20), 5, WithCursor(12))
	require.NoError(t, err)
	assert.Equal(t, 12, n.Cursor())
	assert.Equal(t, [2]int{8, 12}, window(t, n))

	n, err = New(elements(5), 2, WithCursor(-1))
	require.NoError(t, err)
	assert.Equal(t, 4, n.Cursor(), "wrap resolves -1 to the last element")

	n, err = New(elements(5), 2, WithCursor(99), WithWrap(false))
	require.NoError(t, err)
	assert.Equal(t, 4, n.Cursor(), "clamp resolves past-the-end to the last element")
	requireInvariants(t, n)
}

func TestEmptyMenu(t *testing.T) {
	n, err := New(nil, 4)
	require.NoError(t, err)

	assert.True(t, n.Empty())
	assert.Equal(t, NoSelection, n.Cursor())
	assert.Equal(t, [2]int{0, -1}, window(t, n))

	n.MoveDown()
	n.MoveUp()
	n.Goto(3)
	n.GotoFirst()
	n.GotoLast()
	n.PageDown()
	n.PageUp()
	require.NoError(t, n.Resize(2))
	assert.Equal(t, NoSelection, n.Cursor())

	_, err = n.Selected()
	require.ErrorIs(t, err, ErrEmptySelection)
}

func TestWrapLaw(t *testing.T) {
	n, err := New(elements(5), 3)
	require.NoError(t, err)

	n.MoveUp()
	assert.Equal(t, 4, n.Cursor())
	assert.Equal(t, [2]int{2, 4}, window(t, n))

	n.MoveDown()
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, [2]int{0, 2}, window(t, n))
}

func TestWrapResolutionIsModulo(t *testing.T) {
	n, err := New(elements(5), 5)
	require.NoError(t, err)

	cases := map[int]int{-1: 4, 5: 0, -6: 4, 12: 2, -10: 0, 3: 3}
	for target, want := range cases {
		n.Goto(target)
		assert.Equal(t, want, n.Cursor(), "goto(%d)", target)
	}
}

func TestClampLaw(t *testing.T) {
	n, err := New(elements(5), 3, WithWrap(false))
	require.NoError(t, err)

	n.MoveUp()
	assert.Equal(t, 0, n.Cursor())

	n.Goto(4)
	n.MoveDown()
	assert.Equal(t, 4, n.Cursor())

	n.Goto(-100)
	assert.Equal(t, 0, n.Cursor())
	n.Goto(100)
	assert.Equal(t, 4, n.Cursor())
}

func TestExtremeDeltasClampToNearEnd(t *testing.T) {
	n, err := New(elements(5), 2, WithWrap(false), WithCursor(1))
	require.NoError(t, err)

	n.MoveBy(math.MaxInt)
	assert.Equal(t, 4, n.Cursor())
	n.MoveBy(math.MaxInt)
	assert.Equal(t, 4, n.Cursor())

	n.MoveBy(math.MinInt)
	assert.Equal(t, 0, n.Cursor())
	n.MoveBy(math.MinInt)
	assert.Equal(t, 0, n.Cursor())
	requireInvariants(t, n)
}

func TestExtremeDeltasWrapByModulo(t *testing.T) {
	n, err := New(elements(5), 2, WithCursor(1))
	require.NoError(t, err)

	// MaxInt % 5 == 2
	n.MoveBy(math.MaxInt)
	assert.Equal(t, 3, n.Cursor())

	// MinInt % 5 == -3
	n.MoveBy(math.MinInt)
	assert.Equal(t, 0, n.Cursor())
	requireInvariants(t, n)
}

func TestPagingWithHugeViewport(t *testing.T) {
	n, err := New(elements(5), 2, WithCursor(2))
	require.NoError(t, err)
	require.NoError(t, n.Resize(math.MaxInt))

	n.PageDown()
	assert.Equal(t, 4, n.Cursor())
	n.PageUp()
	assert.Equal(t, 0, n.Cursor())
	requireInvariants(t, n)
}

func TestMinimalScroll(t *testing.T) {
	n, err := New(elements(100), 10)
	require.NoError(t, err)

	n.Goto(9)
	assert.Equal(t, [2]int{0, 9}, window(t, n))

	n.Goto(10)
	assert.Equal(t, [2]int{1, 10}, window(t, n), "scroll by exactly one")

	n.Goto(5)
	assert.Equal(t, [2]int{1, 10}, window(t, n), "cursor inside window leaves it alone")

	n.Goto(0)
	assert.Equal(t, [2]int{0, 9}, window(t, n))

	n.Goto(50)
	assert.Equal(t, [2]int{41, 50}, window(t, n))
	n.Goto(30)
	assert.Equal(t, [2]int{30, 39}, window(t, n))
}

func TestHomeEndAreAbsoluteUnderWrap(t *testing.T) {
	n, err := New(elements(30), 10)
	require.NoError(t, err)

	n.GotoLast()
	assert.Equal(t, 29, n.Cursor())
	assert.Equal(t, [2]int{20, 29}, window(t, n))

	n.GotoLast()
	assert.Equal(t, 29, n.Cursor(), "a second End does not wrap")

	n.GotoFirst()
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, [2]int{0, 9}, window(t, n))
}

func TestPagingClamps(t *testing.T) {
	n, err := New(elements(25), 10)
	require.NoError(t, err)

	n.PageDown()
	assert.Equal(t, 10, n.Cursor())
	n.PageDown()
	assert.Equal(t, 20, n.Cursor())
	n.PageDown()
	assert.Equal(t, 24, n.Cursor(), "page down stops at the last element even with wrap")
	assert.Equal(t, [2]int{15, 24}, window(t, n))

	n.PageUp()
	assert.Equal(t, 14, n.Cursor())
	n.PageUp()
	n.PageUp()
	assert.Equal(t, 0, n.Cursor())
}

func TestEndToEndScenario(t *testing.T) {
	n, err := New([]string{"a", "b", "c"}, 2, WithWrap(false))
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, [2]int{0, 1}, window(t, n))

	n.MoveDown()
	assert.Equal(t, 1, n.Cursor())
	assert.Equal(t, [2]int{0, 1}, window(t, n))

	n.MoveDown()
	assert.Equal(t, 2, n.Cursor())
	assert.Equal(t, [2]int{1, 2}, window(t, n))

	n.MoveDown()
	assert.Equal(t, 2, n.Cursor())
	assert.Equal(t, [2]int{1, 2}, window(t, n))

	n.GotoFirst()
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, [2]int{0, 1}, window(t, n))

	selected, err := n.Selected()
	require.NoError(t, err)
	assert.Equal(t, "a", selected)
}

func TestShortListWindowCoversWholeList(t *testing.T) {
	n, err := New(elements(3), 10)
	require.NoError(t, err)

	n.GotoLast()
	assert.Equal(t, [2]int{0, 2}, window(t, n))
	n.MoveDown()
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, [2]int{0, 2}, window(t, n))
}

func TestSingleElement(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		n, err := New([]string{"only"}, 3, WithWrap(wrap))
		require.NoError(t, err)

		n.MoveDown()
		n.MoveUp()
		n.Goto(7)
		assert.Equal(t, 0, n.Cursor())
		assert.Equal(t, [2]int{0, 0}, window(t, n))
	}
}

func TestResize(t *testing.T) {
	t.Run("shrink keeps cursor visible", func(t *testing.T) {
		n, err := New(elements(100), 10)
		require.NoError(t, err)
		n.Goto(9)

		require.NoError(t, n.Resize(5))
		assert.Equal(t, 9, n.Cursor())
		assert.Equal(t, [2]int{5, 9}, window(t, n))
	})

	t.Run("grow near the end pulls window back", func(t *testing.T) {
		n, err := New(elements(100), 10)
		require.NoError(t, err)
		n.Goto(95)
		require.Equal(t, [2]int{86, 95}, window(t, n))

		require.NoError(t, n.Resize(20))
		assert.Equal(t, 95, n.Cursor())
		assert.Equal(t, [2]int{80, 99}, window(t, n), "no trailing blanks while content above is hidden")
	})

	t.Run("grow past list length", func(t *testing.T) {
		n, err := New(elements(8), 4)
		require.NoError(t, err)
		n.GotoLast()

		require.NoError(t, n.Resize(30))
		assert.Equal(t, [2]int{0, 7}, window(t, n))
	})

	t.Run("invalid height leaves state alone", func(t *testing.T) {
		n, err := New(elements(10), 4)
		require.NoError(t, err)
		n.Goto(6)
		before := window(t, n)

		require.ErrorIs(t, n.Resize(0), ErrInvalidConfiguration)
		assert.Equal(t, 4, n.Height())
		assert.Equal(t, before, window(t, n))
	})
}

func TestInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{1, 2, 3, 7, 10, 11, 50} {
		for _, wrap := range []bool{true, false} {
			n, err := New(elements(size), 1+rng.Intn(12), WithWrap(wrap))
			require.NoError(t, err)

			for step := 0; step < 500; step++ {
				switch rng.Intn(8) {
				case 0:
					n.MoveUp()
				case 1:
					n.MoveDown()
				case 2:
					n.MoveBy(rng.Intn(41) - 20)
				case 3:
					n.Goto(rng.Intn(3*size+1) - size)
				case 4:
					n.GotoFirst()
				case 5:
					n.GotoLast()
				case 6:
					if rng.Intn(2) == 0 {
						n.PageUp()
					} else {
						n.PageDown()
					}
				case 7:
					require.NoError(t, n.Resize(1+rng.Intn(15)))
				}
				requireInvariants(t, n)
			}
		}
	}
}

func TestMoveNeverScrollsMoreThanNeeded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n, err := New(elements(60), 8, WithWrap(false))
	require.NoError(t, err)

	for step := 0; step < 300; step++ {
		before := window(t, n)
		if rng.Intn(2) == 0 {
			n.MoveUp()
		} else {
			n.MoveDown()
		}
		after := window(t, n)
		shift := after[0] - before[0]
		assert.LessOrEqual(t, shift, 1)
		assert.GreaterOrEqual(t, shift, -1)
	}
}

func TestPublishesCursorAndWindowEvents(t *testing.T) {
	bus := eventbus.New()
	var got []eventbus.DomainEvent
	bus.SubscribeAll(func(e eventbus.DomainEvent) { got = append(got, e) })

	n, err := New(elements(5), 2, WithBus(bus))
	require.NoError(t, err)
	require.Empty(t, got, "construction is silent")

	n.MoveDown()
	require.Equal(t, []eventbus.DomainEvent{
		eventbus.CursorMovedEvent{OldIndex: 0, NewIndex: 1},
	}, got)

	got = nil
	n.MoveDown()
	require.Equal(t, []eventbus.DomainEvent{
		eventbus.CursorMovedEvent{OldIndex: 1, NewIndex: 2},
		eventbus.WindowChangedEvent{Start: 1, End: 2, Height: 2},
	}, got)

	got = nil
	n.Goto(2)
	assert.Empty(t, got, "no-op goto publishes nothing")

	require.NoError(t, n.Resize(5))
	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.WindowChangedEvent{Start: 0, End: 4, Height: 5},
	}, got)
}
