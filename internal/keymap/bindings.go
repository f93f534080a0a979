package keymap

import (
	"errors"
	"fmt"
	"sort"

	"listmenu/internal/menu"
)

// ErrUnknownAction is returned when an action name cannot be parsed
var ErrUnknownAction = errors.New("unknown action")

// Action is something a key press asks the menu to do
type Action string

const (
	MoveUp    Action = "move_up"
	MoveDown  Action = "move_down"
	PageUp    Action = "page_up"
	PageDown  Action = "page_down"
	GotoFirst Action = "goto_first"
	GotoLast  Action = "goto_last"
	Accept    Action = "accept"
	Quit      Action = "quit"
)

// Actions lists every action in display order
var Actions = []Action{MoveUp, MoveDown, PageUp, PageDown, GotoFirst, GotoLast, Accept, Quit}

// ParseAction parses an action name such as "move_down"
func ParseAction(name string) (Action, error) {
	for _, a := range Actions {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Bindings maps strokes to actions
type Bindings map[Stroke]Action

// DefaultBindings returns the built-in key map
func DefaultBindings() Bindings {
	return Bindings{
		Special(KeyUp):    MoveUp,
		Char('k'):         MoveUp,
		Special(KeyDown):  MoveDown,
		Char('j'):         MoveDown,
		Special(KeyPgUp):  PageUp,
		Special(KeyPgDn):  PageDown,
		Special(KeyHome):  GotoFirst,
		Char('g'):         GotoFirst,
		Special(KeyEnd):   GotoLast,
		Char('G'):         GotoLast,
		Special(KeyEnter): Accept,
		Special(KeyEsc):   Quit,
		Special(KeyCtrlC): Quit,
	}
}

// FromNames builds bindings from an action name to key names table, as found
// in the [keys] section of the config file. Actions not named keep their
// default keys.
func FromNames(names map[string][]string) (Bindings, error) {
	b := DefaultBindings()
	for actionName, keys := range names {
		action, err := ParseAction(actionName)
		if err != nil {
			return nil, err
		}
		for s, a := range b {
			if a == action {
				delete(b, s)
			}
		}
		for _, k := range keys {
			s, err := ParseStroke(k)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", actionName, err)
			}
			b[s] = action
		}
	}
	return b, nil
}

// Lookup returns the action bound to s
func (b Bindings) Lookup(s Stroke) (Action, bool) {
	a, ok := b[s]
	return a, ok
}

// Keys returns the names of the strokes bound to a, sorted
func (b Bindings) Keys(a Action) []string {
	var keys []string
	for s, bound := range b {
		if bound == a {
			keys = append(keys, s.String())
		}
	}
	sort.Strings(keys)
	return keys
}

// Names is the inverse of FromNames
func (b Bindings) Names() map[string][]string {
	names := make(map[string][]string, len(Actions))
	for _, a := range Actions {
		if keys := b.Keys(a); len(keys) > 0 {
			names[string(a)] = keys
		}
	}
	return names
}

// Apply performs a navigation action on nav. It reports false for actions
// that do not move the cursor (Accept and Quit), which the caller handles.
func Apply(nav *menu.Navigator, a Action) bool {
	switch a {
	case MoveUp:
		nav.MoveUp()
	case MoveDown:
		nav.MoveDown()
	case PageUp:
		nav.PageUp()
	case PageDown:
		nav.PageDown()
	case GotoFirst:
		nav.GotoFirst()
	case GotoLast:
		nav.GotoLast()
	default:
		return false
	}
	return true
}
