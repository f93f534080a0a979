package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"listmenu/internal/keymap"
)

// keyMap holds one binding per action, built from keymap bindings so both
// frontends honour the same [keys] configuration
type keyMap map[keymap.Action]key.Binding

var actionHelp = map[keymap.Action]string{
	keymap.MoveUp:    "up",
	keymap.MoveDown:  "down",
	keymap.PageUp:    "page up",
	keymap.PageDown:  "page down",
	keymap.GotoFirst: "first",
	keymap.GotoLast:  "last",
	keymap.Accept:    "select",
	keymap.Quit:      "quit",
}

func newKeyMap(b keymap.Bindings) keyMap {
	km := make(keyMap, len(keymap.Actions))
	for _, a := range keymap.Actions {
		keys := b.Keys(a)
		if len(keys) == 0 {
			continue
		}
		km[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], actionHelp[a]),
		)
	}
	return km
}

func (km keyMap) lookup(msg tea.KeyMsg) (keymap.Action, bool) {
	for _, a := range keymap.Actions {
		if b, ok := km[a]; ok && key.Matches(msg, b) {
			return a, true
		}
	}
	return "", false
}
