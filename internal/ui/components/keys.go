package components

import (
	"fmt"

	"charm.land/bubbles/v2/key"
)

// KeyMap lists the bindings shared by the practice screens.
type KeyMap struct {
	Flip    key.Binding
	Knew    key.Binding
	Forgot  key.Binding
	Up      key.Binding
	Down    key.Binding
	Choose  key.Binding
	Insight key.Binding
	Quit    key.Binding
	Yes     key.Binding
	No      key.Binding
}

// Keys is the default KeyMap.
var Keys = KeyMap{
	Flip:    key.NewBinding(key.WithKeys("space", " ", "enter"), key.WithHelp("Space", "Flip")),
	Knew:    key.NewBinding(key.WithKeys("y", "right", "l"), key.WithHelp("Y/→", "Knew it")),
	Forgot:  key.NewBinding(key.WithKeys("n", "left", "h"), key.WithHelp("N/←", "Forgot")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Choose:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Answer")),
	Insight: key.NewBinding(key.WithKeys("i"), key.WithHelp("I", "AI insight")),
	Quit:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Quit")),
	Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Finish & save")),
	No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep going")),
}

// OptionIndex maps the keys 1-9 and a-i to an option index. It returns -1
// for any other key or an index outside n.
func OptionIndex(k string, n int) int {
	if len(k) != 1 {
		return -1
	}
	var i int
	switch c := k[0]; {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'i':
		i = int(c - 'a')
	default:
		return -1
	}
	if i >= n {
		return -1
	}
	return i
}

// ConfirmQuit renders the prompt shown when a session is left early.
func ConfirmQuit(answered int) string {
	return fmt.Sprintf("End the session now? %d answered word(s) will be saved.\n\n[Y] Finish & save    [N] Keep going", answered)
}
