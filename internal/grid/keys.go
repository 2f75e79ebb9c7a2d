package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds keys to navigation. Tab and Shift+Tab alias right and left;
// Enter and Shift+Enter alias down and up. Alt+Enter also moves up, since
// terminals report Shift+Enter as plain Enter.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Enter      key.Binding
	ShiftEnter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		ShiftTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev cell")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "down")),
		ShiftEnter: key.NewBinding(key.WithKeys("shift+enter", "alt+enter"), key.WithHelp("alt+enter", "up")),
	}
}

// Caret is the cursor position inside the focused text field.
type Caret struct {
	Pos int
	Len int
}

// Direction maps a key press to a navigation direction. Left and right
// arrows only navigate when the caret already sits at the matching end of
// the field, so in-field cursor movement keeps working.
func (k KeyMap) Direction(msg tea.KeyMsg, caret Caret) (Direction, bool) {
	switch {
	case key.Matches(msg, k.Tab):
		return Right, true
	case key.Matches(msg, k.ShiftTab):
		return Left, true
	case key.Matches(msg, k.ShiftEnter):
		return Up, true
	case key.Matches(msg, k.Enter):
		return Down, true
	case key.Matches(msg, k.Up):
		return Up, true
	case key.Matches(msg, k.Down):
		return Down, true
	case key.Matches(msg, k.Left):
		return Left, caret.Pos <= 0
	case key.Matches(msg, k.Right):
		return Right, caret.Pos >= caret.Len
	}
	return 0, false
}

// ShortHelp lists the navigation bindings for a help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.ShiftTab, k.Enter, k.Up, k.Down}
}
