package cli

import (
	"github.com/alexanderramin/repsheet/internal/grid"
	"github.com/charmbracelet/bubbles/key"
)

// editKeyMap holds the sheet editor's bindings. Navigation lives in Grid;
// every other key not bound here goes to the focused text field.
type editKeyMap struct {
	Grid grid.KeyMap

	Save        key.Binding
	Quit        key.Binding
	AddExercise key.Binding
	AddSet      key.Binding
	Delete      key.Binding
	AddCircuit  key.Binding
	AddMember   key.Binding
	AddGroup    key.Binding
	Rounds      key.Binding
	Notation    key.Binding
	NextSession key.Binding
	PrevSession key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Grid:        grid.DefaultKeyMap(),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+q", "ctrl+c"), key.WithHelp("esc", "save & quit")),
		AddExercise: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "exercise")),
		AddSet:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "set")),
		Delete:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "delete")),
		AddCircuit:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "circuit")),
		AddMember:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "add to circuit")),
		AddGroup:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "group")),
		Rounds:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rounds")),
		Notation:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "notation")),
		NextSession: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next day")),
		PrevSession: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev day")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return append(k.Grid.ShortHelp(),
		k.AddSet, k.AddExercise, k.Delete, k.AddCircuit, k.Notation,
		k.NextSession, k.Save, k.Quit,
	)
}
