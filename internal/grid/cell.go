package grid

// CellProps is what a cell view is given to render: its value, where it
// sits, and whether it holds focus.
type CellProps struct {
	Coord       Coord
	Value       string
	Placeholder string
	Focused     bool
}

// CellEvent is emitted by a cell view. It is one of ValueChanged or
// NavigateIntent.
type CellEvent interface {
	cellEvent()
}

// ValueChanged carries the committed text of a cell.
type ValueChanged struct {
	Coord Coord
	Value string
}

// NavigateIntent asks to move focus away from a cell.
type NavigateIntent struct {
	From      Coord
	Direction Direction
}

func (ValueChanged) cellEvent()   {}
func (NavigateIntent) cellEvent() {}
