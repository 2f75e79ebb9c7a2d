package grid

import "fmt"

// Controller owns the single focused cell of a sheet.
type Controller struct {
	focus   Coord
	focused bool
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Focus(coord Coord) {
	c.focus = coord
	c.focused = true
}

// Focused returns the focused cell, if any.
func (c *Controller) Focused() (Coord, bool) {
	return c.focus, c.focused
}

func (c *Controller) Blur() {
	c.focus = Coord{}
	c.focused = false
}

// ExtendFunc appends an exercise to the sheet and returns its id. It must
// have finished mutating the sheet when it returns.
type ExtendFunc func() (string, error)

// Move shifts focus one cell in dir. Without focus, the first cell of the
// sheet is focused. A move that runs past the end of the sheet calls extend
// and focuses the new row; a nil extend keeps focus where it is.
func (c *Controller) Move(sheet Sheet, dir Direction, extend ExtendFunc) (Coord, error) {
	if !c.focused {
		c.Reconcile(sheet)
		return c.focus, nil
	}
	tr, ok := Next(sheet, c.focus, dir)
	if !ok {
		c.Reconcile(sheet)
		return c.focus, nil
	}
	if tr.Extend {
		if extend == nil {
			return c.focus, nil
		}
		id, err := extend()
		if err != nil {
			return c.focus, fmt.Errorf("extending sheet: %w", err)
		}
		tr.To.ExerciseID = id
	}
	c.Focus(tr.To)
	return c.focus, nil
}

// Reconcile pulls focus back onto a cell that exists after the sheet
// changed underneath it. Focus on a removed exercise goes to the first row;
// a removed set falls back to the last remaining set or the exercise row.
func (c *Controller) Reconcile(sheet Sheet) {
	rows := sheet.Rows()
	if len(rows) == 0 {
		c.Blur()
		return
	}
	if !c.focused || indexOf(rows, c.focus.ExerciseID) < 0 {
		c.Focus(ExerciseCell(rows[0], ColName))
		return
	}
	if c.focus.IsSet() {
		n := sheet.SetCount(c.focus.ExerciseID)
		switch {
		case n == 0:
			c.Focus(ExerciseCell(c.focus.ExerciseID, ColName))
		case c.focus.SetIndex >= n:
			c.Focus(SetCell(c.focus.ExerciseID, n-1, c.focus.Column))
		}
	}
}
