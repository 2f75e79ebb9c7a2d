// Package grid addresses the cells of a session sheet and computes focus
// moves between them.
package grid

import "fmt"

type Column string

const (
	ColName      Column = "name"
	ColNotes     Column = "notes"
	ColReps      Column = "reps"
	ColWeight    Column = "weight"
	ColIntensity Column = "intensity"
	ColRest      Column = "rest"
)

var (
	ExerciseColumns = []Column{ColName, ColNotes}
	SetColumns      = []Column{ColReps, ColWeight, ColIntensity, ColRest}
)

// NoSet marks a coordinate on the exercise row itself.
const NoSet = -1

// Coord addresses one cell. SetIndex is NoSet for exercise-row cells.
type Coord struct {
	ExerciseID string
	Column     Column
	SetIndex   int
}

func ExerciseCell(exerciseID string, col Column) Coord {
	return Coord{ExerciseID: exerciseID, Column: col, SetIndex: NoSet}
}

func SetCell(exerciseID string, setIndex int, col Column) Coord {
	return Coord{ExerciseID: exerciseID, Column: col, SetIndex: setIndex}
}

// IsSet reports whether c addresses a set row.
func (c Coord) IsSet() bool {
	return c.SetIndex >= 0
}

func (c Coord) String() string {
	if !c.IsSet() {
		return fmt.Sprintf("%s/%s", c.ExerciseID, c.Column)
	}
	return fmt.Sprintf("%s/%d/%s", c.ExerciseID, c.SetIndex, c.Column)
}

func (c Coord) columns() []Column {
	if c.IsSet() {
		return SetColumns
	}
	return ExerciseColumns
}

// columnIndex returns the position of c.Column in its row, or -1.
func (c Coord) columnIndex() int {
	for i, col := range c.columns() {
		if col == c.Column {
			return i
		}
	}
	return -1
}

// IsSetColumn reports whether col belongs to set rows.
func IsSetColumn(col Column) bool {
	for _, c := range SetColumns {
		if c == col {
			return true
		}
	}
	return false
}
