package grid

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Sheet is the live shape of a session as navigation sees it. Rows are
// exercise ids in render order.
type Sheet interface {
	Rows() []string
	SetCount(exerciseID string) int
}

// Transition is the outcome of a move. When Extend is set, the move lands on
// a row that does not exist yet: the caller appends an exercise and focuses
// To with the new exercise's id.
type Transition struct {
	To     Coord
	Extend bool
}

// Next computes where a move from `from` lands. It reports false when from
// does not address a cell of sheet.
func Next(sheet Sheet, from Coord, dir Direction) (Transition, bool) {
	rows := sheet.Rows()
	row := indexOf(rows, from.ExerciseID)
	col := from.columnIndex()
	if row < 0 || col < 0 {
		return Transition{}, false
	}
	if from.IsSet() {
		if from.SetIndex >= sheet.SetCount(from.ExerciseID) {
			return Transition{}, false
		}
		return nextFromSet(sheet, rows, row, col, from, dir), true
	}
	return nextFromExercise(sheet, rows, row, col, from, dir), true
}

func nextFromExercise(sheet Sheet, rows []string, row, col int, from Coord, dir Direction) Transition {
	last := row == len(rows)-1
	stay := Transition{To: from}

	switch dir {
	case Left:
		if col == 0 {
			return stay
		}
		return Transition{To: ExerciseCell(from.ExerciseID, ExerciseColumns[col-1])}
	case Right:
		if col == len(ExerciseColumns)-1 {
			return stay
		}
		return Transition{To: ExerciseCell(from.ExerciseID, ExerciseColumns[col+1])}
	case Up:
		if row == 0 {
			return stay
		}
		return Transition{To: ExerciseCell(rows[row-1], from.Column)}
	case Down:
		if !last {
			return Transition{To: ExerciseCell(rows[row+1], from.Column)}
		}
		if from.Column == ColNotes {
			return Transition{To: ExerciseCell("", ColName), Extend: true}
		}
		if sheet.SetCount(from.ExerciseID) > 0 {
			return Transition{To: SetCell(from.ExerciseID, 0, SetColumns[0])}
		}
		return stay
	}
	return stay
}

func nextFromSet(sheet Sheet, rows []string, row, col int, from Coord, dir Direction) Transition {
	id, k := from.ExerciseID, from.SetIndex
	count := sheet.SetCount(id)
	lastCol := len(SetColumns) - 1
	stay := Transition{To: from}

	switch dir {
	case Left:
		switch {
		case col > 0:
			return Transition{To: SetCell(id, k, SetColumns[col-1])}
		case k > 0:
			return Transition{To: SetCell(id, k-1, SetColumns[lastCol])}
		default:
			return Transition{To: ExerciseCell(id, ColName)}
		}
	case Right:
		switch {
		case col < lastCol:
			return Transition{To: SetCell(id, k, SetColumns[col+1])}
		case k < count-1:
			return Transition{To: SetCell(id, k+1, SetColumns[0])}
		default:
			return Transition{To: ExerciseCell(id, ColNotes)}
		}
	case Up:
		if k > 0 {
			return Transition{To: SetCell(id, k-1, from.Column)}
		}
		for r := row - 1; r >= 0; r-- {
			if n := sheet.SetCount(rows[r]); n > 0 {
				return Transition{To: SetCell(rows[r], n-1, from.Column)}
			}
		}
		return Transition{To: ExerciseCell(id, ColName)}
	case Down:
		if k < count-1 {
			return Transition{To: SetCell(id, k+1, from.Column)}
		}
		for r := row + 1; r < len(rows); r++ {
			if sheet.SetCount(rows[r]) > 0 {
				return Transition{To: SetCell(rows[r], 0, from.Column)}
			}
		}
		if col == lastCol {
			return Transition{To: SetCell("", 0, SetColumns[0]), Extend: true}
		}
		return stay
	}
	return stay
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
