package cli

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/editor"
	"github.com/alexanderramin/repsheet/internal/grid"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Cell widths of the sheet, in terminal columns.
const (
	nameWidth  = 26
	notesWidth = 24
	setWidth   = 12
)

var (
	cellStyle        = lipgloss.NewStyle().PaddingRight(1)
	focusedCellStyle = lipgloss.NewStyle().PaddingRight(1).Underline(true)
	circuitRowStyle  = formatter.StylePurple.Bold(true)
	groupRowStyle    = formatter.StyleBlue.Bold(true)
)

// editModel is the sheet editor. It shows one session at a time and keeps
// one text field on the focused cell; leaving the cell commits its text.
type editModel struct {
	ctx  context.Context
	app  *App
	ed   *editor.Editor
	keys editKeyMap

	input    textinput.Model
	editing  grid.Coord
	hasCell  bool
	original string

	picker   *huh.Form
	onPicked func() error
	pickStr  string
	notation notationChoice

	status    string
	warning   bool
	dirty     bool
	quitting  bool
	forceQuit bool
	width     int
	height    int
}

// newEditModel opens the editor on sessionID, or on the active session when
// it is empty. Engine warnings go to the status line.
func newEditModel(ctx context.Context, app *App, e *program.Engine, sessionID string) (*editModel, error) {
	m := &editModel{
		ctx:  ctx,
		app:  app,
		keys: defaultEditKeyMap(),
	}
	e.SetNotifier(program.NotifierFunc(m.warn))

	ed, err := editor.New(e, sessionID)
	if err != nil {
		return nil, err
	}
	m.ed = ed

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.TextStyle = lipgloss.NewStyle().Foreground(formatter.ColorYellow)
	ti.PlaceholderStyle = formatter.StyleDim
	ti.Focus()
	m.input = ti

	m.load()
	return m, nil
}

func (m *editModel) warn(msg string) {
	m.status = msg
	m.warning = true
}

func (m *editModel) info(msg string) {
	m.status = msg
	m.warning = false
}

// load points the text field at the focused cell.
func (m *editModel) load() {
	c, ok := m.ed.Focused()
	m.hasCell = ok
	if !ok {
		m.input.SetValue("")
		m.input.Placeholder = ""
		return
	}
	props, err := m.ed.Props(c)
	if err != nil {
		m.hasCell = false
		m.input.SetValue("")
		return
	}
	m.editing = c
	m.original = props.Value
	m.input.SetValue(props.Value)
	m.input.Placeholder = props.Placeholder
	m.input.CursorEnd()
}

// commit stores the text field in its cell when it changed.
func (m *editModel) commit() error {
	if !m.hasCell {
		return nil
	}
	value := m.input.Value()
	if value == m.original {
		return nil
	}
	if err := m.ed.SetValue(m.editing, value); err != nil {
		return err
	}
	m.original = value
	m.dirty = true
	return nil
}

// apply commits the field, runs fn and reloads the focused cell. Rejected
// changes keep the warning the engine already raised.
func (m *editModel) apply(fn func() error) {
	m.status = ""
	if err := m.commit(); err != nil {
		m.warn(err.Error())
		return
	}
	before := m.size()
	err := fn()
	if m.size() != before {
		m.dirty = true
	}
	if err != nil && !program.IsInvariantViolation(err) {
		m.warn(err.Error())
	}
	m.load()
}

// size is a cheap fingerprint of the program's shape.
func (m *editModel) size() int {
	n := 0
	for _, v := range m.ed.Engine().Counts() {
		n += v
	}
	return n
}

func (m *editModel) mutating(fn func() error) func() error {
	return func() error {
		if err := fn(); err != nil {
			return err
		}
		m.dirty = true
		return nil
	}
}

func (m *editModel) save() {
	if err := m.commit(); err != nil {
		m.warn(err.Error())
		return
	}
	if err := m.app.Programs.Save(m.ctx, m.ed.Engine()); err != nil {
		m.warn("save failed: " + err.Error())
		return
	}
	m.dirty = false
	m.info("Saved " + m.ed.Engine().Program().Name)
}

func (m *editModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	if m.picker != nil {
		return m.updatePicker(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.forceQuit = false
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.forceQuit {
			m.save()
		}
		if m.dirty && !m.forceQuit {
			// A failed save keeps the editor open once.
			m.forceQuit = true
			m.warn(m.status + "; press esc again to quit without saving")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.AddSet):
		m.apply(m.ed.AddSet)
		return m, nil
	case key.Matches(msg, m.keys.AddExercise):
		m.apply(m.ed.AddExercise)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.apply(m.deleteFocused)
		return m, nil
	case key.Matches(msg, m.keys.AddMember):
		m.apply(m.ed.AddToCircuit)
		return m, nil
	case key.Matches(msg, m.keys.NextSession):
		m.apply(func() error { return m.stepSession(1) })
		return m, nil
	case key.Matches(msg, m.keys.PrevSession):
		m.apply(func() error { return m.stepSession(-1) })
		return m, nil
	case key.Matches(msg, m.keys.AddCircuit):
		return m, m.openPicker(circuitStyleForm(&m.pickStr), func() error {
			_, err := m.ed.AddCircuit(m.pickStr)
			return err
		})
	case key.Matches(msg, m.keys.AddGroup):
		return m, m.openPicker(groupNameForm(&m.pickStr), func() error {
			_, err := m.ed.AddGroup(strings.TrimSpace(m.pickStr))
			return err
		})
	case key.Matches(msg, m.keys.Rounds):
		return m, m.openRounds()
	case key.Matches(msg, m.keys.Notation):
		return m, m.openNotation()
	}

	caret := grid.Caret{Pos: m.input.Position(), Len: utf8.RuneCountInString(m.input.Value())}
	if dir, ok := m.keys.Grid.Direction(msg, caret); ok {
		m.apply(func() error {
			_, err := m.ed.Move(dir)
			return err
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editModel) deleteFocused() error {
	c, ok := m.ed.Focused()
	if !ok {
		return fmt.Errorf("nothing focused")
	}
	if c.IsSet() {
		return m.ed.DeleteFocusedSet()
	}
	return m.ed.DeleteFocusedExercise()
}

// stepSession moves the editor delta sessions along program order.
func (m *editModel) stepSession(delta int) error {
	sessions := m.ed.Engine().AllSessions()
	cur := -1
	for i, s := range sessions {
		if s.ID == m.ed.SessionID() {
			cur = i
		}
	}
	next := cur + delta
	if next < 0 || next >= len(sessions) {
		return nil
	}
	return m.ed.SwitchSession(sessions[next].ID)
}

func (m *editModel) focusedExercise() (domain.Exercise, error) {
	c, ok := m.ed.Focused()
	if !ok {
		return domain.Exercise{}, fmt.Errorf("nothing focused")
	}
	return m.ed.Engine().Exercise(c.ExerciseID)
}

func (m *editModel) openRounds() tea.Cmd {
	ex, err := m.focusedExercise()
	if err != nil {
		m.warn(err.Error())
		return nil
	}
	if ex.CircuitID() == "" {
		m.warn("rounds belong to circuits; focus a circuit row")
		return nil
	}
	c, err := m.ed.Engine().Circuit(ex.CircuitID())
	if err != nil {
		m.warn(err.Error())
		return nil
	}
	return m.openPicker(roundsForm(c.Rounds, &m.pickStr), m.mutating(func() error {
		return m.ed.SetRounds(m.pickStr)
	}))
}

func (m *editModel) openNotation() tea.Cmd {
	ex, err := m.focusedExercise()
	if err != nil {
		m.warn(err.Error())
		return nil
	}
	if ex.IsHeader() {
		m.warn(fmt.Sprintf("%s rows have no sets to notate", ex.RoleKind()))
		return nil
	}
	return m.openPicker(notationForm(ex, &m.notation), m.mutating(func() error {
		return m.ed.UpdateExercise(ex.ID, program.ExercisePatch{
			RepType:       &m.notation.reps,
			IntensityType: &m.notation.intensity,
			WeightType:    &m.notation.weight,
		})
	}))
}

func (m *editModel) openPicker(form *huh.Form, done func() error) tea.Cmd {
	if err := m.commit(); err != nil {
		m.warn(err.Error())
		return nil
	}
	m.input.Blur()
	m.picker = form
	m.onPicked = done
	return form.Init()
}

func (m *editModel) closePicker() tea.Cmd {
	m.picker = nil
	m.onPicked = nil
	return m.input.Focus()
}

func (m *editModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.info("Cancelled.")
		return m, m.closePicker()
	}

	form, cmd := m.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker = f
	}

	switch m.picker.State {
	case huh.StateCompleted:
		done := m.onPicked
		focusCmd := m.closePicker()
		if done != nil {
			m.apply(done)
		}
		return m, focusCmd
	case huh.StateAborted:
		return m, m.closePicker()
	}
	return m, cmd
}

// --- rendering ---

func (m *editModel) View() string {
	if m.quitting {
		return ""
	}
	var sections []string
	sections = append(sections, m.renderHeader())

	if m.picker != nil {
		sections = append(sections, m.picker.View())
	} else {
		sections = append(sections, m.renderSheet())
	}

	sections = append(sections, m.renderStatusBar())
	return strings.Join(sections, "\n")
}

func (m *editModel) renderHeader() string {
	e := m.ed.Engine()
	crumbs := []string{e.Program().Name}
	if s, err := e.Session(m.ed.SessionID()); err == nil {
		if s.WeekID != "" {
			if w, err := e.Week(s.WeekID); err == nil {
				crumbs = append(crumbs, fmt.Sprintf("Week %d", w.WeekNumber))
			}
		}
		crumbs = append(crumbs, formatter.SessionLabel(s))
	}
	title := formatter.StylePurple.Render("repsheet") + " " + formatter.Dim("›") + " " +
		formatter.Dim(strings.Join(crumbs, " › "))
	if m.dirty {
		title += "  " + formatter.StyleYellow.Render("●")
	}
	return title + "\n" + formatter.Dim(strings.Repeat("─", max(m.width, 20)))
}

func (m *editModel) renderSheet() string {
	rows, err := m.ed.Rows()
	if err != nil {
		return formatter.StyleRed.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(
		pad("EXERCISE", nameWidth) + pad("NOTES", notesWidth)))
	b.WriteString("\n")
	b.WriteString(formatter.StyleHeader.Render("    " +
		pad("REPS", setWidth) + pad("WEIGHT", setWidth) + pad("INTENSITY", setWidth) + pad("REST", setWidth)))
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(m.renderExerciseRow(row))
		b.WriteString("\n")
		indent := "    "
		if row.Nested {
			indent = "      "
		}
		for i := range row.Sets {
			b.WriteString(indent)
			b.WriteString(formatter.Dim(fmt.Sprintf("%-2d", i+1)))
			for _, col := range grid.SetColumns {
				b.WriteString(m.renderCell(grid.SetCell(row.Exercise.ID, i, col), setWidth))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *editModel) renderExerciseRow(row editor.Row) string {
	prefix := ""
	if row.Nested {
		prefix = "  "
	}
	notes := m.renderCell(grid.ExerciseCell(row.Exercise.ID, grid.ColNotes), notesWidth)
	switch {
	case row.Circuit != nil:
		name := m.renderCell(grid.ExerciseCell(row.Exercise.ID, grid.ColName), nameWidth-2)
		return circuitRowStyle.Render("◆ ") + name + notes + formatter.Dim(row.Circuit.Rounds.String()+" rounds")
	case row.Exercise.RoleKind() == domain.RoleGroupHeader:
		name := m.renderCell(grid.ExerciseCell(row.Exercise.ID, grid.ColName), nameWidth-2)
		return groupRowStyle.Render("▸ ") + name + notes
	}
	name := m.renderCell(grid.ExerciseCell(row.Exercise.ID, grid.ColName), nameWidth-len(prefix))
	return prefix + name + notes
}

// renderCell draws one cell: the live text field when focused, otherwise
// the stored value or a dim placeholder.
func (m *editModel) renderCell(c grid.Coord, width int) string {
	props, err := m.ed.Props(c)
	if err != nil {
		return pad("", width)
	}
	if props.Focused && m.picker == nil {
		return focusedCellStyle.Width(width).Render(m.input.View())
	}
	if props.Value == "" {
		return cellStyle.Width(width).Render(formatter.Dim(props.Placeholder))
	}
	return cellStyle.Width(width).Render(props.Value)
}

func (m *editModel) renderStatusBar() string {
	var lines []string
	if m.status != "" {
		if m.warning {
			lines = append(lines, formatter.Warning(m.status))
		} else {
			lines = append(lines, formatter.StyleGreen.Render(m.status))
		}
	}
	var hints []string
	if m.picker != nil {
		hints = append(hints, formatter.Dim("enter: select"), formatter.Dim("esc: cancel"))
	} else {
		for _, b := range m.keys.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(append(lines, strings.Join(hints, "  ")), "\n")
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
