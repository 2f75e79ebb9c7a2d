// Package teatest drives a bubbletea model without a tea.Program: every
// message goes straight to Update and the returned Cmds are drained in
// place, so tests step the sheet editor one key at a time.
//
// Cmds that block, such as cursor blinks, are given a short timeout and
// dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// MaxDrainDepth bounds how many chained Cmds one message may trigger.
const MaxDrainDepth = 100

// cmdTimeout bounds each Cmd. Cursor blinks wait about 530ms.
const cmdTimeout = 50 * time.Millisecond

// Driver feeds messages to a tea.Model and keeps the latest model value.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a drained Cmd yields tea.QuitMsg. Later sends
	// are ignored, as they would be after a real program exits.
	Quitting bool
}

type Option func(*Driver)

// New wraps model. Call DrainInit before sending keys.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// DrainInit runs the model's Init Cmd.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains whatever it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// keyNames maps the names used by key bindings to key types.
var keyNames = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+g":    tea.KeyCtrlG,
	"ctrl+l":    tea.KeyCtrlL,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+o":    tea.KeyCtrlO,
	"ctrl+q":    tea.KeyCtrlQ,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+t":    tea.KeyCtrlT,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+y":    tea.KeyCtrlY,
}

// Press sends each named key in turn, e.g. Press("tab", "alt+enter"). An
// unknown name fails the test.
func (d *Driver) Press(names ...string) {
	d.T.Helper()
	for _, name := range names {
		base, alt := strings.CutPrefix(name, "alt+")
		kt, ok := keyNames[base]
		if !ok {
			d.T.Fatalf("teatest: unknown key %q", name)
		}
		d.Send(tea.KeyMsg{Type: kt, Alt: alt})
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Clear empties the focused text field.
func (d *Driver) Clear() {
	d.T.Helper()
	d.Press("end", "ctrl+u")
}

func (d *Driver) View() string {
	return d.Model.View()
}

// Screen is View without terminal styling.
func (d *Driver) Screen() string {
	return ansi.Strip(d.Model.View())
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up draining after %d chained Cmds", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}
	if isBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// runWithTimeout returns cmd's message, or nil when it does not finish
// within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink reports cursor blink messages. Their types are unexported, and
// feeding them back schedules another blocking blink.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
