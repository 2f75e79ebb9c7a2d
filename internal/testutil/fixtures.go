package testutil

import (
	"testing"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/snapshot"
)

// FixedTime is the clock used by fixture engines.
var FixedTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type engineConfig struct {
	program  domain.Program
	weeks    int
	sessions int
	lifts    []string
	opts     []program.Option
}

// EngineOption configures NewTestEngine.
type EngineOption func(*engineConfig)

func WithFlatMode() EngineOption {
	return func(c *engineConfig) {
		c.program.Mode = domain.ModeFlat
	}
}

func WithSettings(s domain.Settings) EngineOption {
	return func(c *engineConfig) {
		c.program.Settings = s
	}
}

// WithWeeks sets the total number of weeks of a weekly program.
func WithWeeks(n int) EngineOption {
	return func(c *engineConfig) {
		c.weeks = n
	}
}

// WithSessions sets the number of sessions per week, or the flat session
// count in flat mode.
func WithSessions(n int) EngineOption {
	return func(c *engineConfig) {
		c.sessions = n
	}
}

// WithLifts names the exercises of the first session. The seeded default
// exercise takes the first name.
func WithLifts(names ...string) EngineOption {
	return func(c *engineConfig) {
		c.lifts = names
	}
}

func WithEngineOptions(opts ...program.Option) EngineOption {
	return func(c *engineConfig) {
		c.opts = append(c.opts, opts...)
	}
}

// NewTestEngine builds a program with the requested shape on a fixed clock.
func NewTestEngine(t *testing.T, name string, opts ...EngineOption) *program.Engine {
	t.Helper()
	cfg := engineConfig{
		program:  domain.Program{Name: name},
		weeks:    1,
		sessions: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	engineOpts := append([]program.Option{program.WithClock(func() time.Time { return FixedTime })}, cfg.opts...)

	e, err := program.Start(cfg.program, engineOpts...)
	if err != nil {
		t.Fatalf("starting test program: %v", err)
	}

	must := func(_ string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("building test program: %v", err)
		}
	}
	if cfg.program.Mode == domain.ModeFlat {
		for i := 1; i < cfg.sessions; i++ {
			must(e.AddSession("", ""))
		}
	} else {
		for i := 1; i < cfg.weeks; i++ {
			must(e.AddWeek(""))
		}
		for _, w := range e.Weeks() {
			for i := 1; i < cfg.sessions; i++ {
				must(e.AddSession(w.ID, ""))
			}
		}
	}

	sid := e.AllSessions()[0].ID
	for i, lift := range cfg.lifts {
		p := program.ExercisePatch{Name: program.Ptr(lift)}
		if i == 0 {
			exs, _ := e.Exercises(sid)
			if err := e.UpdateExercise(sid, exs[0].ID, p); err != nil {
				t.Fatalf("naming first exercise: %v", err)
			}
			continue
		}
		must(e.AddExercise(sid, p))
	}
	return e
}

// NewTestProgramSnapshot captures e as a library program snapshot.
func NewTestProgramSnapshot(e *program.Engine, name string) *snapshot.Snapshot {
	return snapshot.FromProgram(name, e.Bundle(), FixedTime)
}

// NewTestSessionSnapshot captures the first session of e.
func NewTestSessionSnapshot(t *testing.T, e *program.Engine, name string) *snapshot.Snapshot {
	t.Helper()
	b, err := e.SessionBundle(e.AllSessions()[0].ID)
	if err != nil {
		t.Fatalf("bundling session: %v", err)
	}
	return snapshot.FromSession(name, b, FixedTime)
}
