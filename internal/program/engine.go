// Package program owns the in-memory training program tree. Entities live in
// id-keyed maps with parent back-references; every mutation patches a single
// entity and repairs numbering in the same call.
package program

import (
	"fmt"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/google/uuid"
)

// Engine is the structural mutation engine for one program. It is not safe
// for concurrent use; the editor drives it from a single goroutine.
type Engine struct {
	program domain.Program

	weekIDs []string // weekly mode
	flatIDs []string // flat mode sessions

	weeks     map[string]*domain.Week
	sessions  map[string]*domain.Session
	exercises map[string]*domain.Exercise
	sets      map[string]*domain.Set
	circuits  map[string]*domain.Circuit

	active string

	notifier Notifier
	newID    func() string
	now      func() time.Time
}

type Option func(*Engine)

// WithNotifier routes warnings to n.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithIDGenerator replaces uuid generation, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an engine holding p with no weeks or sessions yet.
func New(p domain.Program, opts ...Option) *Engine {
	e := &Engine{
		program:   p,
		weeks:     make(map[string]*domain.Week),
		sessions:  make(map[string]*domain.Session),
		exercises: make(map[string]*domain.Exercise),
		sets:      make(map[string]*domain.Set),
		circuits:  make(map[string]*domain.Circuit),
		notifier:  NoopNotifier{},
		newID:     func() string { return uuid.New().String() },
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.program.ID == "" {
		e.program.ID = e.newID()
	}
	if e.program.Mode == "" {
		e.program.Mode = domain.ModeWeekly
	}
	e.program.Settings = withDefaults(e.program.Settings)
	if e.program.CreatedAt.IsZero() {
		e.program.CreatedAt = e.now()
		e.program.UpdatedAt = e.program.CreatedAt
	}
	return e
}

// Start returns an engine seeded with its first week, or its first session
// in flat mode, so the program is never empty.
func Start(p domain.Program, opts ...Option) (*Engine, error) {
	e := New(p, opts...)
	var err error
	if e.program.Mode == domain.ModeFlat {
		_, err = e.AddSession("", "")
	} else {
		_, err = e.AddWeek("")
	}
	if err != nil {
		return nil, fmt.Errorf("seeding program: %w", err)
	}
	return e, nil
}

// SetNotifier swaps the warning sink, for callers that attach a view after
// loading.
func (e *Engine) SetNotifier(n Notifier) {
	if n == nil {
		n = NoopNotifier{}
	}
	e.notifier = n
}

func withDefaults(s domain.Settings) domain.Settings {
	d := domain.DefaultSettings()
	s.RepType = domain.Coalesce(s.RepType, d.RepType)
	s.IntensityType = domain.Coalesce(s.IntensityType, d.IntensityType)
	s.WeightType = domain.Coalesce(s.WeightType, d.WeightType)
	return s
}

func (e *Engine) touch() {
	e.program.UpdatedAt = e.now()
}

func (e *Engine) warn(err error) error {
	e.notifier.Warn(err.Error())
	return err
}

// --- reads ---
// Every read returns copies; callers never alias arena state.

func (e *Engine) Program() domain.Program {
	return e.program
}

// Rename sets the program name.
func (e *Engine) Rename(name string) {
	e.program.Name = name
	e.touch()
}

func (e *Engine) Weeks() []domain.Week {
	out := make([]domain.Week, 0, len(e.weekIDs))
	for _, id := range e.weekIDs {
		out = append(out, e.weeks[id].Clone())
	}
	return out
}

func (e *Engine) Week(id string) (domain.Week, error) {
	w, ok := e.weeks[id]
	if !ok {
		return domain.Week{}, fmt.Errorf("week %s: %w", id, ErrNotFound)
	}
	return w.Clone(), nil
}

// Sessions returns the sessions of a week, or the flat session list when
// weekID is empty.
func (e *Engine) Sessions(weekID string) ([]domain.Session, error) {
	ids, err := e.sessionList(weekID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(*ids))
	for _, id := range *ids {
		out = append(out, e.sessions[id].Clone())
	}
	return out, nil
}

// AllSessions returns every session in program order.
func (e *Engine) AllSessions() []domain.Session {
	var out []domain.Session
	for _, id := range e.sessionOrder() {
		out = append(out, e.sessions[id].Clone())
	}
	return out
}

func (e *Engine) Session(id string) (domain.Session, error) {
	s, ok := e.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return s.Clone(), nil
}

// Exercises returns a session's exercises in stored order. Use Composed for
// render order.
func (e *Engine) Exercises(sessionID string) ([]domain.Exercise, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	out := make([]domain.Exercise, 0, len(s.ExerciseIDs))
	for _, id := range s.ExerciseIDs {
		out = append(out, e.exercises[id].Clone())
	}
	return out, nil
}

// Composed returns a session's exercises in render order.
func (e *Engine) Composed(sessionID string) ([]domain.Exercise, error) {
	exs, err := e.Exercises(sessionID)
	if err != nil {
		return nil, err
	}
	return Compose(exs), nil
}

func (e *Engine) Exercise(id string) (domain.Exercise, error) {
	ex, ok := e.exercises[id]
	if !ok {
		return domain.Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return ex.Clone(), nil
}

func (e *Engine) Sets(exerciseID string) ([]domain.Set, error) {
	ex, ok := e.exercises[exerciseID]
	if !ok {
		return nil, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}
	out := make([]domain.Set, 0, len(ex.SetIDs))
	for _, id := range ex.SetIDs {
		out = append(out, *e.sets[id])
	}
	return out, nil
}

func (e *Engine) Set(id string) (domain.Set, error) {
	s, ok := e.sets[id]
	if !ok {
		return domain.Set{}, fmt.Errorf("set %s: %w", id, ErrNotFound)
	}
	return *s, nil
}

func (e *Engine) Circuits(sessionID string) ([]domain.Circuit, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	out := make([]domain.Circuit, 0, len(s.CircuitIDs))
	for _, id := range s.CircuitIDs {
		out = append(out, e.circuits[id].Clone())
	}
	return out, nil
}

func (e *Engine) Circuit(id string) (domain.Circuit, error) {
	c, ok := e.circuits[id]
	if !ok {
		return domain.Circuit{}, fmt.Errorf("circuit %s: %w", id, ErrNotFound)
	}
	return c.Clone(), nil
}

// ActiveSessionID returns the session the editor opens on.
func (e *Engine) ActiveSessionID() string {
	return e.active
}

func (e *Engine) SetActiveSession(id string) error {
	if _, ok := e.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	e.active = id
	return nil
}

// Counts reports the number of live entities, keyed by kind.
func (e *Engine) Counts() map[string]int {
	return map[string]int{
		"weeks":     len(e.weeks),
		"sessions":  len(e.sessions),
		"exercises": len(e.exercises),
		"sets":      len(e.sets),
		"circuits":  len(e.circuits),
	}
}

// --- internal lookups ---

// sessionList returns the id list that owns sessions under weekID, or the
// flat list for an empty weekID in flat mode.
func (e *Engine) sessionList(weekID string) (*[]string, error) {
	if weekID == "" {
		if e.program.Mode != domain.ModeFlat {
			return nil, fmt.Errorf("weekly program needs a week id: %w", ErrModeMismatch)
		}
		return &e.flatIDs, nil
	}
	w, ok := e.weeks[weekID]
	if !ok {
		return nil, fmt.Errorf("week %s: %w", weekID, ErrNotFound)
	}
	return &w.SessionIDs, nil
}

func (e *Engine) sessionOrder() []string {
	if e.program.Mode == domain.ModeFlat {
		return e.flatIDs
	}
	var ids []string
	for _, wid := range e.weekIDs {
		ids = append(ids, e.weeks[wid].SessionIDs...)
	}
	return ids
}

// exerciseIn resolves an exercise and checks it is owned by sessionID.
func (e *Engine) exerciseIn(sessionID, exerciseID string) (*domain.Session, *domain.Exercise, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	ex, ok := e.exercises[exerciseID]
	if !ok || ex.SessionID != sessionID {
		return nil, nil, fmt.Errorf("exercise %s in session %s: %w", exerciseID, sessionID, ErrNotFound)
	}
	return s, ex, nil
}

func (e *Engine) renumberWeeks() {
	for i, id := range e.weekIDs {
		e.weeks[id].WeekNumber = i + 1
	}
}

func (e *Engine) renumberSessions(ids []string) {
	for i, id := range ids {
		e.sessions[id].Day = i + 1
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}

func insertAt(ids []string, i int, id string) []string {
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
