// Package snapshot is the JSON document format for whole programs and single
// sessions, used by the program store and the library.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/dustin/go-humanize/english"
)

// Version is the document version written by this package.
const Version = 1

type Kind string

const (
	KindProgram Kind = "program"
	KindSession Kind = "session"
)

// Snapshot is the top-level document. Exactly one of Program or Session is
// set, matching Kind.
type Snapshot struct {
	Version int         `json:"version"`
	Kind    Kind        `json:"kind"`
	Name    string      `json:"name"`
	SavedAt time.Time   `json:"savedAt"`
	Program *ProgramDoc `json:"program,omitempty"`
	Session *SessionDoc `json:"session,omitempty"`
}

type ProgramDoc struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Mode            string       `json:"mode,omitempty"`
	Settings        *SettingsDoc `json:"settings,omitempty"`
	Weeks           []WeekDoc    `json:"weeks,omitempty"`
	Sessions        []SessionDoc `json:"sessions,omitempty"`
	ActiveSessionID string       `json:"activeSessionId,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type SettingsDoc struct {
	RepType       string `json:"repType,omitempty"`
	IntensityType string `json:"intensityType,omitempty"`
	WeightType    string `json:"weightType,omitempty"`
}

type WeekDoc struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	WeekNumber int          `json:"weekNumber"`
	Sessions   []SessionDoc `json:"sessions"`
}

type SessionDoc struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Day       int           `json:"day"`
	Exercises []ExerciseDoc `json:"exercises"`
	Circuits  []CircuitDoc  `json:"circuits,omitempty"`
}

// ExerciseDoc flattens the exercise role into flags: isCircuit for a circuit
// header, isInCircuit for a member, isGroup for a group header.
type ExerciseDoc struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Notes         string   `json:"notes,omitempty"`
	Sets          []SetDoc `json:"sets"`
	IsCircuit     bool     `json:"isCircuit,omitempty"`
	IsInCircuit   bool     `json:"isInCircuit,omitempty"`
	IsGroup       bool     `json:"isGroup,omitempty"`
	CircuitID     string   `json:"circuitId,omitempty"`
	CircuitOrder  int      `json:"circuitOrder,omitempty"`
	GroupID       string   `json:"groupId,omitempty"`
	RepType       string   `json:"repType,omitempty"`
	IntensityType string   `json:"intensityType,omitempty"`
	WeightType    string   `json:"weightType,omitempty"`
}

type SetDoc struct {
	ID            string `json:"id"`
	Reps          string `json:"reps"`
	Weight        string `json:"weight"`
	Intensity     string `json:"intensity"`
	Rest          string `json:"rest"`
	RepType       string `json:"repType,omitempty"`
	IntensityType string `json:"intensityType,omitempty"`
	WeightType    string `json:"weightType,omitempty"`
}

type CircuitDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ExerciseIDs []string  `json:"exerciseIds"`
	Rounds      RoundsDoc `json:"rounds"`
}

// RoundsDoc encodes rounds as a JSON number, or the string "AMRAP".
type RoundsDoc domain.Rounds

func (r RoundsDoc) MarshalJSON() ([]byte, error) {
	if r.AMRAP {
		return json.Marshal(domain.Rounds(r).String())
	}
	return json.Marshal(r.Count)
}

func (r *RoundsDoc) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RoundsDoc{Count: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rounds must be a number or %q: %w", "AMRAP", err)
	}
	parsed, err := domain.ParseRounds(s)
	if err != nil {
		return err
	}
	*r = RoundsDoc(parsed)
	return nil
}

// Marshal validates s and encodes it as indented JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a snapshot document.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Summary describes the snapshot contents in one line.
func (s *Snapshot) Summary() string {
	var parts []string
	switch {
	case s.Program != nil:
		weeks := len(s.Program.Weeks)
		sessions := len(s.Program.Sessions)
		for _, w := range s.Program.Weeks {
			sessions += len(w.Sessions)
		}
		if weeks > 0 {
			parts = append(parts, english.Plural(weeks, "week", ""))
		}
		parts = append(parts, english.Plural(sessions, "session", ""))
	case s.Session != nil:
		parts = append(parts, english.Plural(len(s.Session.Exercises), "exercise", ""))
	}
	return strings.Join(parts, ", ")
}

