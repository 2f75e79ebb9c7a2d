package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CircuitStyle is the rendering style derived from a circuit's name.
type CircuitStyle string

const (
	StyleSuperset CircuitStyle = "Superset"
	StyleEMOM     CircuitStyle = "EMOM"
	StyleAMRAP    CircuitStyle = "AMRAP"
	StyleTabata   CircuitStyle = "Tabata"
	StyleCircuit  CircuitStyle = "Circuit"
)

// CircuitStyles lists the styles offered when creating a circuit.
var CircuitStyles = []CircuitStyle{StyleSuperset, StyleEMOM, StyleAMRAP, StyleTabata, StyleCircuit}

type Circuit struct {
	ID        string
	SessionID string
	Name      string
	MemberIDs []string // non-owning; members live in the session
	Rounds    Rounds
}

// Clone returns a copy that shares no slices with c.
func (c Circuit) Clone() Circuit {
	c.MemberIDs = cloneIDs(c.MemberIDs)
	return c
}

// Style maps the circuit name onto a known style, falling back to Circuit.
func (c Circuit) Style() CircuitStyle {
	return StyleForName(c.Name)
}

// StyleForName matches name case-insensitively against the known styles.
func StyleForName(name string) CircuitStyle {
	trimmed := strings.TrimSpace(name)
	for _, s := range CircuitStyles {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return StyleCircuit
}

// Rounds is either a positive round count or the AMRAP sentinel.
type Rounds struct {
	Count int
	AMRAP bool
}

const amrapRounds = "AMRAP"

// DefaultRounds returns the rounds a new circuit of the given style starts with.
func DefaultRounds(style CircuitStyle) Rounds {
	switch style {
	case StyleAMRAP:
		return Rounds{AMRAP: true}
	case StyleTabata:
		return Rounds{Count: 8}
	case StyleEMOM:
		return Rounds{Count: 10}
	default:
		return Rounds{Count: 3}
	}
}

// ParseRounds accepts a positive integer or "AMRAP" (any case).
func ParseRounds(s string) (Rounds, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, amrapRounds) {
		return Rounds{AMRAP: true}, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return Rounds{}, fmt.Errorf("rounds %q must be a positive integer or %s", s, amrapRounds)
	}
	return Rounds{Count: n}, nil
}

func (r Rounds) String() string {
	if r.AMRAP {
		return amrapRounds
	}
	return strconv.Itoa(r.Count)
}

// Valid reports whether r is the sentinel or a positive count.
func (r Rounds) Valid() bool {
	return r.AMRAP || r.Count > 0
}
