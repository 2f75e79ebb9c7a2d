package domain

type RoleKind string

const (
	RolePlain         RoleKind = "plain"
	RoleCircuitHeader RoleKind = "circuit_header"
	RoleCircuitMember RoleKind = "circuit_member"
	RoleGroupHeader   RoleKind = "group_header"
)

// Role is the variant part of an Exercise. Exactly one of Plain,
// CircuitHeader, CircuitMember or GroupHeader.
type Role interface {
	Kind() RoleKind
}

// Plain is an ordinary exercise row. GroupID is set when the exercise sits
// under a group header; it holds that header's exercise id.
type Plain struct {
	GroupID string
}

// CircuitHeader is the row that represents a circuit itself.
type CircuitHeader struct {
	CircuitID string
}

// CircuitMember is an exercise performed as part of a circuit. Order is the
// explicit position within the circuit.
type CircuitMember struct {
	CircuitID string
	Order     int
}

// GroupHeader heads a group; its own exercise id is the group id.
type GroupHeader struct{}

func (Plain) Kind() RoleKind         { return RolePlain }
func (CircuitHeader) Kind() RoleKind { return RoleCircuitHeader }
func (CircuitMember) Kind() RoleKind { return RoleCircuitMember }
func (GroupHeader) Kind() RoleKind   { return RoleGroupHeader }

type Exercise struct {
	ID        string
	SessionID string
	Name      string
	Notes     string
	SetIDs    []string
	Role      Role

	RepType       RepType
	IntensityType IntensityType
	WeightType    WeightType
}

// Clone returns a copy that shares no slices with e.
func (e Exercise) Clone() Exercise {
	e.SetIDs = cloneIDs(e.SetIDs)
	return e
}

// RoleKind returns the kind of the exercise role. A nil role is plain.
func (e Exercise) RoleKind() RoleKind {
	if e.Role == nil {
		return RolePlain
	}
	return e.Role.Kind()
}

// CircuitID returns the circuit the exercise heads or belongs to.
func (e Exercise) CircuitID() string {
	switch r := e.Role.(type) {
	case CircuitHeader:
		return r.CircuitID
	case CircuitMember:
		return r.CircuitID
	}
	return ""
}

// GroupID returns the group a plain exercise belongs to.
func (e Exercise) GroupID() string {
	if r, ok := e.Role.(Plain); ok {
		return r.GroupID
	}
	return ""
}

// CircuitOrder returns the member position, or 0 for non-members.
func (e Exercise) CircuitOrder() int {
	if r, ok := e.Role.(CircuitMember); ok {
		return r.Order
	}
	return 0
}

// IsHeader reports whether the row heads a circuit or a group.
func (e Exercise) IsHeader() bool {
	k := e.RoleKind()
	return k == RoleCircuitHeader || k == RoleGroupHeader
}
