package dof

// ConflictKind describes how a DOF violates the one-known-per-DOF rule
type ConflictKind uint8

const (
	BothKnown ConflictKind = iota
	BothUnknown
)

func (c ConflictKind) String() string {
	if c == BothKnown {
		return "both displacement and force known"
	}
	return "both displacement and force unknown"
}

// Conflict is a DOF whose displacement and force entries are both known or both unknown
type Conflict struct {
	DOF  int
	Kind ConflictKind
}

// Conflicts returns every DOF at which u and f are not complementary.
// The vectors must have equal length.
func Conflicts(u, f Vector) (out []Conflict) {
	for i := range u {
		switch {
		case u[i].known && f[i].known:
			out = append(out, Conflict{DOF: i, Kind: BothKnown})
		case !u[i].known && !f[i].known:
			out = append(out, Conflict{DOF: i, Kind: BothUnknown})
		}
	}
	return
}

// Partition splits the DOF index set by displacement status:
//   - Prescribed (set a): known U, unknown reaction F
//   - Free (set b): unknown U, known applied F
//
// Both lists are in ascending DOF order.
type Partition struct {
	Prescribed []int
	Free       []int
}

// NewPartition partitions by the displacement vector; callers check Conflicts first
func NewPartition(u Vector) Partition {
	return Partition{
		Prescribed: u.KnownIndices(),
		Free:       u.UnknownIndices(),
	}
}

// Size returns the total number of DOFs covered
func (p Partition) Size() int { return len(p.Prescribed) + len(p.Free) }
