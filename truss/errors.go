package truss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/element"
)

// Sentinels matched by errors.Is. Each typed error below unwraps to one of these.
var (
	ErrShapeMismatch                  = errors.New("truss: shape mismatch")
	ErrInconsistentBoundaryConditions = errors.New("truss: inconsistent boundary conditions")
	ErrDegenerateElement              = element.ErrDegenerateElement
	ErrSingularSystem                 = errors.New("truss: singular system")
	ErrInvalidMaterial                = errors.New("truss: invalid material")
	ErrNonFiniteValue                 = errors.New("truss: NaN or Inf input value")
	ErrNotSolved                      = errors.New("truss: model not solved")
)

// DegenerateElementError reports a zero-length element
type DegenerateElementError = element.DegenerateElementError

// ShapeMismatchError reports input tables whose sizes or indices disagree
type ShapeMismatchError struct {
	Table string // Which input table is wrong
	Index int    // Offending row, or -1 when the table length itself is wrong
	Got   int
	Want  int
	Msg   string
}

func (e *ShapeMismatchError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("truss: shape mismatch in %s: %s", e.Table, e.Msg)
	}
	return fmt.Sprintf("truss: shape mismatch in %s: got %d entries, want %d", e.Table, e.Got, e.Want)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// InconsistentBoundaryConditionsError lists every DOF where displacement and
// force are not exactly one known and one unknown
type InconsistentBoundaryConditionsError struct {
	Conflicts []dof.Conflict
}

func (e *InconsistentBoundaryConditionsError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		node, axis := dof.Node(c.DOF)
		parts[i] = fmt.Sprintf("DOF %d (node %d %s): %v", c.DOF, node, axisName(axis), c.Kind)
	}
	return "truss: inconsistent boundary conditions: " + strings.Join(parts, "; ")
}

func (e *InconsistentBoundaryConditionsError) Unwrap() error { return ErrInconsistentBoundaryConditions }

// SingularSystemError reports a reduced stiffness K_bb that cannot be solved:
// the structure is unstable, under-restrained, or too ill-conditioned
type SingularSystemError struct {
	FreeDOFs  int     // Size of K_bb
	Condition float64 // Estimated condition number (+Inf when exactly singular)
	Limit     float64 // Configured maximum
	Cause     error   // Underlying solver error, if any
}

func (e *SingularSystemError) Error() string {
	msg := fmt.Sprintf("truss: singular system: reduced stiffness (%d free DOFs) has condition %.3e, limit %.3e",
		e.FreeDOFs, e.Condition, e.Limit)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SingularSystemError) Unwrap() error { return ErrSingularSystem }

// InvalidMaterialError reports a non-positive or non-finite E or A
type InvalidMaterialError struct {
	Element int
	E, A    float64
}

func (e *InvalidMaterialError) Error() string {
	return fmt.Sprintf("truss: invalid material for element %d: E=%g A=%g, both must be finite and > 0",
		e.Element, e.E, e.A)
}

func (e *InvalidMaterialError) Unwrap() error { return ErrInvalidMaterial }

func axisName(a dof.Axis) string {
	if a == dof.X {
		return "x"
	}
	return "y"
}
