package truss

import (
	"fmt"
	"strings"

	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/utils"
)

// Result is the outcome of a successful Solve
type Result struct {
	// Solved displacements then recovered reactions, each in ascending DOF order
	Unknowns []float64

	UnknownDisplacementDOFs []int // DOFs of Unknowns[:len(UnknownDisplacementDOFs)]
	ReactionDOFs            []int // DOFs of the remaining Unknowns

	AxialForces []float64 // Per element, tension positive
	Stresses    []float64 // Per element, AxialForces / A

	Residual     float64 // max |K·U - F|
	SumFx, SumFy float64 // Global force balance
}

func (r *Result) clone() *Result {
	c := *r
	c.Unknowns = append([]float64(nil), r.Unknowns...)
	c.UnknownDisplacementDOFs = append([]int(nil), r.UnknownDisplacementDOFs...)
	c.ReactionDOFs = append([]int(nil), r.ReactionDOFs...)
	c.AxialForces = append([]float64(nil), r.AxialForces...)
	c.Stresses = append([]float64(nil), r.Stresses...)
	return &c
}

// Displacements returns the solved-for displacement values
func (r *Result) Displacements() []float64 {
	return r.Unknowns[:len(r.UnknownDisplacementDOFs)]
}

// Reactions returns the recovered reaction forces
func (r *Result) Reactions() []float64 {
	return r.Unknowns[len(r.UnknownDisplacementDOFs):]
}

// DOFLabel names a DOF as u/f plus axis and node, e.g. "ux2"
func DOFLabel(prefix string, d int) string {
	node, axis := dof.Node(d)
	return fmt.Sprintf("%s%s%d", prefix, axisName(axis), node)
}

func labels(prefix string, dofs []int) []string {
	out := make([]string, len(dofs))
	for i, d := range dofs {
		out[i] = DOFLabel(prefix, d)
	}
	return out
}

func (r *Result) String() string {
	var sb strings.Builder

	sb.WriteString("--- Unknown Displacements ---\n")
	sb.WriteString(utils.FormatVector(labels("u", r.UnknownDisplacementDOFs), r.Displacements()))

	sb.WriteString("--- Reactions ---\n")
	sb.WriteString(utils.FormatVector(labels("f", r.ReactionDOFs), r.Reactions()))

	sb.WriteString("--- Member Forces ---\n")
	elems := make([]string, len(r.AxialForces))
	for e := range elems {
		elems[e] = fmt.Sprintf("N%d", e)
	}
	sb.WriteString(utils.FormatVector(elems, r.AxialForces))

	sb.WriteString("--- Checks ---\n")
	sb.WriteString(fmt.Sprintf("  residual %.3e\n", r.Residual))
	sb.WriteString(fmt.Sprintf("  sum Fx   %.3e\n", r.SumFx))
	sb.WriteString(fmt.Sprintf("  sum Fy   %.3e\n", r.SumFy))
	return sb.String()
}
