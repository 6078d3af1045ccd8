package dof

import (
	"fmt"
	"strings"
)

// Axis selects the translation direction of a nodal DOF
type Axis uint8

const (
	X Axis = iota // x-translation, DOF 2*i
	Y             // y-translation, DOF 2*i+1
)

// PerNode is the number of DOFs carried by each node of a 2D truss
const PerNode = 2

// Index returns the global DOF number of a node/axis pair
func Index(node int, axis Axis) int { return PerNode*node + int(axis) }

// Node splits a global DOF number back into node and axis
func Node(d int) (node int, axis Axis) { return d / PerNode, Axis(d % PerNode) }

// Map returns the DOF map [2*n0, 2*n0+1, 2*n1, 2*n1+1] of a two-node element
func Map(n0, n1 int) [4]int {
	return [4]int{Index(n0, X), Index(n0, Y), Index(n1, X), Index(n1, Y)}
}

// Vector is an ordered DOF vector of length 2N
type Vector []Value

// Knowns builds a fully known vector
func Knowns(vals ...float64) Vector {
	v := make(Vector, len(vals))
	for i, x := range vals {
		v[i] = Known(x)
	}
	return v
}

// Unknowns builds a fully unknown vector of length n
func Unknowns(n int) Vector { return make(Vector, n) }

// KnownIndices lists, in ascending order, the DOFs that carry a value
func (v Vector) KnownIndices() (idx []int) {
	for i, d := range v {
		if d.known {
			idx = append(idx, i)
		}
	}
	return
}

// UnknownIndices lists, in ascending order, the DOFs to be solved for
func (v Vector) UnknownIndices() (idx []int) {
	for i, d := range v {
		if !d.known {
			idx = append(idx, i)
		}
	}
	return
}

// Gather returns the values at idx; unknown entries read as zero
func (v Vector) Gather(idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, d := range idx {
		out[i] = v[d].v
	}
	return out
}

// Floats returns all entries as scalars, failing on the first unknown
func (v Vector) Floats() ([]float64, error) {
	out := make([]float64, len(v))
	for i, d := range v {
		if !d.known {
			return nil, fmt.Errorf("dof: entry %d is unknown", i)
		}
		out[i] = d.v
	}
	return out, nil
}

// Clone returns an independent copy
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, d := range v {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
