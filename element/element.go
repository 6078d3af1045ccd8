package element

import "gonum.org/v1/gonum/mat"

// Dimensionality is the number of spatial axes an element lives in
type Dimensionality uint8

const D2 Dimensionality = 2

type ElementGeometry uint8

const (
	Line ElementGeometry = iota
)

func (g ElementGeometry) String() string {
	switch g {
	case Line:
		return "Line"
	default:
		return "Unknown"
	}
}

type Element interface {
	Name() string
	ShortName() string
	GeometryType() ElementGeometry
	Dimensions() Dimensionality
	NumNodes() int // Number of end nodes

	// DOFMap lists the global DOF of each local stiffness row, in local order
	DOFMap() []int

	// Stiffness returns the local stiffness matrix in global axes,
	// sized len(DOFMap()) × len(DOFMap())
	Stiffness() mat.Symmetric
}
