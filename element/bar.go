package element

import (
	"fmt"
	"math"

	"github.com/notargets/MSATruss/dof"
	"gonum.org/v1/gonum/mat"
)

// Material holds the axial properties of a bar
type Material struct {
	E float64 // Young's modulus
	A float64 // Cross-sectional area
}

// Geometry is the derived shape of a bar, measured from node 0 to node 1
type Geometry struct {
	L      float64 // Length
	Cx, Cy float64 // Direction cosines Δx/L, Δy/L
}

// Point is a node coordinate pair
type Point [2]float64

// ComputeGeometry returns the length and direction cosines of the segment p0 -> p1
func ComputeGeometry(p0, p1 Point) (Geometry, error) {
	dx := p1[0] - p0[0]
	dy := p1[1] - p0[1]
	L := math.Hypot(dx, dy)
	if L == 0 || math.IsNaN(L) || math.IsInf(L, 0) {
		return Geometry{}, fmt.Errorf("length %v from %v to %v", L, p0, p1)
	}
	return Geometry{L: L, Cx: dx / L, Cy: dy / L}, nil
}

// Bar is a two-node pin-jointed truss member with axial stiffness only
type Bar struct {
	ID    int    // Element index
	Nodes [2]int // End node indices (n0, n1)
	Material
	Geometry

	dofs [4]int
	k    *mat.SymDense
}

// NewBar builds a bar from its end nodes and material.
// nodes must index into coords; a zero-length bar returns a *DegenerateElementError.
func NewBar(id int, nodes [2]int, coords []Point, m Material) (*Bar, error) {
	for _, n := range nodes {
		if n < 0 || n >= len(coords) {
			return nil, fmt.Errorf("element %d: node %d outside [0, %d)", id, n, len(coords))
		}
	}
	geom, err := ComputeGeometry(coords[nodes[0]], coords[nodes[1]])
	if err != nil {
		return nil, &DegenerateElementError{Element: id, Nodes: nodes, Reason: err.Error()}
	}
	b := &Bar{
		ID:       id,
		Nodes:    nodes,
		Material: m,
		Geometry: geom,
		dofs:     dof.Map(nodes[0], nodes[1]),
	}
	b.k = b.buildStiffness()
	return b, nil
}

// Axial returns the axial stiffness k = EA/L
func (b *Bar) Axial() float64 { return b.E * b.A / b.L }

// buildStiffness forms k * t tᵀ with t = [cx, cy, -cx, -cy]
func (b *Bar) buildStiffness() *mat.SymDense {
	t := mat.NewVecDense(4, []float64{b.Cx, b.Cy, -b.Cx, -b.Cy})
	k := mat.NewSymDense(4, nil)
	k.SymOuterK(b.Axial(), t)
	return k
}

// AxialForce returns the member force for global displacements u, tension positive
func (b *Bar) AxialForce(u []float64) float64 {
	du := b.Cx*(u[b.dofs[2]]-u[b.dofs[0]]) + b.Cy*(u[b.dofs[3]]-u[b.dofs[1]])
	return b.Axial() * du
}

// Stress returns the axial stress for global displacements u
func (b *Bar) Stress(u []float64) float64 { return b.AxialForce(u) / b.A }

func (b *Bar) Name() string                  { return "Pin-jointed Truss Bar" }
func (b *Bar) ShortName() string             { return "Bar2" }
func (b *Bar) GeometryType() ElementGeometry { return Line }
func (b *Bar) Dimensions() Dimensionality    { return D2 }
func (b *Bar) NumNodes() int                 { return 2 }
func (b *Bar) DOFMap() []int                 { return b.dofs[:] }
func (b *Bar) Stiffness() mat.Symmetric      { return b.k }

func (b *Bar) String() string {
	return fmt.Sprintf("%s %d: nodes (%d, %d) E=%g A=%g L=%g c=(%.6g, %.6g)",
		b.ShortName(), b.ID, b.Nodes[0], b.Nodes[1], b.E, b.A, b.L, b.Cx, b.Cy)
}
