package truss

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/element"
	"github.com/notargets/MSATruss/partitions"
	"gonum.org/v1/gonum/mat"
)

// Input is the full problem statement supplied by the caller
type Input struct {
	Nodes         []element.Point    // N node coordinates
	Connectivity  [][2]int           // M element end-node pairs (IEN), 0-based
	Properties    []element.Material // M (E, A) pairs aligned with Connectivity
	Displacements dof.Vector         // 2N entries, known or unknown
	Forces        dof.Vector         // 2N entries, known or unknown
}

// Model is a validated truss ready to solve
type Model struct {
	in     Input
	cfg    Config
	layout *partitions.PartitionLayout

	// Populated on first assembly
	k    *mat.SymDense
	bars []*element.Bar

	// Populated by a successful Solve only
	solved bool
	u, f   []float64
	result *Result
}

// NewModel validates the input and returns a model. Shape errors are reported
// before material errors, and both before boundary condition errors. The input
// slices are copied.
func NewModel(in Input, cfg Config) (*Model, error) {
	var err error
	if cfg, err = cfg.withDefaults(); err != nil {
		return nil, err
	}
	if err = validateShapes(in); err != nil {
		return nil, err
	}
	if err = validateValues(in); err != nil {
		return nil, err
	}
	if conflicts := dof.Conflicts(in.Displacements, in.Forces); len(conflicts) > 0 {
		return nil, &InconsistentBoundaryConditionsError{Conflicts: conflicts}
	}

	layout, err := cfg.partitionBuilder(len(in.Connectivity)).BuildPartitions()
	if err != nil {
		return nil, fmt.Errorf("truss: %w", err)
	}

	m := &Model{
		in: Input{
			Nodes:         append([]element.Point(nil), in.Nodes...),
			Connectivity:  append([][2]int(nil), in.Connectivity...),
			Properties:    append([]element.Material(nil), in.Properties...),
			Displacements: in.Displacements.Clone(),
			Forces:        in.Forces.Clone(),
		},
		cfg:    cfg,
		layout: layout,
	}
	cfg.logf("Model: %d nodes, %d elements, %d DOFs, %d partitions\n",
		m.NumNodes(), m.NumElements(), m.NumDOF(), layout.NumPartitions)
	stats := layout.PartitionStatistics()
	cfg.logf("Partitions: %d-%d elements each, imbalance %.2f\n",
		stats.MinElements, stats.MaxElements, stats.Imbalance)
	return m, nil
}

func validateShapes(in Input) error {
	n, ne := len(in.Nodes), len(in.Connectivity)
	if n == 0 {
		return &ShapeMismatchError{Table: "nodes", Index: -1, Msg: "no nodes"}
	}
	if len(in.Properties) != ne {
		return &ShapeMismatchError{Table: "properties", Index: -1, Got: len(in.Properties), Want: ne}
	}
	if len(in.Displacements) != dof.PerNode*n {
		return &ShapeMismatchError{Table: "displacements", Index: -1, Got: len(in.Displacements), Want: dof.PerNode * n}
	}
	if len(in.Forces) != dof.PerNode*n {
		return &ShapeMismatchError{Table: "forces", Index: -1, Got: len(in.Forces), Want: dof.PerNode * n}
	}
	for e, c := range in.Connectivity {
		for _, node := range c {
			if node < 0 || node >= n {
				return &ShapeMismatchError{
					Table: "connectivity",
					Index: e,
					Msg:   fmt.Sprintf("element %d references node %d, valid range [0, %d)", e, node, n),
				}
			}
		}
	}
	return nil
}

func validateValues(in Input) error {
	for i, p := range in.Nodes {
		if !finite(p[0]) || !finite(p[1]) {
			return fmt.Errorf("node %d coordinates %v: %w", i, p, ErrNonFiniteValue)
		}
	}
	for e, p := range in.Properties {
		if !finite(p.E) || !finite(p.A) || p.E <= 0 || p.A <= 0 {
			return &InvalidMaterialError{Element: e, E: p.E, A: p.A}
		}
	}
	for _, vec := range []struct {
		name string
		v    dof.Vector
	}{{"displacement", in.Displacements}, {"force", in.Forces}} {
		for i, d := range vec.v {
			if x, ok := d.Float(); ok && !finite(x) {
				return fmt.Errorf("%s DOF %d = %v: %w", vec.name, i, x, ErrNonFiniteValue)
			}
		}
	}
	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func (m *Model) NumNodes() int    { return len(m.in.Nodes) }
func (m *Model) NumElements() int { return len(m.in.Connectivity) }
func (m *Model) NumDOF() int      { return dof.PerNode * len(m.in.Nodes) }
func (m *Model) Config() Config   { return m.cfg }
func (m *Model) Solved() bool     { return m.solved }

// Layout returns the element partitioning used for the stiffness build
func (m *Model) Layout() *partitions.PartitionLayout { return m.layout }

// Stiffness returns a copy of the global stiffness matrix, assembling it if
// needed. It does not require a successful Solve, so K of an unstable truss
// can still be inspected.
func (m *Model) Stiffness() (*mat.SymDense, error) {
	if err := m.assemble(); err != nil {
		return nil, err
	}
	k := mat.NewSymDense(m.k.SymmetricDim(), nil)
	k.CopySym(m.k)
	return k, nil
}

// Displacements returns the full merged displacement vector
func (m *Model) Displacements() ([]float64, error) {
	if !m.solved {
		return nil, ErrNotSolved
	}
	return append([]float64(nil), m.u...), nil
}

// Forces returns the full merged force vector, reactions included
func (m *Model) Forces() ([]float64, error) {
	if !m.solved {
		return nil, ErrNotSolved
	}
	return append([]float64(nil), m.f...), nil
}

// String returns a summary of the model and, once solved, its results
func (m *Model) String() string {
	var sb strings.Builder

	sb.WriteString("=== Truss Model Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Nodes: %d\n", m.NumNodes()))
	sb.WriteString(fmt.Sprintf("  Elements: %d\n", m.NumElements()))
	sb.WriteString(fmt.Sprintf("  DOFs: %d (%d prescribed displacements, %d free)\n",
		m.NumDOF(), len(m.in.Displacements.KnownIndices()), len(m.in.Displacements.UnknownIndices())))
	sb.WriteString(fmt.Sprintf("  Partitions: %d (%v)\n", m.layout.NumPartitions, m.cfg.Strategy))

	sb.WriteString("\n--- Nodes ---\n")
	for i, p := range m.in.Nodes {
		sb.WriteString(fmt.Sprintf("  %3d: (%g, %g)  u=(%v, %v)  f=(%v, %v)\n", i, p[0], p[1],
			m.in.Displacements[dof.Index(i, dof.X)], m.in.Displacements[dof.Index(i, dof.Y)],
			m.in.Forces[dof.Index(i, dof.X)], m.in.Forces[dof.Index(i, dof.Y)]))
	}

	sb.WriteString("\n--- Elements ---\n")
	for e, c := range m.in.Connectivity {
		p := m.in.Properties[e]
		sb.WriteString(fmt.Sprintf("  %3d: %d -> %d  E=%g A=%g\n", e, c[0], c[1], p.E, p.A))
	}

	if m.solved {
		sb.WriteString("\n")
		sb.WriteString(m.result.String())
	}
	return sb.String()
}
