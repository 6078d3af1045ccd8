package truss

import (
	"errors"
	"math"

	"github.com/notargets/MSATruss/assembly"
	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/element"
	"github.com/notargets/MSATruss/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve assembles K and solves K·U = F for every unknown. It returns the
// solved displacements followed by the recovered reactions, each group in
// ascending DOF order. On error the model is left unsolved. Solving an
// already solved model returns the stored values.
func (m *Model) Solve() ([]float64, error) {
	if !m.solved {
		if err := m.solve(); err != nil {
			return nil, err
		}
	}
	return append([]float64(nil), m.result.Unknowns...), nil
}

// Result returns a copy of the detailed outcome of Solve, solving first if needed
func (m *Model) Result() (*Result, error) {
	if _, err := m.Solve(); err != nil {
		return nil, err
	}
	return m.result.clone(), nil
}

// assemble builds every bar and the global stiffness matrix once. K depends
// only on geometry and materials, so it is kept even when a later solve fails.
func (m *Model) assemble() error {
	if m.k != nil {
		return nil
	}

	// Phase 1: geometry and element stiffness, one goroutine per partition
	elems, err := assembly.BuildElements(m.layout, func(k int) (element.Element, error) {
		return element.NewBar(k, m.in.Connectivity[k], m.in.Nodes, m.in.Properties[k])
	})
	if err != nil {
		return err
	}
	bars := make([]*element.Bar, len(elems))
	for i, el := range elems {
		bars[i] = el.(*element.Bar)
	}

	// Phase 2: global assembly
	m.cfg.logf("Assembling %d elements into %d×%d stiffness\n", len(elems), m.NumDOF(), m.NumDOF())
	K, err := assembly.Assemble(m.NumDOF(), elems)
	if err != nil {
		return err
	}
	m.k, m.bars = K, bars
	return nil
}

func (m *Model) solve() error {
	if err := m.assemble(); err != nil {
		return err
	}
	K, bars := m.k, m.bars

	// Phase 3: partitioned solve
	part := dof.NewPartition(m.in.Displacements)
	a, b := part.Prescribed, part.Free
	m.cfg.logf("Partition: %d prescribed displacements, %d free\n", len(a), len(b))

	ua := m.in.Displacements.Gather(a)
	fb := m.in.Forces.Gather(b)
	ub, err := m.solveFree(K, a, b, ua, fb)
	if err != nil {
		return err
	}

	// Phase 4: merge and recover reactions F_a = K_aa·U_a + K_ab·U_b
	u := make([]float64, m.NumDOF())
	for i, d := range a {
		u[d] = ua[i]
	}
	for i, d := range b {
		u[d] = ub[i]
	}
	fv := mat.NewVecDense(len(u), nil)
	fv.MulVec(K, mat.NewVecDense(len(u), u))
	f := make([]float64, m.NumDOF())
	for i, d := range b {
		f[d] = fb[i]
	}
	fa := make([]float64, len(a))
	for i, d := range a {
		fa[i] = fv.AtVec(d)
		f[d] = fa[i]
	}

	res, err := utils.Residual(K, u, f)
	if err != nil {
		return err
	}

	result := &Result{
		Unknowns:                append(append([]float64(nil), ub...), fa...),
		UnknownDisplacementDOFs: b,
		ReactionDOFs:            a,
		AxialForces:             make([]float64, len(bars)),
		Stresses:                make([]float64, len(bars)),
		Residual:                mat.Norm(res, math.Inf(1)),
	}
	for e, bar := range bars {
		result.AxialForces[e] = bar.AxialForce(u)
		result.Stresses[e] = bar.Stress(u)
	}
	result.SumFx, result.SumFy = equilibrium(f)
	m.cfg.logf("Solved: residual %.3e, ΣFx %.3e, ΣFy %.3e\n", result.Residual, result.SumFx, result.SumFy)

	m.u, m.f, m.result = u, f, result
	m.solved = true
	return nil
}

// solveFree solves K_bb·U_b = F_b - K_ba·U_a
func (m *Model) solveFree(K *mat.SymDense, a, b []int, ua, fb []float64) ([]float64, error) {
	nb := len(b)
	if nb == 0 {
		return nil, nil
	}

	kbb := mat.NewDense(nb, nb, nil)
	rhs := mat.NewVecDense(nb, nil)
	for i, I := range b {
		for j, J := range b {
			kbb.Set(i, j, K.At(I, J))
		}
		r := fb[i]
		for j, J := range a {
			r -= K.At(I, J) * ua[j]
		}
		rhs.SetVec(i, r)
	}

	singular := func(cond float64, cause error) error {
		return &SingularSystemError{FreeDOFs: nb, Condition: cond, Limit: m.cfg.MaxCondition, Cause: cause}
	}

	var lu mat.LU
	lu.Factorize(kbb)
	cond := lu.Cond()
	m.cfg.logf("Reduced stiffness: %d×%d, condition %.3e\n", nb, nb, cond)
	if math.IsNaN(cond) || cond > m.cfg.MaxCondition {
		return nil, singular(cond, nil)
	}

	var ub mat.VecDense
	if err := lu.SolveVecTo(&ub, false, rhs); err != nil {
		var c mat.Condition
		if errors.As(err, &c) {
			return nil, singular(float64(c), err)
		}
		return nil, singular(cond, err)
	}
	out := make([]float64, nb)
	for i := range out {
		out[i] = ub.AtVec(i)
		if !finite(out[i]) {
			return nil, singular(cond, nil)
		}
	}
	return out, nil
}

// equilibrium sums the x and y components of a full force vector
func equilibrium(f []float64) (sumFx, sumFy float64) {
	fx := make([]float64, 0, len(f)/dof.PerNode)
	fy := make([]float64, 0, len(f)/dof.PerNode)
	for d, v := range f {
		if _, axis := dof.Node(d); axis == dof.X {
			fx = append(fx, v)
		} else {
			fy = append(fy, v)
		}
	}
	return floats.Sum(fx), floats.Sum(fy)
}

// Check returns the global force balance of a solved model. For a stable
// structure without unbalanced load both sums are zero within round-off.
func (m *Model) Check() (sumFx, sumFy float64, err error) {
	if !m.solved {
		return 0, 0, ErrNotSolved
	}
	sumFx, sumFy = equilibrium(m.f)
	return sumFx, sumFy, nil
}
