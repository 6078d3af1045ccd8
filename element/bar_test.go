package element

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 Point
		want   Geometry
	}{
		{"horizontal", Point{0, 0}, Point{4000, 0}, Geometry{L: 4000, Cx: 1, Cy: 0}},
		{"vertical", Point{4000, 0}, Point{4000, 3000}, Geometry{L: 3000, Cx: 0, Cy: 1}},
		{"diagonal", Point{0, 0}, Point{4000, 3000}, Geometry{L: 5000, Cx: 0.8, Cy: 0.6}},
		{"reversed", Point{3, 4}, Point{0, 0}, Geometry{L: 5, Cx: -0.6, Cy: -0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGeometry(tt.p0, tt.p1)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.L, g.L, 1e-12)
			assert.InDelta(t, tt.want.Cx, g.Cx, 1e-12)
			assert.InDelta(t, tt.want.Cy, g.Cy, 1e-12)
		})
	}

	_, err := ComputeGeometry(Point{1, 1}, Point{1, 1})
	assert.Error(t, err)
}

func TestBarStiffness(t *testing.T) {
	coords := []Point{{0, 0}, {3, 4}}
	b, err := NewBar(0, [2]int{0, 1}, coords, Material{E: 10, A: 2})
	require.NoError(t, err)

	// k = EA/L = 4, t = [0.6, 0.8, -0.6, -0.8]
	want := [4][4]float64{
		{1.44, 1.92, -1.44, -1.92},
		{1.92, 2.56, -1.92, -2.56},
		{-1.44, -1.92, 1.44, 1.92},
		{-1.92, -2.56, 1.92, 2.56},
	}
	k := b.Stiffness()
	r, c := k.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i][j], k.At(i, j), 1e-12, "k[%d][%d]", i, j)
			assert.Equal(t, k.At(i, j), k.At(j, i))
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, b.DOFMap())
	assert.Equal(t, 4.0, b.Axial())
	assert.Equal(t, D2, b.Dimensions())
	assert.Equal(t, Line, b.GeometryType())
}

func TestBarNodeOrderInvariance(t *testing.T) {
	coords := []Point{{0, 0}, {4000, 0}, {4000, 3000}}
	fwd, err := NewBar(0, [2]int{0, 2}, coords, Material{E: 200000, A: 200})
	require.NoError(t, err)
	rev, err := NewBar(0, [2]int{2, 0}, coords, Material{E: 200000, A: 200})
	require.NoError(t, err)

	// The reversed bar lists node 2 first, so its local rows are swapped in pairs
	fm, rm := fwd.DOFMap(), rev.DOFMap()
	global := func(b *Bar, dofs []int) map[[2]int]float64 {
		out := make(map[[2]int]float64)
		for i, I := range dofs {
			for j, J := range dofs {
				out[[2]int{I, J}] = b.Stiffness().At(i, j)
			}
		}
		return out
	}
	gf, gr := global(fwd, fm), global(rev, rm)
	require.Len(t, gr, len(gf))
	for key, v := range gf {
		assert.InDelta(t, v, gr[key], 1e-9, "entry %v", key)
	}
}

func TestBarAxialForce(t *testing.T) {
	coords := []Point{{0, 0}, {4000, 0}}
	b, err := NewBar(0, [2]int{0, 1}, coords, Material{E: 200000, A: 100})
	require.NoError(t, err)

	// Stretch by 1 mm: N = EA/L * 1 = 5000
	u := []float64{0, 0, 1, 0}
	assert.InDelta(t, 5000.0, b.AxialForce(u), 1e-9)
	assert.InDelta(t, 50.0, b.Stress(u), 1e-9)

	// Transverse motion produces no axial force
	u = []float64{0, 0, 0, 1}
	assert.InDelta(t, 0.0, b.AxialForce(u), 1e-12)
}

func TestDegenerateBar(t *testing.T) {
	coords := []Point{{1, 2}, {1, 2}}
	_, err := NewBar(3, [2]int{0, 1}, coords, Material{E: 1, A: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateElement))

	var de *DegenerateElementError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 3, de.Element)
	assert.Equal(t, [2]int{0, 1}, de.Nodes)

	_, err = NewBar(0, [2]int{0, 0}, coords, Material{E: 1, A: 1})
	assert.ErrorIs(t, err, ErrDegenerateElement)

	_, err = NewBar(0, [2]int{0, 5}, coords, Material{E: 1, A: 1})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrDegenerateElement))

	_, err = ComputeGeometry(Point{0, 0}, Point{math.Inf(1), 0})
	assert.Error(t, err)
}
