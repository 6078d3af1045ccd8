package assembly

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/MSATruss/element"
	"github.com/notargets/MSATruss/partitions"
	"github.com/notargets/MSATruss/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var (
	refCoords = []element.Point{{0, 0}, {4000, 0}, {4000, 3000}, {8000, 3000}}
	refIEN    = [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	refAreas  = []float64{100, 200, 100, 200, 100}
)

func refBuilder(ien [][2]int, areas []float64) BuildFunc {
	return func(k int) (element.Element, error) {
		return element.NewBar(k, ien[k], refCoords, element.Material{E: 200000, A: areas[k]})
	}
}

func buildRef(t *testing.T, ien [][2]int, areas []float64, nparts int, strategy partitions.PartitionStrategy) *mat.SymDense {
	t.Helper()
	layout, err := (&partitions.PartitionBuilder{
		NumElements:   len(ien),
		NumPartitions: nparts,
		Strategy:      strategy,
	}).BuildPartitions()
	require.NoError(t, err)

	elems, err := BuildElements(layout, refBuilder(ien, areas))
	require.NoError(t, err)
	K, err := Assemble(2*len(refCoords), elems)
	require.NoError(t, err)
	return K
}

func TestAssembleReference(t *testing.T) {
	K := buildRef(t, refIEN, refAreas, 1, partitions.BlockPartition)

	r, c := K.Dims()
	require.Equal(t, 8, r)
	require.Equal(t, 8, c)
	assert.True(t, utils.IsSymmetric(K, 1e-12))

	// Node 0: horizontal bar k=5000 plus diagonal bar k=8000 at (0.8, 0.6)
	assert.InDelta(t, 10120.0, K.At(0, 0), 1e-9)
	assert.InDelta(t, 3840.0, K.At(0, 1), 1e-9)
	assert.InDelta(t, 3840.0, K.At(1, 0), 1e-9)
	assert.InDelta(t, 2880.0, K.At(1, 1), 1e-9)
	assert.InDelta(t, -5000.0, K.At(0, 2), 1e-9)
	assert.InDelta(t, -5000.0, K.At(2, 0), 1e-9)
	assert.InDelta(t, 0.0, K.At(0, 6), 1e-12)

	// Rigid translations are zero-energy modes
	for _, mode := range [][]float64{
		{1, 0, 1, 0, 1, 0, 1, 0},
		{0, 1, 0, 1, 0, 1, 0, 1},
	} {
		res, err := utils.Residual(K, mode, make([]float64, 8))
		require.NoError(t, err)
		assert.InDelta(t, 0.0, mat.Norm(res, math.Inf(1)), 1e-9)
	}
}

func TestAssembleOrderIndependent(t *testing.T) {
	base := buildRef(t, refIEN, refAreas, 1, partitions.BlockPartition)

	t.Run("PermutedElements", func(t *testing.T) {
		perm := []int{4, 2, 0, 3, 1}
		ien := make([][2]int, len(perm))
		areas := make([]float64, len(perm))
		for i, p := range perm {
			ien[i], areas[i] = refIEN[p], refAreas[p]
		}
		K := buildRef(t, ien, areas, 1, partitions.BlockPartition)
		assert.True(t, mat.EqualApprox(base, K, 1e-9))
	})

	t.Run("ReversedNodeOrder", func(t *testing.T) {
		ien := append([][2]int(nil), refIEN...)
		ien[1] = [2]int{2, 0}
		K := buildRef(t, ien, refAreas, 1, partitions.BlockPartition)
		assert.True(t, mat.EqualApprox(base, K, 1e-9))
	})

	t.Run("Parallel", func(t *testing.T) {
		for _, s := range []partitions.PartitionStrategy{partitions.BlockPartition, partitions.RoundRobin} {
			K := buildRef(t, refIEN, refAreas, 3, s)
			assert.True(t, mat.EqualApprox(base, K, 1e-9), "strategy %v", s)
		}
	})
}

func TestBuildElementsError(t *testing.T) {
	coords := []element.Point{{0, 0}, {1, 0}, {1, 0}}
	ien := [][2]int{{0, 1}, {1, 2}, {2, 1}, {0, 2}}
	layout, err := (&partitions.PartitionBuilder{
		NumElements:   len(ien),
		NumPartitions: 4,
		Strategy:      partitions.RoundRobin,
	}).BuildPartitions()
	require.NoError(t, err)

	_, err = BuildElements(layout, func(k int) (element.Element, error) {
		return element.NewBar(k, ien[k], coords, element.Material{E: 1, A: 1})
	})
	require.Error(t, err)
	var de *element.DegenerateElementError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Element, "lowest failing element is reported")
	assert.Contains(t, err.Error(), "partition 1:")
}

type badElement struct{ *element.Bar }

func (badElement) DOFMap() []int { return []int{0, 1, 2, 99} }

func TestScatterBadDOF(t *testing.T) {
	b, err := element.NewBar(0, [2]int{0, 1}, refCoords, element.Material{E: 1, A: 1})
	require.NoError(t, err)

	_, err = Assemble(8, []element.Element{badElement{b}})
	assert.Error(t, err)

	_, err = Assemble(0, nil)
	assert.Error(t, err)
}
