package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSymmetry(t *testing.T) {
	sym := mat.NewDense(3, 3, []float64{
		2, -1, 0,
		-1, 2, -1,
		0, -1, 2,
	})
	assert.True(t, IsSymmetric(sym, 1e-12))
	assert.Equal(t, 0.0, MaxAsymmetry(sym))

	sym.Set(0, 2, 1e-3)
	assert.False(t, IsSymmetric(sym, 1e-9))
	assert.InDelta(t, 1e-3, MaxAsymmetry(sym), 1e-15)

	rect := mat.NewDense(2, 3, nil)
	assert.False(t, IsSymmetric(rect, 1))
	assert.True(t, math.IsInf(MaxAsymmetry(rect), 1))
}

func TestResidual(t *testing.T) {
	k := mat.NewDense(2, 2, []float64{
		2, -1,
		-1, 2,
	})
	r, err := Residual(k, []float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Norm(r, math.Inf(1)))

	r, err = Residual(k, []float64{1, 0}, []float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -1}, r.RawVector().Data)
	assert.Equal(t, 2.0, mat.Norm(r, math.Inf(1)))

	_, err = Residual(k, []float64{1}, []float64{1, 1})
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := FormatMatrix("K", mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	assert.True(t, strings.HasPrefix(out, "K [2×2] = [\n"))
	assert.Equal(t, 4, strings.Count(out, "\n"))

	out = FormatVector([]string{"ux1"}, []float64{1.5, -2})
	assert.Contains(t, out, "ux1")
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "1.5")
}
