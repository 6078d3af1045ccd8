package utils

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// MaxAsymmetry returns max |m[i,j] - m[j,i]| over a square matrix
func MaxAsymmetry(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r != c {
		return math.Inf(1)
	}
	var worst float64
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if d := math.Abs(m.At(i, j) - m.At(j, i)); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// IsSymmetric reports whether every m[i,j] matches m[j,i] within tol (absolute or relative)
func IsSymmetric(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if !scalar.EqualWithinAbsOrRel(m.At(i, j), m.At(j, i), tol, tol) {
				return false
			}
		}
	}
	return true
}

// Residual returns r = K·u - f
func Residual(k mat.Matrix, u, f []float64) (*mat.VecDense, error) {
	r, c := k.Dims()
	if c != len(u) || r != len(f) {
		return nil, fmt.Errorf("residual: K is %d×%d, len(u)=%d, len(f)=%d", r, c, len(u), len(f))
	}
	res := mat.NewVecDense(r, nil)
	res.MulVec(k, mat.NewVecDense(len(u), u))
	res.SubVec(res, mat.NewVecDense(len(f), f))
	return res, nil
}

// FormatMatrix formats a matrix as a labelled table of rows
func FormatMatrix(name string, m mat.Matrix) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s [%d×%d] = [\n", name, rows, cols))

	for i := 0; i < rows; i++ {
		sb.WriteString("    [")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%14.6e", m.At(i, j)))
		}
		sb.WriteString("]\n")
	}
	sb.WriteString("]\n")

	return sb.String()
}

// FormatVector formats labelled values one per line
func FormatVector(labels []string, vals []float64) string {
	var sb strings.Builder
	for i, v := range vals {
		label := fmt.Sprintf("[%d]", i)
		if i < len(labels) {
			label = labels[i]
		}
		sb.WriteString(fmt.Sprintf("  %-8s %16.8g\n", label, v))
	}
	return sb.String()
}
