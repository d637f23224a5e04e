// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const (
	opLU          = "LU"
	opSolveLinear = "SolveLinear"
	opMatVec      = "MatVec"
)

// LUFactors is a row-pivoted Doolittle factorization P·A = L·U stored
// compactly: U on and above the diagonal of lu, the unit-lower L strictly
// below it. Perm[i] is the row of A that ended up in row i.
type LUFactors struct {
	n    int
	lu   []float64
	Perm []int
}

// LU factorizes a square matrix with partial pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square, finite); copy into a flat buffer.
//   - Stage 2: For each column k pick the row with the largest |a(i,k)|,
//     swap it into place, then eliminate below the pivot.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf.
//   - ErrSingular if a whole pivot column is exactly zero.
//
// Complexity: Time O(n³), Space O(n²).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := d.r
	a := d.data
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	var pivot, factor float64
	for k = 0; k < n; k++ {
		// Stage 2a: partial pivot search in column k
		p = k
		pivot = math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a[i*n+k]); v > pivot {
				p, pivot = i, v
			}
		}
		if pivot == 0 {
			return nil, matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		// Stage 2b: eliminate below the pivot, storing multipliers in place
		for i = k + 1; i < n; i++ {
			factor = a[i*n+k] / a[k*n+k]
			a[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= factor * a[k*n+j]
			}
		}
	}

	return &LUFactors{n: n, lu: a, Perm: perm}, nil
}

// Solve returns x with A·x = b using forward and back substitution.
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolveLinear, err)
	}
	n := f.n
	x := make([]float64, n)
	var i, j int
	var sum float64

	// L·y = P·b
	for i = 0; i < n; i++ {
		sum = b[f.Perm[i]]
		for j = 0; j < i; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum
	}
	// U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return x, nil
}

// Det returns the determinant from the factorization.
func (f *LUFactors) Det() float64 {
	det := 1.0
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}
	// each transposition in Perm flips the sign
	seen := make([]bool, f.n)
	for i := 0; i < f.n; i++ {
		if seen[i] {
			continue
		}
		cycle := 0
		for j := i; !seen[j]; j = f.Perm[j] {
			seen[j] = true
			cycle++
		}
		if cycle%2 == 0 {
			det = -det
		}
	}

	return det
}

// SolveLinear solves the square system a·x = b.
// Errors: those of LU, plus ErrDimensionMismatch when len(b) != a.Rows().
func SolveLinear(a Matrix, b []float64) ([]float64, error) {
	f, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolveLinear, err)
	}

	return f.Solve(b)
}

// MatVec computes y = m·x.
// Contract: m non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows())

	if d, ok := m.(*Dense); ok {
		var acc float64
		for i := 0; i < d.r; i++ {
			acc = 0
			base := i * d.c
			for j := 0; j < d.c; j++ {
				if x[j] != 0 {
					acc += d.data[base+j] * x[j]
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += v * x[j]
		}
	}

	return y, nil
}
