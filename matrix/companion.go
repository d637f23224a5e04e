// SPDX-License-Identifier: MIT

package matrix

import "fmt"

const opCompanion = "Companion"

// Companion builds the n×n companion matrix of the monic polynomial
//
//	x^n + c[0]·x^(n-1) + ... + c[n-1]
//
// where monic holds the n trailing coefficients (leading 1 omitted).
// Layout follows the common convention: first row is −c, ones on the
// subdiagonal. The matrix is upper Hessenberg by construction and its
// eigenvalues are exactly the polynomial roots.
//
// Errors: ErrInvalidDimensions (empty input), ErrNaNInf (non-finite entry).
// Complexity: O(n²) time and memory.
func Companion(monic []float64) (*Dense, error) {
	n := len(monic)
	if n == 0 {
		return nil, matrixErrorf(opCompanion, ErrInvalidDimensions)
	}
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCompanion, err)
	}
	for j, c := range monic {
		if isNonFinite(c) {
			return nil, matrixErrorf(opCompanion, fmt.Errorf("c[%d]: %w", j, ErrNaNInf))
		}
		m.data[j] = -c
	}
	for i := 1; i < n; i++ {
		m.data[i*n+i-1] = 1
	}

	return m, nil
}

// matrixErrorf wraps err with an operation tag, preserving the original
// error via %w. Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
