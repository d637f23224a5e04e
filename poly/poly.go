// SPDX-License-Identifier: MIT

// Package poly is the polynomial-root collaborator of the ODE solver.
//
// Coefficients are ordered highest degree first, so []float64{1, -3, 2}
// denotes r² − 3r + 2. Roots returns every root as a complex128; repeated
// roots are reported once per multiplicity and are NOT merged here, that is
// the classifier's job.
//
// Two methods are available:
//   - MethodCompanion (default): eigenvalues of the companion matrix.
//   - MethodDurandKerner: simultaneous Weierstrass iteration.
//
// Malformed input (degree < 1, zero leading coefficient, non-finite values)
// is rejected here with ErrInvalidDegree / ErrNaNInf so that downstream
// stages can be total functions.
package poly

import (
	"fmt"
	"math"
)

// Validate checks that coeffs describe a polynomial of degree >= 1 with
// finite coefficients.
func Validate(coeffs []float64) error {
	if len(coeffs) < 2 {
		return fmt.Errorf("Validate: %d coefficient(s): %w", len(coeffs), ErrInvalidDegree)
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("Validate: coefficient %d: %w", i, ErrNaNInf)
		}
	}
	if coeffs[0] == 0 {
		return fmt.Errorf("Validate: leading coefficient is zero: %w", ErrInvalidDegree)
	}

	return nil
}

// Degree returns len(coeffs)−1, or −1 for an empty slice. It does not
// validate the leading coefficient.
func Degree(coeffs []float64) int {
	return len(coeffs) - 1
}

// Eval evaluates the polynomial at z using Horner's scheme.
func Eval(coeffs []float64, z complex128) complex128 {
	var acc complex128
	for _, c := range coeffs {
		acc = acc*z + complex(c, 0)
	}

	return acc
}

// Monic divides every coefficient by the leading one and drops it, returning
// the n trailing coefficients of the monic polynomial.
// Assumes Validate(coeffs) == nil.
func Monic(coeffs []float64) []float64 {
	lead := coeffs[0]
	out := make([]float64, len(coeffs)-1)
	for i, c := range coeffs[1:] {
		out[i] = c / lead
	}

	return out
}
