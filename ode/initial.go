// SPDX-License-Identifier: MIT

package ode

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvode/matrix"
)

// ErrInitialConditions is returned when the number of initial values does not
// match the number of basis terms.
var ErrInitialConditions = errors.New("ode: initial conditions do not match the solution order")

// wronskian returns W with W[j][i] = D^j term_i(0), the derivatives of every
// basis term at x = 0 up to order n−1.
func (s *Solution) wronskian() (*matrix.Dense, error) {
	n := len(s.Terms)
	if n == 0 {
		return nil, fmt.Errorf("%w: solution has no terms", ErrInitialConditions)
	}
	w, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		for i, t := range s.Terms {
			if err := w.Set(j, i, t.DerivativeAtZero(j)); err != nil {
				return nil, err
			}
		}
	}

	return w, nil
}

// Wronskian returns the Wronskian determinant of the basis at x = 0. It is
// non-zero exactly when the terms are linearly independent, which holds for
// any Solution built by Solve or FromRoots.
func (s *Solution) Wronskian() (float64, error) {
	w, err := s.wronskian()
	if err != nil {
		return 0, fmt.Errorf("ode: Wronskian: %w", err)
	}
	f, err := matrix.LU(w)
	if errors.Is(err, matrix.ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ode: Wronskian: %w", err)
	}

	return f.Det(), nil
}

// Constants returns C_1..C_n such that the solution satisfies
// y(0) = initial[0], y'(0) = initial[1], ..., y⁽ⁿ⁻¹⁾(0) = initial[n−1].
//
// The system W·c = initial is solved by matrix.SolveLinear (pivoted LU). A
// singular W means the basis has dependent terms and is reported as
// matrix.ErrSingular.
func (s *Solution) Constants(initial []float64) ([]float64, error) {
	if n := len(s.Terms); len(initial) != n {
		return nil, fmt.Errorf("%w: got %d values for %d terms", ErrInitialConditions, len(initial), n)
	}
	w, err := s.wronskian()
	if err != nil {
		return nil, fmt.Errorf("ode: Constants: %w", err)
	}
	c, err := matrix.SolveLinear(w, initial)
	if errors.Is(err, matrix.ErrSingular) {
		return nil, fmt.Errorf("ode: Constants: basis terms are linearly dependent at x = 0: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("ode: Constants: %w", err)
	}

	return c, nil
}

// InitialValues is the inverse of Constants: it returns y(0), y'(0), ...,
// y⁽ⁿ⁻¹⁾(0) for the given constants, i.e. W·constants.
func (s *Solution) InitialValues(constants []float64) ([]float64, error) {
	if n := len(s.Terms); len(constants) != n {
		return nil, fmt.Errorf("%w: got %d constants for %d terms", ErrInitialConditions, len(constants), n)
	}
	w, err := s.wronskian()
	if err != nil {
		return nil, fmt.Errorf("ode: InitialValues: %w", err)
	}
	y, err := matrix.MatVec(w, constants)
	if err != nil {
		return nil, fmt.Errorf("ode: InitialValues: %w", err)
	}

	return y, nil
}

// Eval returns y(x) = Σ constants[i]·term_i(x).
func (s *Solution) Eval(constants []float64, x float64) (float64, error) {
	if len(constants) != len(s.Terms) {
		return 0, fmt.Errorf("%w: got %d constants for %d terms", ErrInitialConditions, len(constants), len(s.Terms))
	}
	y := 0.0
	for i, t := range s.Terms {
		y += constants[i] * t.Eval(x)
	}

	return y, nil
}
