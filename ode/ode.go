// SPDX-License-Identifier: MIT

// Package ode computes the general closed-form solution of a linear,
// homogeneous, constant-coefficient ODE from the coefficients of its
// characteristic polynomial.
//
// Pipeline:
//
//	coefficients ─▶ poly.Roots ─▶ roots.Classify ─▶ synth.Terms ─▶ "y(x) = ..."
//
// Example:
//
//	sol, err := ode.Solve([]float64{1, -4, 4}) // y'' − 4y' + 4y = 0
//	// sol.String() == "y(x) = C_1e^(2.0x) + C_2xe^(2.0x)"
//
// Only the root-finding collaborator can fail (poly.ErrInvalidDegree,
// poly.ErrNaNInf, poly.ErrNoConvergence); classification and synthesis are
// total. Output is deterministic for a given input, tolerance and method,
// but near-equal roots at the boundary of τ may not match the exact symbolic
// answer. Such cases are logged as warnings, never patched.
package ode

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvode/poly"
	"github.com/katalvlaran/lvode/roots"
	"github.com/katalvlaran/lvode/synth"
	"go.uber.org/zap"
)

// Solution carries every intermediate of one solve.
type Solution struct {
	Coefficients   []float64            `json:"coefficients,omitempty"`
	Roots          []complex128         `json:"-"`
	Classification roots.Classification `json:"classification"`
	Terms          []synth.Term         `json:"terms"`
	Expression     string               `json:"expression"`
}

// String returns the rendered expression.
func (s *Solution) String() string { return s.Expression }

// MarshalJSON encodes Roots as [re, im] pairs, which encoding/json cannot do
// for complex128 on its own.
func (s *Solution) MarshalJSON() ([]byte, error) {
	type plain Solution
	pairs := make([][2]float64, len(s.Roots))
	for i, r := range s.Roots {
		pairs[i] = [2]float64{real(r), imag(r)}
	}

	return json.Marshal(struct {
		*plain
		Roots [][2]float64 `json:"roots"`
	}{plain: (*plain)(s), Roots: pairs})
}

// Solve finds the roots of coeffs (highest degree first) and synthesizes the
// general solution.
func Solve(coeffs []float64, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)
	rs, err := poly.Roots(coeffs, o.poly...)
	if err != nil {
		o.logger.Debug("root finding failed", zap.Float64s("coefficients", coeffs), zap.Error(err))
		return nil, fmt.Errorf("ode: Solve: %w", err)
	}
	sol := fromRoots(rs, o)
	sol.Coefficients = slices.Clone(coeffs)

	return sol, nil
}

// FromRoots skips root finding and synthesizes the solution for an already
// computed root set. It never fails.
func FromRoots(rs []complex128, opts ...Option) *Solution {
	return fromRoots(rs, gatherOptions(opts...))
}

func fromRoots(rs []complex128, o Options) *Solution {
	c := roots.Classify(rs, o.roots...)
	terms := synth.Terms(c, o.synth...)
	sol := &Solution{
		Roots:          slices.Clone(rs),
		Classification: c,
		Terms:          terms,
		Expression:     synth.Format(terms, o.synth...),
	}
	report(o.logger, sol)

	return sol
}

// report logs the tolerance diagnostics of a classification.
func report(log *zap.Logger, sol *Solution) {
	c := sol.Classification
	log.Debug("classified roots",
		zap.Int("roots", len(sol.Roots)),
		zap.Int("real_groups", len(c.Real)),
		zap.Int("complex_groups", len(c.Complex)),
		zap.Int("terms", len(sol.Terms)),
	)
	for _, g := range c.Unbalanced() {
		log.Warn("conjugate group has an odd root count",
			zap.Float64("alpha", g.Alpha),
			zap.Float64("beta", g.Beta),
			zap.Int("total_count", g.TotalCount),
			zap.Int("pairs_emitted", g.PairMultiplicity()),
		)
	}
	for _, nm := range c.NearMisses {
		log.Warn("distinct root groups close to the tolerance",
			zap.String("a", fmt.Sprint(nm.A)),
			zap.String("b", fmt.Sprint(nm.B)),
			zap.Float64("distance", nm.Distance),
		)
	}
}
