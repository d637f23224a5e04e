// SPDX-License-Identifier: MIT
package ode_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/katalvlaran/lvode/ode"
	"github.com/katalvlaran/lvode/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// scenarios are the canonical end-to-end cases.
var scenarios = []struct {
	name   string
	coeffs []float64
	want   string
}{
	{"distinct reals", []float64{1, -3, 2}, "y(x) = C_1e^(2.0x) + C_2e^(1.0x)"},
	{"double real", []float64{1, -4, 4}, "y(x) = C_1e^(2.0x) + C_2xe^(2.0x)"},
	{"pure oscillation", []float64{1, 0, 4}, "y(x) = C_1cos(2.0x) + C_2sin(2.0x)"},
	{"triple real", []float64{1, -6, 12, -8}, "y(x) = C_1e^(2.0x) + C_2xe^(2.0x) + C_3x^2e^(2.0x)"},
	{
		"double conjugate pair",
		[]float64{1, 0, 2, 0, 1},
		"y(x) = C_1cos(1.0x) + C_2sin(1.0x) + C_3xcos(1.0x) + C_4xsin(1.0x)",
	},
}

func TestSolve_Scenarios(t *testing.T) {
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := ode.Solve(tc.coeffs)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sol.String())
			assert.Len(t, sol.Roots, len(tc.coeffs)-1)
			assert.Len(t, sol.Terms, len(tc.coeffs)-1)
			assert.Equal(t, tc.coeffs, sol.Coefficients)
		})
	}
}

// TestSolve_DurandKerner runs the iterative method over every canonical
// scenario plus a damped oscillation.
func TestSolve_DurandKerner(t *testing.T) {
	cases := append(scenarios[:len(scenarios):len(scenarios)], struct {
		name   string
		coeffs []float64
		want   string
	}{"damped oscillation", []float64{1, 2, 5}, "y(x) = C_1e^(-1.0x)cos(2.0x) + C_2e^(-1.0x)sin(2.0x)"})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := ode.Solve(tc.coeffs, ode.WithMethod(poly.MethodDurandKerner))
			require.NoError(t, err)
			assert.Equal(t, tc.want, sol.String())
		})
	}
}

// TestSolve_TripleConjugatePair: (x²+1)³ needs the companion QR to deflate
// three coincident conjugate pairs.
func TestSolve_TripleConjugatePair(t *testing.T) {
	sol, err := ode.Solve([]float64{1, 0, 3, 0, 3, 0, 1})
	require.NoError(t, err)
	assert.Equal(t,
		"y(x) = C_1cos(1.0x) + C_2sin(1.0x) + C_3xcos(1.0x) + C_4xsin(1.0x) + "+
			"C_5x^2cos(1.0x) + C_6x^2sin(1.0x)",
		sol.String())
}

func TestSolve_InvalidInput(t *testing.T) {
	_, err := ode.Solve([]float64{5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, poly.ErrInvalidDegree))

	_, err = ode.Solve(nil)
	assert.ErrorIs(t, err, poly.ErrInvalidDegree)
}

// TestSolve_Precision threads the precision option down to rendering.
func TestSolve_Precision(t *testing.T) {
	sol, err := ode.Solve([]float64{3, -1}, ode.WithPrecision(3))
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(0.333x)", sol.String())
}

// TestFromRoots_Diagnostics checks that tolerance trouble is logged as warnings.
func TestFromRoots_Diagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	sol := ode.FromRoots([]complex128{2, 2.0002}, ode.WithLogger(log))
	assert.Equal(t, "y(x) = C_1e^(2.0002x) + C_2e^(2.0x)", sol.String())
	require.Equal(t, 1, logs.FilterMessage("distinct root groups close to the tolerance").Len())

	sol = ode.FromRoots([]complex128{complex(1, 1)}, ode.WithLogger(log))
	assert.Equal(t, "y(x) = ", sol.String())
	entries := logs.FilterMessage("conjugate group has an odd root count").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["total_count"])

	// merging the pair with a looser tolerance silences the near-miss warning
	before := logs.Len()
	ode.FromRoots([]complex128{2, 2.0002}, ode.WithLogger(log), ode.WithTolerance(1e-3))
	assert.Equal(t, before, logs.Len())
}

func TestSolution_MarshalJSON(t *testing.T) {
	sol := ode.FromRoots([]complex128{complex(0, 2), complex(0, -2)})
	raw, err := json.Marshal(sol)
	require.NoError(t, err)

	var decoded struct {
		Roots      [][2]float64 `json:"roots"`
		Expression string       `json:"expression"`
		Terms      []struct {
			Index int    `json:"index"`
			Trig  string `json:"trig"`
		} `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, [][2]float64{{0, 2}, {0, -2}}, decoded.Roots)
	assert.Equal(t, "y(x) = C_1cos(2.0x) + C_2sin(2.0x)", decoded.Expression)
	require.Len(t, decoded.Terms, 2)
	assert.Equal(t, "cos", decoded.Terms[0].Trig)
	assert.Equal(t, "sin", decoded.Terms[1].Trig)
}

func TestSolveBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	eqs := make([]ode.Equation, 0, len(scenarios)+1)
	for _, tc := range scenarios {
		eqs = append(eqs, ode.Equation{Name: tc.name, Coefficients: tc.coeffs})
	}
	eqs = append(eqs, ode.Equation{Name: "constant", Coefficients: []float64{7}})

	results, err := ode.SolveBatch(context.Background(), eqs, ode.WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, results, len(eqs))
	for i, tc := range scenarios {
		require.NoError(t, results[i].Err, tc.name)
		assert.Equal(t, tc.name, results[i].Equation.Name)
		assert.Equal(t, tc.want, results[i].Solution.String())
	}
	last := results[len(results)-1]
	assert.Nil(t, last.Solution)
	assert.ErrorIs(t, last.Err, poly.ErrInvalidDegree)
}

func TestSolveBatch_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := ode.SolveBatch(ctx, []ode.Equation{{Name: "a", Coefficients: []float64{1, -1}}})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Solution)
}

func TestWithConcurrency_Panics(t *testing.T) {
	require.Panics(t, func() { ode.WithConcurrency(0) })
}
