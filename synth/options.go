// SPDX-License-Identifier: MIT

package synth

import "math"

const (
	// DefaultPrecision is the number of decimals kept when rendering α and β.
	DefaultPrecision = 4

	// DefaultExpTolerance suppresses e^(αx) on conjugate-pair terms when
	// |α| does not exceed it. Real-root terms always carry the exponential.
	DefaultExpTolerance = 1e-4

	// MaxPrecision is the largest precision accepted by WithPrecision.
	MaxPrecision = 15
)

const (
	panicPrecisionInvalid    = "synth: WithPrecision: precision must be in [0, 15]"
	panicExpToleranceInvalid = "synth: WithExpTolerance: tolerance must be finite and >= 0"
)

// Option configures Terms and Format.
type Option func(*Options)

// Options holds the resolved synthesizer configuration.
type Options struct {
	precision    int
	expTolerance float64
}

// WithPrecision sets the rendering precision in decimals.
func WithPrecision(p int) Option {
	if p < 0 || p > MaxPrecision {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = p }
}

// WithExpTolerance sets the |α| threshold for the conjugate-pair exponential.
func WithExpTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicExpToleranceInvalid)
	}

	return func(o *Options) { o.expTolerance = tol }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		precision:    DefaultPrecision,
		expTolerance: DefaultExpTolerance,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
