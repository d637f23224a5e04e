// SPDX-License-Identifier: MIT

package roots

import "math"

const (
	// DefaultTolerance is τ: roots closer than this are one root, and a root
	// whose |imag| is below it is real. It is NOT scaled by coefficient
	// magnitude or degree; callers with large or tightly clustered spectra
	// should pick their own value.
	DefaultTolerance = 1e-4

	// DefaultNearMissFactor flags distinct groups closer than 10·τ.
	DefaultNearMissFactor = 10.0
)

const (
	panicToleranceInvalid = "roots: WithTolerance: tau must be finite and > 0"
	panicFactorInvalid    = "roots: WithNearMissFactor: factor must be finite and >= 0"
)

// Option configures Classify.
type Option func(*Options)

// Options holds the resolved classifier configuration.
type Options struct {
	tolerance      float64
	nearMissFactor float64
}

// WithTolerance sets τ. Panics unless 0 < tau < +Inf.
func WithTolerance(tau float64) Option {
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tau }
}

// WithNearMissFactor sets the near-miss radius as a multiple of τ.
// Zero disables the scan.
func WithNearMissFactor(f float64) Option {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		panic(panicFactorInvalid)
	}

	return func(o *Options) { o.nearMissFactor = f }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		tolerance:      DefaultTolerance,
		nearMissFactor: DefaultNearMissFactor,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
