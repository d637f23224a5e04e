// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the root-finding algorithm used by Roots.
type Method int

const (
	// MethodCompanion computes eigenvalues of the companion matrix
	// (balance → Hessenberg → Francis QR).
	MethodCompanion Method = iota

	// MethodDurandKerner runs the Weierstrass / Durand–Kerner simultaneous
	// iteration in complex arithmetic.
	MethodDurandKerner
)

// String returns the canonical lower-case method name.
func (m Method) String() string {
	switch m {
	case MethodCompanion:
		return "companion"
	case MethodDurandKerner:
		return "durand-kerner"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a user-facing name to a Method. Matching is
// case-insensitive; "weierstrass" and "dk" are accepted aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "companion", "eig", "eigen":
		return MethodCompanion, nil
	case "durand-kerner", "durandkerner", "dk", "weierstrass":
		return MethodDurandKerner, nil
	default:
		return 0, fmt.Errorf("ParseMethod(%q): %w", s, ErrUnknownMethod)
	}
}

// Defaults (single source of truth).
const (
	// DefaultMethod is the companion-matrix eigenvalue method.
	DefaultMethod = MethodCompanion

	// DefaultTolerance stops Durand–Kerner once no root moves more than this.
	DefaultTolerance = 1e-12

	// DefaultDurandKernerMaxIter bounds Durand–Kerner sweeps.
	DefaultDurandKernerMaxIter = 500
)

const (
	panicToleranceInvalid = "poly: WithTolerance: tol must be finite and > 0"
	panicMaxIterInvalid   = "poly: WithMaxIter: maxIter must be > 0"
	panicMethodInvalid    = "poly: WithMethod: unknown method"
)

// Option configures Roots.
type Option func(*Options)

// Options is the resolved configuration. maxIter == 0 means "method default".
type Options struct {
	method  Method
	tol     float64
	maxIter int
}

// WithMethod selects the algorithm. Panics on an undefined Method value.
func WithMethod(m Method) Option {
	if m != MethodCompanion && m != MethodDurandKerner {
		panic(panicMethodInvalid)
	}

	return func(o *Options) { o.method = m }
}

// WithTolerance sets the Durand–Kerner convergence threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIter bounds the iteration count: Durand–Kerner sweeps, or QR sweeps
// per eigenvalue for the companion method.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

func gatherOptions(user ...Option) Options {
	o := Options{method: DefaultMethod, tol: DefaultTolerance}
	for _, set := range user {
		set(&o)
	}

	return o
}
