// SPDX-License-Identifier: MIT

package ode

import (
	"runtime"

	"github.com/katalvlaran/lvode/poly"
	"github.com/katalvlaran/lvode/roots"
	"github.com/katalvlaran/lvode/synth"
	"go.uber.org/zap"
)

const panicConcurrencyInvalid = "ode: WithConcurrency: n must be > 0"

// Option configures Solve, FromRoots and SolveBatch. Each option forwards to
// the stage that owns the setting; invalid values panic in that stage's
// constructor.
type Option func(*Options)

// Options holds per-stage option lists plus facade settings.
type Options struct {
	poly        []poly.Option
	roots       []roots.Option
	synth       []synth.Option
	logger      *zap.Logger
	concurrency int
}

// WithTolerance sets the classifier tolerance τ.
func WithTolerance(tau float64) Option {
	set := roots.WithTolerance(tau)
	return func(o *Options) { o.roots = append(o.roots, set) }
}

// WithNearMissFactor sets the near-miss radius as a multiple of τ (0 disables).
func WithNearMissFactor(f float64) Option {
	set := roots.WithNearMissFactor(f)
	return func(o *Options) { o.roots = append(o.roots, set) }
}

// WithExpTolerance sets the |α| threshold for conjugate-pair exponentials.
func WithExpTolerance(tol float64) Option {
	set := synth.WithExpTolerance(tol)
	return func(o *Options) { o.synth = append(o.synth, set) }
}

// WithPrecision sets the number of decimals in the rendered expression.
func WithPrecision(p int) Option {
	set := synth.WithPrecision(p)
	return func(o *Options) { o.synth = append(o.synth, set) }
}

// WithMethod selects the root-finding method.
func WithMethod(m poly.Method) Option {
	set := poly.WithMethod(m)
	return func(o *Options) { o.poly = append(o.poly, set) }
}

// WithSolverTolerance sets the Durand–Kerner convergence threshold.
func WithSolverTolerance(tol float64) Option {
	set := poly.WithTolerance(tol)
	return func(o *Options) { o.poly = append(o.poly, set) }
}

// WithMaxIter bounds the root finder's iterations.
func WithMaxIter(n int) Option {
	set := poly.WithMaxIter(n)
	return func(o *Options) { o.poly = append(o.poly, set) }
}

// WithLogger routes diagnostics (unbalanced conjugate groups, near misses,
// per-solve debug lines) to l. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds the number of equations SolveBatch works on at once.
func WithConcurrency(n int) Option {
	if n <= 0 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.concurrency = n }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		logger:      zap.NewNop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
