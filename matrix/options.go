// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the eigenvalue kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIter caps QR iterations spent isolating one eigenvalue
	// (or one 2×2 block). Exceptional shifts fire at iterations 10 and 20.
	// Repeated complex pairs, as in (x²+1)², deflate only after several
	// dozen sweeps, so the budget sits well above the classic 30.
	DefaultMaxIter = 200

	// DefaultBalance toggles Parlett–Reinsch balancing before QR.
	DefaultBalance = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicMaxIterInvalid = "matrix: WithMaxIter: maxIter must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	maxIter int  // > 0; DefaultMaxIter
	balance bool // DefaultBalance
}

// WithMaxIter sets the per-eigenvalue QR iteration budget.
// Panics when maxIter <= 0.
func WithMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxIter }
}

// WithBalance enables balancing before the Hessenberg QR (default).
func WithBalance() Option { return func(o *Options) { o.balance = true } }

// WithNoBalance disables balancing; useful to compare raw QR behavior.
func WithNoBalance() Option { return func(o *Options) { o.balance = false } }

// gatherOptions applies user-provided Option setters on top of defaults.
// Setters run in order (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		maxIter: DefaultMaxIter,
		balance: DefaultBalance,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
