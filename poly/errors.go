// SPDX-License-Identifier: MIT
// Package poly: sentinel error set.
// Callers match with errors.Is; messages are prefixed with "poly: ".

package poly

import "errors"

var (
	// ErrInvalidDegree is returned for coefficient lists that do not describe
	// a polynomial of degree >= 1: fewer than two coefficients, or a zero
	// leading coefficient.
	ErrInvalidDegree = errors.New("poly: invalid degree")

	// ErrNaNInf signals a NaN or ±Inf coefficient.
	ErrNaNInf = errors.New("poly: NaN or Inf coefficient")

	// ErrUnknownMethod is returned by ParseMethod for unrecognized names.
	ErrUnknownMethod = errors.New("poly: unknown root-finding method")

	// ErrNoConvergence is returned when the root finder fails to produce a
	// finite set of roots (QR budget exhausted or iteration diverged).
	ErrNoConvergence = errors.New("poly: root finder did not converge")
)
