// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvode/matrix"
)

const opRoots = "Roots"

// initialAngle rotates the Durand–Kerner starting circle away from the real
// axis so that no starting point is real or conjugate to another one.
const initialAngle = 0.4

// collisionNudge separates two iterates that landed on the same point.
const collisionNudge = 1e-12

// Roots returns all len(coeffs)−1 complex roots of the polynomial.
// Implementation:
//   - Stage 1: Validate (ErrInvalidDegree, ErrNaNInf).
//   - Stage 2: Normalize to monic form.
//   - Stage 3: Dispatch on the configured Method.
//
// Errors:
//   - ErrInvalidDegree, ErrNaNInf from validation.
//   - ErrNoConvergence (wrapping the kernel error when there is one).
func Roots(coeffs []float64, opts ...Option) ([]complex128, error) {
	if err := Validate(coeffs); err != nil {
		return nil, fmt.Errorf("%s: %w", opRoots, err)
	}
	o := gatherOptions(opts...)
	monic := Monic(coeffs)

	var (
		rs  []complex128
		err error
	)
	switch o.method {
	case MethodDurandKerner:
		rs, err = durandKerner(monic, o)
	default:
		rs, err = companionRoots(monic, o)
	}
	if err != nil {
		return nil, fmt.Errorf("%s(%s): %w", opRoots, o.method, err)
	}

	return rs, nil
}

// companionRoots returns the eigenvalues of the companion matrix.
func companionRoots(monic []float64, o Options) ([]complex128, error) {
	c, err := matrix.Companion(monic)
	if err != nil {
		return nil, err
	}
	var mopts []matrix.Option
	if o.maxIter > 0 {
		mopts = append(mopts, matrix.WithMaxIter(o.maxIter))
	}
	vals, err := matrix.Eigenvalues(c, mopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoConvergence, err)
	}

	return vals, nil
}

// durandKerner runs the Weierstrass iteration on the monic polynomial
//
//	z^n + monic[0]·z^(n-1) + ... + monic[n-1].
//
// Iterates start on a circle of radius 1 + max|monic[i]|, which bounds every
// root. The sweep updates roots in place (Gauss–Seidel order) and stops when
// no root moves by tol or more. Clusters of repeated roots converge only
// linearly and may never reach tol; the last iterate is returned in that
// case, with accuracy limited to about eps^(1/m) for multiplicity m.
func durandKerner(monic []float64, o Options) ([]complex128, error) {
	n := len(monic)
	maxIter := o.maxIter
	if maxIter == 0 {
		maxIter = DefaultDurandKernerMaxIter
	}

	radius := 1.0
	for _, c := range monic {
		radius = math.Max(radius, 1+math.Abs(c))
	}
	zs := make([]complex128, n)
	for k := range zs {
		theta := 2*math.Pi*float64(k)/float64(n) + initialAngle
		zs[k] = cmplx.Rect(radius, theta)
	}

	var (
		i, j         int
		moved        float64
		denom, delta complex128
	)
	for iter := 0; iter < maxIter; iter++ {
		moved = 0
		for i = 0; i < n; i++ {
			denom = 1
			for j = 0; j < n; j++ {
				if j != i {
					denom *= zs[i] - zs[j]
				}
			}
			if denom == 0 {
				zs[i] += complex(collisionNudge, collisionNudge)
				denom = complex(collisionNudge, collisionNudge)
			}
			delta = evalMonic(monic, zs[i]) / denom
			zs[i] -= delta
			moved = math.Max(moved, cmplx.Abs(delta))
		}
		if moved < o.tol {
			break
		}
	}

	for i = range zs {
		if cmplx.IsNaN(zs[i]) || cmplx.IsInf(zs[i]) {
			return nil, fmt.Errorf("root %d diverged: %w", i, ErrNoConvergence)
		}
	}

	return zs, nil
}

// evalMonic evaluates the monic polynomial with implicit leading 1.
func evalMonic(monic []float64, z complex128) complex128 {
	acc := complex(1, 0)
	for _, c := range monic {
		acc = acc*z + complex(c, 0)
	}

	return acc
}
