// SPDX-License-Identifier: MIT

// Package roots classifies the raw, numerically noisy roots of a
// characteristic polynomial into real groups and complex-conjugate groups,
// each carrying its multiplicity.
//
// Algorithm (greedy clustering over an index arena):
//  1. Walk roots in input order, skipping claimed indices.
//  2. The current root r₁ claims every later unclaimed r₂ with |r₁−r₂| < τ
//     (distance in the complex plane); the cluster size is the multiplicity.
//  3. |Im r₁| < τ → RealGroup(Re r₁, size).
//  4. Otherwise fold the cluster into the ComplexGroup whose (α, β) match
//     (Re r₁, |Im r₁|) within τ, or start a new one. Solvers return the
//     +iβ and −iβ branches as separate clusters; this step re-joins them.
//
// Classify is total: it never returns an error and never panics on NaN/Inf
// input, which simply produces singleton groups. Complexity O(N²).
//
// Tolerance trade-off: a τ that is too small under-merges high-order
// repeated roots (spurious extra groups with near-identical values); a τ
// that is too large merges distinct nearby roots. Both are reported through
// Classification.NearMisses and Classification.Unbalanced rather than
// corrected.
package roots

import (
	"math"
	"math/cmplx"
)

// Classify groups rs by proximity. See the package documentation.
func Classify(rs []complex128, opts ...Option) Classification {
	o := gatherOptions(opts...)
	tau := o.tolerance

	var out Classification
	claimed := make([]bool, len(rs))
	for i, r1 := range rs {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		mult := 1
		for j := i + 1; j < len(rs); j++ {
			if !claimed[j] && cmplx.Abs(r1-rs[j]) < tau {
				claimed[j] = true
				mult++
			}
		}

		alpha, beta := real(r1), imag(r1)
		if math.Abs(beta) < tau {
			out.Real = append(out.Real, RealGroup{Value: alpha, Multiplicity: mult})
			continue
		}
		beta = math.Abs(beta)
		if k := findComplex(out.Complex, alpha, beta, tau); k >= 0 {
			out.Complex[k].TotalCount += mult
			continue
		}
		out.Complex = append(out.Complex, ComplexGroup{Alpha: alpha, Beta: beta, TotalCount: mult})
	}

	if o.nearMissFactor > 0 {
		out.NearMisses = nearMisses(out, o.nearMissFactor*tau)
	}

	return out
}

// findComplex returns the index of the first group matching (alpha, beta)
// componentwise within tau, or -1.
func findComplex(groups []ComplexGroup, alpha, beta, tau float64) int {
	for k, g := range groups {
		if math.Abs(g.Alpha-alpha) < tau && math.Abs(g.Beta-beta) < tau {
			return k
		}
	}

	return -1
}

// nearMisses scans all pairs of group representatives (complex groups on the
// upper half plane) and reports those closer than radius.
func nearMisses(c Classification, radius float64) []NearMiss {
	points := make([]complex128, 0, len(c.Real)+len(c.Complex))
	for _, g := range c.Real {
		points = append(points, complex(g.Value, 0))
	}
	for _, g := range c.Complex {
		points = append(points, complex(g.Alpha, g.Beta))
	}

	var out []NearMiss
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := cmplx.Abs(points[i] - points[j]); d < radius {
				out = append(out, NearMiss{A: points[i], B: points[j], Distance: d})
			}
		}
	}

	return out
}
