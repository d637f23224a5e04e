// SPDX-License-Identifier: MIT

package roots

import (
	"encoding/json"
	"math"
)

// RealGroup collapses Multiplicity coincident (within tolerance) real roots
// into one entry. Value is the first-seen representative, not an average.
type RealGroup struct {
	Value        float64 `json:"value"`
	Multiplicity int     `json:"multiplicity"`
}

// ComplexGroup collects every root from both the +iβ and −iβ branches whose
// (α, |β|) match within tolerance. For an exact conjugate pair of
// multiplicity m, TotalCount == 2m.
type ComplexGroup struct {
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"` // always >= 0
	TotalCount int     `json:"total_count"`
}

// PairMultiplicity returns round(TotalCount/2) with ties to even, so an odd
// count of 1 yields 0 pairs and 3 yields 2. Check Balanced before trusting it.
func (g ComplexGroup) PairMultiplicity() int {
	return int(math.RoundToEven(float64(g.TotalCount) / 2))
}

// Balanced reports whether TotalCount is even, i.e. whether every +iβ root
// found its −iβ partner. An unbalanced group means the tolerance split a
// conjugate cluster or the solver returned a non-conjugate spectrum.
func (g ComplexGroup) Balanced() bool {
	return g.TotalCount%2 == 0
}

// NearMiss records two distinct group representatives that lie closer than
// NearMissFactor·τ. Such pairs are where the tolerance trade-off bites: a
// larger τ would have merged them, a smaller one may have split them.
type NearMiss struct {
	A, B     complex128
	Distance float64
}

// MarshalJSON renders the complex endpoints as [re, im] pairs.
func (n NearMiss) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		A        [2]float64 `json:"a"`
		B        [2]float64 `json:"b"`
		Distance float64    `json:"distance"`
	}{
		A:        [2]float64{real(n.A), imag(n.A)},
		B:        [2]float64{real(n.B), imag(n.B)},
		Distance: n.Distance,
	})
}

// Classification is the output of Classify: the root set partitioned into
// real groups and complex-conjugate groups, plus tolerance diagnostics.
type Classification struct {
	Real       []RealGroup    `json:"real"`
	Complex    []ComplexGroup `json:"complex"`
	NearMisses []NearMiss     `json:"near_misses,omitempty"`
}

// Count returns the sum of all group multiplicities. It equals the number of
// roots passed to Classify.
func (c Classification) Count() int {
	n := 0
	for _, g := range c.Real {
		n += g.Multiplicity
	}
	for _, g := range c.Complex {
		n += g.TotalCount
	}

	return n
}

// Unbalanced returns the complex groups with an odd TotalCount.
func (c Classification) Unbalanced() []ComplexGroup {
	var out []ComplexGroup
	for _, g := range c.Complex {
		if !g.Balanced() {
			out = append(out, g)
		}
	}

	return out
}
