// SPDX-License-Identifier: MIT

// Package synth turns classified root groups into the basis terms of the
// general solution and formats them as
//
//	y(x) = C_1e^(2.0x) + C_2xe^(2.0x) + C_3cos(1.0x) + C_4sin(1.0x)
//
// Ordering: real groups by value descending, then complex groups by α
// descending; both sorts are stable. Within a group, polynomial degree
// increases, and each conjugate-pair degree yields a cosine term followed by
// a sine term. Constant labels come from a single counter starting at 1.
package synth

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/lvode/roots"
)

const (
	// Prefix starts every rendered solution.
	Prefix = "y(x) = "

	// Separator joins rendered terms.
	Separator = " + "
)

// Terms builds the ordered basis terms for c. The input is not modified.
// Complex groups contribute PairMultiplicity() cos/sin pairs; an unbalanced
// group (odd TotalCount) is rounded half to even, so callers that care
// should inspect roots.Classification.Unbalanced first.
func Terms(c roots.Classification, opts ...Option) []Term {
	o := gatherOptions(opts...)

	realGroups := slices.Clone(c.Real)
	slices.SortStableFunc(realGroups, func(a, b roots.RealGroup) int {
		return cmp.Compare(b.Value, a.Value)
	})
	complexGroups := slices.Clone(c.Complex)
	slices.SortStableFunc(complexGroups, func(a, b roots.ComplexGroup) int {
		return cmp.Compare(b.Alpha, a.Alpha)
	})

	terms := make([]Term, 0, c.Count())
	index := 0
	next := func() int {
		index++
		return index
	}

	for _, g := range realGroups {
		for k := 0; k < g.Multiplicity; k++ {
			terms = append(terms, Term{Index: next(), Degree: k, Alpha: g.Value, HasExp: true})
		}
	}
	for _, g := range complexGroups {
		hasExp := math.Abs(g.Alpha) > o.expTolerance
		for k := 0; k < g.PairMultiplicity(); k++ {
			terms = append(terms,
				Term{Index: next(), Degree: k, Alpha: g.Alpha, HasExp: hasExp, Trig: TrigCos, Beta: g.Beta},
				Term{Index: next(), Degree: k, Alpha: g.Alpha, HasExp: hasExp, Trig: TrigSin, Beta: g.Beta},
			)
		}
	}

	return terms
}

// Format renders terms joined by Separator behind Prefix. An empty list
// renders as "y(x) = ".
func Format(terms []Term, opts ...Option) string {
	o := gatherOptions(opts...)
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Render(o.precision)
	}

	return Prefix + strings.Join(parts, Separator)
}

// Synthesize is Format(Terms(c, opts...), opts...).
func Synthesize(c roots.Classification, opts ...Option) string {
	return Format(Terms(c, opts...), opts...)
}
