// SPDX-License-Identifier: MIT
package roots_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/lvode/roots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassify_Table covers the basic partitions.
func TestClassify_Table(t *testing.T) {
	cases := []struct {
		name string
		in   []complex128
		want roots.Classification
	}{
		{
			name: "empty input yields empty groups",
			in:   nil,
			want: roots.Classification{},
		},
		{
			name: "distinct reals",
			in:   []complex128{2, 1},
			want: roots.Classification{Real: []roots.RealGroup{{Value: 2, Multiplicity: 1}, {Value: 1, Multiplicity: 1}}},
		},
		{
			name: "noisy double root keeps first representative",
			in:   []complex128{2 + 1e-6, 2 - 1e-6},
			want: roots.Classification{Real: []roots.RealGroup{{Value: 2 + 1e-6, Multiplicity: 2}}},
		},
		{
			name: "conjugate pair merges both branches",
			in:   []complex128{complex(0, 2), complex(0, -2)},
			want: roots.Classification{Complex: []roots.ComplexGroup{{Alpha: 0, Beta: 2, TotalCount: 2}}},
		},
		{
			name: "double conjugate pair",
			in: []complex128{
				complex(0, 1), complex(0, -1),
				complex(1e-8, 1+1e-8), complex(1e-8, -1-1e-8),
			},
			want: roots.Classification{Complex: []roots.ComplexGroup{{Alpha: 0, Beta: 1, TotalCount: 4}}},
		},
		{
			name: "tiny imaginary part is real",
			in:   []complex128{complex(3, 2e-5), complex(3, -2e-5)},
			want: roots.Classification{Real: []roots.RealGroup{{Value: 3, Multiplicity: 2}}},
		},
		{
			name: "mixed spectrum",
			in:   []complex128{complex(-1, 2), 3, complex(-1, -2), 3},
			want: roots.Classification{
				Real:    []roots.RealGroup{{Value: 3, Multiplicity: 2}},
				Complex: []roots.ComplexGroup{{Alpha: -1, Beta: 2, TotalCount: 2}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := roots.Classify(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tc.in), got.Count())
		})
	}
}

// TestClassify_ToleranceTradeOff shows both sides of τ on the same cluster.
func TestClassify_ToleranceTradeOff(t *testing.T) {
	spread := []complex128{2, 2.0002, 2.0004}

	// τ too small: the cluster is split and every split is reported.
	split := roots.Classify(spread)
	require.Len(t, split.Real, 3)
	require.Len(t, split.NearMisses, 3)
	for _, nm := range split.NearMisses {
		assert.Less(t, nm.Distance, 10*roots.DefaultTolerance)
	}

	// τ wide enough: one group of multiplicity 3, nothing suspicious.
	merged := roots.Classify(spread, roots.WithTolerance(1e-3))
	require.Equal(t, []roots.RealGroup{{Value: 2, Multiplicity: 3}}, merged.Real)
	require.Empty(t, merged.NearMisses)

	// the scan can be switched off
	quiet := roots.Classify(spread, roots.WithNearMissFactor(0))
	require.Empty(t, quiet.NearMisses)
}

// TestClassify_Unbalanced surfaces a conjugate pair that lost a partner.
func TestClassify_Unbalanced(t *testing.T) {
	c := roots.Classify([]complex128{complex(1, 2)})
	require.Len(t, c.Complex, 1)
	require.False(t, c.Complex[0].Balanced())
	require.Equal(t, c.Complex, c.Unbalanced())
	require.Equal(t, 0, c.Complex[0].PairMultiplicity())
}

// TestPairMultiplicity rounds half to even.
func TestPairMultiplicity(t *testing.T) {
	for total, want := range map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 2, 6: 3} {
		assert.Equal(t, want, roots.ComplexGroup{TotalCount: total}.PairMultiplicity(), "total=%d", total)
	}
}

// TestClassify_GarbageIn: NaN and Inf never panic and are still counted.
func TestClassify_GarbageIn(t *testing.T) {
	in := []complex128{complex(math.NaN(), 0), complex(math.Inf(1), 1), 1}
	var c roots.Classification
	require.NotPanics(t, func() { c = roots.Classify(in) })
	require.Equal(t, len(in), c.Count())
}

// TestClassify_PartitionProperty: for random conjugate-closed spectra the
// multiplicities always sum to N, and re-running is deterministic.
func TestClassify_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		var in []complex128
		for k := rng.Intn(6); k >= 0; k-- {
			re := math.Round(rng.NormFloat64()*4) / 2
			if rng.Intn(2) == 0 {
				in = append(in, complex(re, 0))
				continue
			}
			im := float64(1+rng.Intn(3)) / 2
			in = append(in, complex(re, im), complex(re, -im))
		}
		first := roots.Classify(in)
		require.Equal(t, len(in), first.Count())
		require.Empty(t, first.Unbalanced())
		require.Empty(t, cmp.Diff(first, roots.Classify(in)))
	}
}

// TestOptions_Panics: nonsensical tolerances are programmer errors.
func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { roots.WithTolerance(0) })
	require.Panics(t, func() { roots.WithTolerance(math.Inf(1)) })
	require.Panics(t, func() { roots.WithNearMissFactor(-1) })
}
