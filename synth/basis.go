// SPDX-License-Identifier: MIT

package synth

import "math"

// exponent returns λ with basis(x) = Re or Im of x^k·e^(λx). A pair term
// whose exponential was suppressed behaves as λ = iβ.
func (t Term) exponent() complex128 {
	alpha := t.Alpha
	if !t.HasExp {
		alpha = 0
	}
	if t.Trig == TrigNone {
		return complex(alpha, 0)
	}

	return complex(alpha, t.Beta)
}

// project picks the real or imaginary part according to Trig.
func (t Term) project(z complex128) float64 {
	if t.Trig == TrigSin {
		return imag(z)
	}

	return real(z)
}

// Eval returns the basis function of t (without its constant) at x.
func (t Term) Eval(x float64) float64 {
	v := math.Pow(x, float64(t.Degree))
	if t.HasExp {
		v *= math.Exp(t.Alpha * x)
	}
	switch t.Trig {
	case TrigCos:
		v *= math.Cos(t.Beta * x)
	case TrigSin:
		v *= math.Sin(t.Beta * x)
	}

	return v
}

// DerivativeAtZero returns the j-th derivative of the basis function at
// x = 0. For x^k·e^(λx) it is j!/(j−k)!·λ^(j−k) when j ≥ k and 0 otherwise;
// cosine and sine terms take the real and imaginary part.
func (t Term) DerivativeAtZero(j int) float64 {
	k := t.Degree
	if j < k {
		return 0
	}
	coef := 1.0
	for m := j - k + 1; m <= j; m++ {
		coef *= float64(m)
	}
	lambda := t.exponent()
	pow := complex(1, 0)
	for m := 0; m < j-k; m++ {
		pow *= lambda
	}

	return coef * t.project(pow)
}
