// SPDX-License-Identifier: MIT

package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Trig tags the trigonometric factor of a Term.
type Trig int

const (
	// TrigNone marks a term from a real root.
	TrigNone Trig = iota
	// TrigCos marks the cosine half of a conjugate-pair term.
	TrigCos
	// TrigSin marks the sine half of a conjugate-pair term.
	TrigSin
)

// String returns "", "cos" or "sin".
func (t Trig) String() string {
	switch t {
	case TrigCos:
		return "cos"
	case TrigSin:
		return "sin"
	default:
		return ""
	}
}

// MarshalText lets Trig serialize as its name.
func (t Trig) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Term is one basis function C_Index · x^Degree · e^(Alpha·x) · trig(Beta·x).
// The exponential factor is present only when HasExp is set.
type Term struct {
	Index  int     `json:"index"`
	Degree int     `json:"degree"`
	Alpha  float64 `json:"alpha"`
	HasExp bool    `json:"has_exp"`
	Trig   Trig    `json:"trig,omitempty"`
	Beta   float64 `json:"beta,omitempty"`
}

// String renders the term with DefaultPrecision.
func (t Term) String() string { return t.Render(DefaultPrecision) }

// Render prints the term, rounding Alpha and Beta to precision decimals:
//
//	C_2xe^(2.0x)    C_3x^2cos(1.0x)    C_1e^(-0.5x)sin(3.0x)
func (t Term) Render(precision int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "C_%d", t.Index)
	sb.WriteString(polyFactor(t.Degree))
	if t.HasExp {
		fmt.Fprintf(&sb, "e^(%sx)", FormatNumber(t.Alpha, precision))
	}
	if t.Trig != TrigNone {
		fmt.Fprintf(&sb, "%s(%sx)", t.Trig, FormatNumber(t.Beta, precision))
	}

	return sb.String()
}

// polyFactor returns "" for k=0, "x" for k=1 and "x^k" otherwise.
func polyFactor(k int) string {
	switch {
	case k <= 0:
		return ""
	case k == 1:
		return "x"
	default:
		return "x^" + strconv.Itoa(k)
	}
}

// FormatNumber rounds v to precision decimals and prints the shortest
// representation of the rounded value with at least one fractional digit:
// 2 → "2.0", 0.33333 → "0.3333", -1.5 → "-1.5". Negative zero prints as "0.0".
func FormatNumber(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', precision, 64), 64)
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
