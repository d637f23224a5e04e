// SPDX-License-Identifier: MIT
package ode_test

import (
	"fmt"

	"github.com/katalvlaran/lvode/ode"
)

// ExampleSolve solves y'' − 4y' + 4y = 0, whose characteristic polynomial
// has the double root 2.
func ExampleSolve() {
	sol, err := ode.Solve([]float64{1, -4, 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(sol)
	// Output: y(x) = C_1e^(2.0x) + C_2xe^(2.0x)
}

// ExampleFromRoots shows a damped oscillation built from known roots.
func ExampleFromRoots() {
	sol := ode.FromRoots([]complex128{complex(-1, 2), complex(-1, -2), 3})
	fmt.Println(sol)
	for _, g := range sol.Classification.Complex {
		fmt.Printf("alpha=%g beta=%g pairs=%d\n", g.Alpha, g.Beta, g.PairMultiplicity())
	}
	// Output:
	// y(x) = C_1e^(3.0x) + C_2e^(-1.0x)cos(2.0x) + C_3e^(-1.0x)sin(2.0x)
	// alpha=-1 beta=2 pairs=1
}
