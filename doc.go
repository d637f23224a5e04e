// SPDX-License-Identifier: MIT

// Package lvode turns the characteristic polynomial of a linear, homogeneous,
// constant-coefficient ODE into its general solution, written out as a
// human-readable expression.
//
// 🚀 What does lvode do?
//
//	a_n·y⁽ⁿ⁾ + … + a_1·y' + a_0·y = 0
//	    └─▶ roots of a_n·rⁿ + … + a_1·r + a_0
//	        └─▶ real / complex-conjugate groups with multiplicities
//	            └─▶ y(x) = C_1e^(2.0x) + C_2xe^(2.0x) + C_3cos(1.0x) + C_4sin(1.0x)
//
// ✨ Why lvode?
//
//   - Tolerance-aware grouping of noisy numerical roots, with near-miss
//     diagnostics instead of silent guesses
//   - Two root finders: companion-matrix eigenvalues (default) and
//     Durand–Kerner iteration
//   - Deterministic output: stable ordering, a single constant counter,
//     fixed-precision rendering
//
// Under the hood the work is split into small packages:
//
//	matrix/       dense matrices, balancing, Hessenberg form, QR eigenvalues, companion matrix
//	poly/         coefficient validation, Horner evaluation, polynomial roots
//	roots/        classification of roots into real and conjugate groups
//	synth/        basis terms and the "y(x) = ..." rendering
//	ode/          Solve, FromRoots and concurrent SolveBatch with zap diagnostics
//	config/       YAML configuration and LVODE_* environment overrides
//	cmd/odesolve  command-line front end (solve, roots, batch)
//
// Quick example:
//
//	sol, err := ode.Solve([]float64{1, 0, 4}) // y'' + 4y = 0
//	fmt.Println(sol)                          // y(x) = C_1cos(2.0x) + C_2sin(2.0x)
//
//	go install github.com/katalvlaran/lvode/cmd/odesolve@latest
package lvode
