// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear algebra behind the companion-matrix
// root finder and the initial-value solver.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix behind the small Matrix interface.
//   - Companion, the numpy-convention companion matrix of a monic polynomial.
//   - Eigenvalues of a general real matrix: Parlett–Reinsch balancing,
//     reduction to upper Hessenberg form, then Francis double-shift QR.
//     Complex eigenvalues come back as conjugate pairs.
//   - LU with partial pivoting, SolveLinear and MatVec.
//   - Validators and sentinel errors shared by every kernel.
//
// All kernels copy their input; callers keep ownership of what they pass in.
// Sizes here are the degree of a characteristic polynomial, so everything is
// O(n³) dense code without blocking.
package matrix
