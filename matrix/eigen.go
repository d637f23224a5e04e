// SPDX-License-Identifier: MIT
// Package matrix: eigenvalues of general (non-symmetric) real matrices.
//
// Purpose:
//   - Provide the spectral kernel behind the companion-matrix root finder.
//   - Pipeline: Balance → Hessenberg → Francis double-shift QR (real Schur).
//
// Determinism:
//   - Fixed sweep orders; no randomness. Same input and options yield
//     bit-identical eigenvalues.
//
// Notes:
//   - Eigenvalues are returned in the position order in which the QR sweep
//     deflates the quasi-triangular form; complex pairs appear adjacent,
//     negative imaginary part first.
//   - Repeated eigenvalues are returned separately and carry the usual
//     O(eps^(1/m)) perturbation for multiplicity m.

package matrix

import "math"

const (
	opEigenvalues = "Eigenvalues"
	opBalance     = "Balance"
	opHessenberg  = "Hessenberg"
)

// radix is the floating-point base used by balancing so that scaling is exact.
const radix = 2.0

// Exceptional-shift schedule for the QR sweep.
const (
	exceptionalShiftA = 10
	exceptionalShiftB = 20
)

// Eigenvalues computes all eigenvalues of the square matrix m.
// Implementation:
//   - Stage 1: Validate square, finite input. Work on a private copy.
//   - Stage 2: Optionally balance (WithBalance, default on).
//   - Stage 3: Reduce to upper Hessenberg form.
//   - Stage 4: Francis double-shift QR until every 1×1 / 2×2 block deflates.
//
// Returns:
//   - []complex128 of length n.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrMatrixEigenFailed when one block needs more than maxIter sweeps.
//
// Complexity:
//   - Time O(n³) typical, Space O(n²).
func Eigenvalues(m Matrix, opts ...Option) ([]complex128, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	o := gatherOptions(opts...)

	work, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	a := work.rowViews()
	if o.balance {
		balanceInPlace(a)
	}
	hessenbergInPlace(a)

	vals, err := hqr(a, o.maxIter)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}

	return vals, nil
}

// Balance returns a diagonally similar copy of m whose row and column norms
// are comparable. Scaling uses powers of two, so no rounding is introduced
// and eigenvalues are unchanged.
func Balance(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opBalance, err)
	}
	out, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opBalance, err)
	}
	balanceInPlace(out.rowViews())

	return out, nil
}

// Hessenberg returns a copy of m reduced to upper Hessenberg form by
// stabilized elementary similarity transformations (Gaussian elimination
// with partial pivoting). Entries below the subdiagonal are exactly zero.
func Hessenberg(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	out, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	hessenbergInPlace(out.rowViews())

	return out, nil
}

// balanceInPlace applies the Parlett–Reinsch iteration.
func balanceInPlace(a [][]float64) {
	n := len(a)
	sqrdx := radix * radix
	var (
		i, j          int
		r, c, f, g, s float64
	)
	for done := false; !done; {
		done = true
		for i = 0; i < n; i++ {
			r, c = 0, 0
			for j = 0; j < n; j++ {
				if j != i {
					c += math.Abs(a[j][i])
					r += math.Abs(a[i][j])
				}
			}
			if c == 0 || r == 0 {
				continue
			}
			g = r / radix
			f = 1.0
			s = c + r
			for c < g {
				f *= radix
				c *= sqrdx
			}
			g = r * radix
			for c > g {
				f /= radix
				c /= sqrdx
			}
			if (c+r)/f < 0.95*s {
				done = false
				g = 1.0 / f
				for j = 0; j < n; j++ {
					a[i][j] *= g
				}
				for j = 0; j < n; j++ {
					a[j][i] *= f
				}
			}
		}
	}
}

// hessenbergInPlace reduces a to upper Hessenberg form.
func hessenbergInPlace(a [][]float64) {
	n := len(a)
	var (
		m, i, j int
		x, y    float64
	)
	for m = 1; m < n-1; m++ {
		// pivot: largest |a[j][m-1]| for j >= m
		x = 0
		i = m
		for j = m; j < n; j++ {
			if math.Abs(a[j][m-1]) > math.Abs(x) {
				x = a[j][m-1]
				i = j
			}
		}
		if i != m {
			for j = m - 1; j < n; j++ {
				a[i][j], a[m][j] = a[m][j], a[i][j]
			}
			for j = 0; j < n; j++ {
				a[j][i], a[j][m] = a[j][m], a[j][i]
			}
		}
		if x == 0 {
			continue
		}
		for i = m + 1; i < n; i++ {
			if y = a[i][m-1]; y != 0 {
				y /= x
				a[i][m-1] = y
				for j = m; j < n; j++ {
					a[i][j] -= y * a[m][j]
				}
				for j = 0; j < n; j++ {
					a[j][m] += y * a[j][i]
				}
			}
		}
	}
	// multipliers were parked below the subdiagonal; clear them
	for i = 2; i < n; i++ {
		for j = 0; j < i-1; j++ {
			a[i][j] = 0
		}
	}
}

// hqr finds all eigenvalues of the upper Hessenberg matrix a, destroying a.
// maxIter bounds the sweeps spent on any single deflation.
func hqr(a [][]float64, maxIter int) ([]complex128, error) {
	n := len(a)
	wr := make([]float64, n)
	wi := make([]float64, n)

	var anorm float64
	for i := 0; i < n; i++ {
		for j := max(i-1, 0); j < n; j++ {
			anorm += math.Abs(a[i][j])
		}
	}

	var (
		nn, m, l, k, i, j, its, mmin    int
		z, y, x, w, v, u, t, s, r, q, p float64
	)
	for nn = n - 1; nn >= 0; {
		its = 0
		for {
			// look for a single small subdiagonal element
			for l = nn; l >= 1; l-- {
				s = math.Abs(a[l-1][l-1]) + math.Abs(a[l][l])
				if s == 0 {
					s = anorm
				}
				if math.Abs(a[l][l-1])+s == s {
					a[l][l-1] = 0
					break
				}
			}
			x = a[nn][nn]
			if l == nn { // 1×1 block deflated
				wr[nn], wi[nn] = x+t, 0
				nn--
				break
			}
			y = a[nn-1][nn-1]
			w = a[nn][nn-1] * a[nn-1][nn]
			if l == nn-1 { // 2×2 block deflated
				p = 0.5 * (y - x)
				q = p*p + w
				z = math.Sqrt(math.Abs(q))
				x += t
				if q >= 0 {
					z = p + math.Copysign(z, p)
					wr[nn-1], wr[nn] = x+z, x+z
					if z != 0 {
						wr[nn] = x - w/z
					}
					wi[nn-1], wi[nn] = 0, 0
				} else {
					wr[nn-1], wr[nn] = x+p, x+p
					wi[nn-1], wi[nn] = -z, z
				}
				nn -= 2
				break
			}

			if its == maxIter {
				return nil, ErrMatrixEigenFailed
			}
			if its == exceptionalShiftA || its == exceptionalShiftB {
				t += x
				for i = 0; i <= nn; i++ {
					a[i][i] -= x
				}
				s = math.Abs(a[nn][nn-1]) + math.Abs(a[nn-1][nn-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			its++

			// find two consecutive small subdiagonal elements
			for m = nn - 2; m >= l; m-- {
				z = a[m][m]
				r = x - z
				s = y - z
				p = (r*s-w)/a[m+1][m] + a[m][m+1]
				q = a[m+1][m+1] - z - r - s
				r = a[m+2][m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				u = math.Abs(a[m][m-1]) * (math.Abs(q) + math.Abs(r))
				v = math.Abs(p) * (math.Abs(a[m-1][m-1]) + math.Abs(z) + math.Abs(a[m+1][m+1]))
				if u+v == v {
					break
				}
			}
			for i = m + 2; i <= nn; i++ {
				a[i][i-2] = 0
				if i != m+2 {
					a[i][i-3] = 0
				}
			}

			// double QR step on rows l..nn, columns m..nn
			for k = m; k <= nn-1; k++ {
				if k != m {
					p = a[k][k-1]
					q = a[k+1][k-1]
					r = 0
					if k != nn-1 {
						r = a[k+2][k-1]
					}
					if x = math.Abs(p) + math.Abs(q) + math.Abs(r); x != 0 {
						p /= x
						q /= x
						r /= x
					}
				}
				if s = math.Copysign(math.Sqrt(p*p+q*q+r*r), p); s == 0 {
					continue
				}
				if k == m {
					if l != m {
						a[k][k-1] = -a[k][k-1]
					}
				} else {
					a[k][k-1] = -s * x
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p
				for j = k; j <= nn; j++ { // row modification
					p = a[k][j] + q*a[k+1][j]
					if k != nn-1 {
						p += r * a[k+2][j]
						a[k+2][j] -= p * z
					}
					a[k+1][j] -= p * y
					a[k][j] -= p * x
				}
				mmin = min(nn, k+3)
				for i = l; i <= mmin; i++ { // column modification
					p = x*a[i][k] + y*a[i][k+1]
					if k != nn-1 {
						p += z * a[i][k+2]
						a[i][k+2] -= p * r
					}
					a[i][k+1] -= p * q
					a[i][k] -= p
				}
			}
		}
	}

	out := make([]complex128, n)
	for i = 0; i < n; i++ {
		out[i] = complex(wr[i], wi[i])
	}

	return out, nil
}
