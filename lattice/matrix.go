// Package lattice is the reduction oracle: it exposes LLL and BKZ basis
// reduction over arbitrary-precision integer matrices. Per the spec this
// package serves, reduction is a black-box contract — "output rows span
// the same integer lattice as input rows; rows are reordered so that
// shorter vectors tend to appear first; no guarantee which row contains
// the target short vector" — not a promise of optimal, enumeration-grade
// SVP solving. Callers outside this package never depend on anything more
// than that contract.
package lattice

import "math/big"

// IntegerMatrix is a row-major matrix of arbitrary-precision integers.
// Rows are basis vectors of a lattice in Z^cols.
type IntegerMatrix [][]*big.Int

// NewIntegerMatrix returns a rows x cols matrix, zero-initialized.
func NewIntegerMatrix(rows, cols int) IntegerMatrix {
	m := make(IntegerMatrix, rows)
	for i := range m {
		row := make([]*big.Int, cols)
		for j := range row {
			row[j] = new(big.Int)
		}
		m[i] = row
	}
	return m
}

// NumRows returns the number of basis vectors.
func (m IntegerMatrix) NumRows() int { return len(m) }

// NumCols returns the dimension of each basis vector, or 0 for an empty
// matrix.
func (m IntegerMatrix) NumCols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of m.
func (m IntegerMatrix) Clone() IntegerMatrix {
	out := make(IntegerMatrix, len(m))
	for i, row := range m {
		newRow := make([]*big.Int, len(row))
		for j, v := range row {
			newRow[j] = new(big.Int).Set(v)
		}
		out[i] = newRow
	}
	return out
}

func dot(a, b []*big.Int) *big.Int {
	sum := new(big.Int)
	tmp := new(big.Int)
	for i := range a {
		tmp.Mul(a[i], b[i])
		sum.Add(sum, tmp)
	}
	return sum
}

func normSq(a []*big.Int) *big.Int {
	return dot(a, a)
}

// rowCombine returns a + scale*b (row-wise).
func rowCombine(a, b []*big.Int, scale *big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	tmp := new(big.Int)
	for i := range a {
		tmp.Mul(b[i], scale)
		out[i] = new(big.Int).Add(a[i], tmp)
	}
	return out
}
