package lattice

import "math/big"

// lllDelta is the standard Lovász condition parameter. 3/4 is the
// classical choice balancing reduction quality against running time.
var lllDelta = big.NewRat(3, 4)

// gramSchmidt holds the rational Gram-Schmidt orthogonalization of an
// integer basis: bStar[i] is the i-th orthogonalized (but not normalized)
// vector, muCoeff[i][j] (j < i) is the projection coefficient of b[i] onto
// bStar[j], and normSq[i] = |bStar[i]|^2.
type gramSchmidt struct {
	bStar   [][]*big.Rat
	muCoeff [][]*big.Rat
	normSq  []*big.Rat
}

func ratDot(a, b []*big.Rat) *big.Rat {
	sum := new(big.Rat)
	tmp := new(big.Rat)
	for i := range a {
		tmp.Mul(a[i], b[i])
		sum.Add(sum, tmp)
	}
	return sum
}

func intRowToRat(row []*big.Int) []*big.Rat {
	out := make([]*big.Rat, len(row))
	for i, v := range row {
		out[i] = new(big.Rat).SetInt(v)
	}
	return out
}

// computeGSO computes the Gram-Schmidt orthogonalization of basis from
// scratch.
func computeGSO(basis IntegerMatrix) *gramSchmidt {
	n := basis.NumRows()
	gs := &gramSchmidt{
		bStar:   make([][]*big.Rat, n),
		muCoeff: make([][]*big.Rat, n),
		normSq:  make([]*big.Rat, n),
	}
	for i := 0; i < n; i++ {
		v := intRowToRat(basis[i])
		gs.muCoeff[i] = make([]*big.Rat, n)
		for j := 0; j < i; j++ {
			mu := new(big.Rat).Quo(ratDot(v, gs.bStar[j]), gs.normSq[j])
			gs.muCoeff[i][j] = mu
			for k := range v {
				t := new(big.Rat).Mul(mu, gs.bStar[j][k])
				v[k] = new(big.Rat).Sub(v[k], t)
			}
		}
		gs.bStar[i] = v
		gs.normSq[i] = ratDot(v, v)
	}
	return gs
}

// roundRat rounds a rational to the nearest integer (ties away from zero).
func roundRat(r *big.Rat) *big.Int {
	absNum := new(big.Int).Abs(r.Num())
	absDen := new(big.Int).Abs(r.Denom())
	quotient, remainder := new(big.Int), new(big.Int)
	quotient.DivMod(absNum, absDen, remainder)
	remainder.Mul(remainder, big.NewInt(2))
	if remainder.Cmp(absDen) >= 0 {
		quotient.Add(quotient, big.NewInt(1))
	}
	if r.Sign() < 0 {
		quotient.Neg(quotient)
	}
	return quotient
}

// LLL reduces the integer basis m using the classical Lenstra-Lenstra-
// Lovász algorithm with delta = 3/4. The returned matrix spans the same
// lattice as m.
func LLL(m IntegerMatrix) IntegerMatrix {
	basis := m.Clone()
	n := basis.NumRows()
	if n == 0 {
		return basis
	}
	gs := computeGSO(basis)

	k := 1
	for k < n {
		reduceRow(basis, gs, k)
		lhs := gs.normSq[k]
		mu := gs.muCoeff[k][k-1]
		rhs := new(big.Rat).Mul(mu, mu)
		rhs.Sub(lllDelta, rhs)
		rhs.Mul(rhs, gs.normSq[k-1])
		if lhs.Cmp(rhs) >= 0 {
			k++
			continue
		}
		basis[k-1], basis[k] = basis[k], basis[k-1]
		gs = computeGSO(basis)
		if k > 1 {
			k--
		}
	}
	return basis
}

// reduceRow size-reduces basis[k] against basis[0..k-1], using and
// incrementally updating the Gram-Schmidt mu coefficients of row k as
// described in Cohen's "A Course in Computational Algebraic Number
// Theory", algorithm 2.6.3.
func reduceRow(basis IntegerMatrix, gs *gramSchmidt, k int) {
	for j := k - 1; j >= 0; j-- {
		mu := gs.muCoeff[k][j]
		q := roundRat(mu)
		if q.Sign() == 0 {
			continue
		}
		neg := new(big.Int).Neg(q)
		basis[k] = rowCombine(basis[k], basis[j], neg)
		qr := new(big.Rat).SetInt(q)
		gs.muCoeff[k][j] = new(big.Rat).Sub(mu, qr)
		for jj := 0; jj < j; jj++ {
			t := new(big.Rat).Mul(qr, gs.muCoeff[j][jj])
			gs.muCoeff[k][jj] = new(big.Rat).Sub(gs.muCoeff[k][jj], t)
		}
	}
}
