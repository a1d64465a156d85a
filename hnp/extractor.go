package hnp

import (
	"errors"
	"math/big"

	"github.com/bitlogik/lattice-attack/curve"
	"github.com/bitlogik/lattice-attack/lattice"
)

// Extract scans every row of the reduced basis m for a candidate private
// scalar, per spec.md §4.5: the candidate sits at column m (the
// second-to-last column, zero-indexed), reduced mod n. Zero-valued
// candidates are skipped. A candidate c is accepted if Derive(c) == Q or
// Derive(n-c) == Q. Returns (candidate, true) on the first match, or
// (nil, false) if no row yields one.
func Extract(basis lattice.IntegerMatrix, qx, qy *big.Int, curveName curve.Name) (*big.Int, bool, error) {
	n, err := curve.Order(curveName)
	if err != nil {
		return nil, false, err
	}
	cols := basis.NumCols()
	if cols < 2 {
		return nil, false, nil
	}
	candidateCol := cols - 2

	for _, row := range basis {
		c := new(big.Int).Mod(row[candidateCol], n)
		if c.Sign() == 0 {
			continue
		}

		if ok, err := matches(c, qx, qy, curveName); err != nil {
			return nil, false, err
		} else if ok {
			return c, true, nil
		}

		complement := new(big.Int).Sub(n, c)
		if ok, err := matches(complement, qx, qy, curveName); err != nil {
			return nil, false, err
		} else if ok {
			return complement, true, nil
		}
	}
	return nil, false, nil
}

func matches(d, qx, qy *big.Int, curveName curve.Name) (bool, error) {
	x, y, err := curve.Derive(d, curveName)
	if err != nil {
		if errors.Is(err, curve.ErrInvalidScalar) {
			return false, nil
		}
		return false, err
	}
	return x.Cmp(qx) == 0 && y.Cmp(qy) == 0, nil
}
