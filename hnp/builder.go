package hnp

import (
	"fmt"
	"math/big"

	"github.com/bitlogik/lattice-attack/curve"
	"github.com/bitlogik/lattice-attack/lattice"
	"github.com/bitlogik/lattice-attack/modmath"
)

// BuildOptions adjusts BuildMatrix behavior beyond the plain spec.
type BuildOptions struct {
	// LegacyMSBScale reproduces a hard-coded 2^256 scaling factor in the
	// MSB branch regardless of the curve's actual bit-size, matching the
	// upstream attacker's behavior on non-256-bit curves. Off by default,
	// which uses the bit-size-correct C = 2^B form instead.
	LegacyMSBScale bool
}

// BuildMatrix constructs the (m+2)x(m+2) HNP lattice basis for the given
// subset of signatures, per spec.md §4.4. hGlobal, if non-nil, is used as
// every sample's hash instead of the sample's own H field.
func BuildMatrix(subset []Sample, curveName curve.Name, leakage int, known KnownType, hGlobal *big.Int, opts BuildOptions) (lattice.IntegerMatrix, error) {
	if leakage < MinLeakageBits {
		return nil, fmt.Errorf("%w: leakage width %d below minimum %d", ErrBadInput, leakage, MinLeakageBits)
	}
	m := len(subset)
	if m == 0 {
		return nil, fmt.Errorf("%w: empty signature subset", ErrBadInput)
	}

	n, err := curve.Order(curveName)
	if err != nil {
		return nil, err
	}
	bitSize, err := curve.BitSize(curveName)
	if err != nil {
		return nil, err
	}

	k := new(big.Int).Lsh(big.NewInt(1), uint(leakage))  // K = 2^ℓ
	twoK := new(big.Int).Lsh(k, 1)                        // 2K
	var c *big.Int                                        // C = 2^B, or 2^256 under the legacy bug
	if opts.LegacyMSBScale {
		c = new(big.Int).Lsh(big.NewInt(1), 256)
	} else {
		c = new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
	}
	cDivK := new(big.Int).Div(c, k)

	kInv, err := modmath.Inverse(k, n)
	if err != nil {
		return nil, fmt.Errorf("%w: K not invertible mod n", ErrBadInput)
	}

	basis := lattice.NewIntegerMatrix(m+2, m+2)

	for i, s := range subset {
		if s.Kp.Sign() < 0 || s.Kp.Cmp(k) >= 0 {
			return nil, fmt.Errorf("%w: sample %d: kp out of range for leakage width %d", ErrBadInput, i, leakage)
		}

		h := s.H
		if hGlobal != nil {
			h = hGlobal
		}

		if _, err := modmath.Inverse(s.R, n); err != nil {
			return nil, fmt.Errorf("%w: sample %d: r not invertible mod n", ErrBadInput, i)
		}
		sInv, err := modmath.Inverse(s.S, n)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: s not invertible mod n", ErrBadInput, i)
		}

		basis[i][i] = new(big.Int).Mul(twoK, n)

		var lm, lm1 *big.Int
		switch known {
		case LSB:
			rsInv := modmath.MulMod(s.R, sInv, n)
			a := modmath.MulMod(kInv, rsInv, n)
			lm = new(big.Int).Mul(twoK, a)

			hsInv := modmath.MulMod(h, sInv, n)
			b := modmath.MulMod(kInv, modmath.SubMod(s.Kp, hsInv, n), n)
			lm1 = new(big.Int).Mul(twoK, b)
			lm1.Add(lm1, n)
		case MSB:
			a := modmath.MulMod(s.R, sInv, n)
			lm = new(big.Int).Mul(twoK, a)

			hsInv := modmath.MulMod(h, sInv, n)
			kpTerm := new(big.Int).Mul(s.Kp, cDivK)
			b := new(big.Int).Sub(kpTerm, hsInv)
			lm1 = new(big.Int).Mul(twoK, b)
			lm1.Add(lm1, n)
		default:
			return nil, fmt.Errorf("%w: unknown known_type %q", ErrBadInput, known)
		}
		basis[m][i] = lm
		basis[m+1][i] = lm1
	}

	basis[m][m] = big.NewInt(1)
	basis[m+1][m+1] = new(big.Int).Set(n)

	return basis, nil
}
