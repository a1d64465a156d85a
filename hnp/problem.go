package hnp

import (
	"fmt"
	"math/big"

	"github.com/bitlogik/lattice-attack/curve"
)

// MinLeakageBits is the minimum leakage width ℓ this tool will attempt
// recovery with.
const MinLeakageBits = 4

// Problem is a fully-validated HNP recovery instance: a target public key
// on a named curve, the kind and width of nonce-bit leakage, and the pool
// of partial-nonce signatures to draw a working subset from.
type Problem struct {
	Curve     curve.Name
	Qx, Qy    *big.Int
	KnownType KnownType
	Leakage   int
	Samples   []Sample
}

// Validate checks the invariants spec.md §3 places on a problem instance:
// Q lies on the curve, every sample's r/s/kp are in range, and there is
// at least one sample. It does not check the minimum-sample-count bound
// against ℓ — that is the recovery driver's precondition, not a structural
// invariant of the instance itself.
func (p *Problem) Validate() error {
	n, err := curve.Order(p.Curve)
	if err != nil {
		return err
	}
	onCurve, err := curve.OnCurve(p.Qx, p.Qy, p.Curve)
	if err != nil {
		return err
	}
	if !onCurve {
		return fmt.Errorf("%w: public key is not on %s", ErrInvalidPublicKey, p.Curve)
	}
	if p.KnownType != LSB && p.KnownType != MSB {
		return fmt.Errorf("%w: known_type must be LSB or MSB, got %q", ErrBadInput, p.KnownType)
	}
	if len(p.Samples) == 0 {
		return fmt.Errorf("%w: no signatures", ErrBadInput)
	}
	k := new(big.Int).Lsh(big.NewInt(1), uint(p.Leakage))
	for i, s := range p.Samples {
		if s.R.Sign() <= 0 || s.R.Cmp(n) >= 0 {
			return fmt.Errorf("%w: sample %d: r out of range", ErrBadInput, i)
		}
		if s.S.Sign() <= 0 || s.S.Cmp(n) >= 0 {
			return fmt.Errorf("%w: sample %d: s out of range", ErrBadInput, i)
		}
		if s.Kp.Sign() < 0 || s.Kp.Cmp(k) >= 0 {
			return fmt.Errorf("%w: sample %d: kp out of range for leakage width %d", ErrBadInput, i, p.Leakage)
		}
	}
	return nil
}

// MinimumSignatures returns the minimum working-subset size ⌈1.03·(4/3)·B/ℓ⌉
// spec.md §3 and §8 require for a curve of bit-size B and leakage width ℓ.
func MinimumSignatures(bitSize, leakage int) int {
	// ceil(1.03 * 4 * B / (3 * leakage)), computed in integer arithmetic
	// by scaling numerator and denominator by 100 before dividing to avoid
	// floating point.
	num := big.NewInt(int64(103 * 4 * bitSize))
	den := big.NewInt(int64(3 * 100 * leakage))
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return int(q.Int64())
}
