// Package modmath provides the small set of modular arithmetic primitives
// the HNP lattice reduction needs on top of math/big: a checked modular
// inverse over a prime modulus.
package modmath

import (
	"errors"
	"math/big"
)

// ErrNotInvertible is returned by Inverse when a has no inverse modulo m,
// i.e. gcd(a, m) != 1. For the curve orders this package is used with
// (always prime), that only happens for a == 0 mod m.
var ErrNotInvertible = errors.New("modmath: value is not invertible modulo m")

// Inverse returns a^-1 mod m. It fails with ErrNotInvertible for any a
// with gcd(a, m) != 1, whether m is prime or composite.
func Inverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, ErrNotInvertible
	}
	return inv, nil
}

// MulMod returns a*b mod m.
func MulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// AddMod returns a+b mod m.
func AddMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, m)
}

// SubMod returns a-b mod m, normalized to [0, m).
func SubMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, m)
}
