package hnp

import "errors"

// ErrBadInput is returned by BuildMatrix when the subset or leakage
// parameters violate a builder precondition: ℓ < 4, an empty subset, a kp
// outside [0, 2^ℓ), a non-invertible r or s for some sample, or an unknown
// known_type.
var ErrBadInput = errors.New("hnp: bad input to lattice builder")

// ErrInvalidPublicKey is returned when a problem instance's target public
// key does not lie on the declared curve.
var ErrInvalidPublicKey = errors.New("hnp: public key is not on curve")
