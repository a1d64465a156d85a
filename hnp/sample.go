package hnp

import "math/big"

// KnownType identifies which end of the nonce the leaked bits come from.
type KnownType string

const (
	LSB KnownType = "LSB"
	MSB KnownType = "MSB"
)

// Sample is one partial-nonce signature observation: r and s are the
// ECDSA signature components, Kp is the integer formed by the leaked
// bits of the nonce (LSB: k mod 2^ℓ; MSB: the leading ℓ bits, not
// left-shifted), and H is the integer-reduced message hash that produced
// this signature.
type Sample struct {
	R  *big.Int
	S  *big.Int
	Kp *big.Int
	H  *big.Int
}
