package input

import "math/big"

// problemJSON mirrors the external JSON contract of spec.md §6.1. Integer
// fields use *big.Int directly: math/big.Int implements MarshalJSON and
// UnmarshalJSON as bare decimal numbers, which is exactly the "arbitrary
// precision, decimal JSON encoding" the contract calls for.
type problemJSON struct {
	Curve     string       `json:"curve"`
	PublicKey [2]*big.Int  `json:"public_key"`
	KnownType string       `json:"known_type"`
	KnownBits int          `json:"known_bits"`
	Signatures []sampleJSON `json:"signatures"`
	// Message holds the byte values of a shared message, as a JSON array
	// of integers in [0,255] — the only form spec.md §9 resolves the
	// generator/attacker bytes-vs-list ambiguity to. Omitted entirely
	// when absent.
	Message []int `json:"message,omitempty"`
}

// sampleJSON mirrors one entry of the "signatures" array. Hash is a
// pointer so its absence (when a top-level "message" is present instead)
// is distinguishable from an explicit zero hash.
type sampleJSON struct {
	R    *big.Int `json:"r"`
	S    *big.Int `json:"s"`
	Kp   *big.Int `json:"kp"`
	Hash *big.Int `json:"hash,omitempty"`
}
