package input

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/bitlogik/lattice-attack/curve"
	"github.com/bitlogik/lattice-attack/hnp"
)

// Parse decodes the problem JSON contract (spec.md §6.1) into an
// hnp.Problem. It resolves the per-sample hash field: when the top-level
// "message" key is present, every sample's hash is the integer-reduced
// SHA-256 of the message bytes; otherwise every sample must carry its own
// "hash". Missing required fields fail with ErrMalformedInput.
func Parse(data []byte) (*hnp.Problem, error) {
	var doc problemJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if doc.Curve == "" {
		return nil, fmt.Errorf("%w: missing curve", ErrMalformedInput)
	}
	curveName, err := curve.Parse(doc.Curve)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if doc.PublicKey[0] == nil || doc.PublicKey[1] == nil {
		return nil, fmt.Errorf("%w: missing public_key", ErrMalformedInput)
	}
	var known hnp.KnownType
	switch doc.KnownType {
	case string(hnp.LSB):
		known = hnp.LSB
	case string(hnp.MSB):
		known = hnp.MSB
	default:
		return nil, fmt.Errorf("%w: known_type must be LSB or MSB, got %q", ErrMalformedInput, doc.KnownType)
	}
	if doc.KnownBits == 0 {
		return nil, fmt.Errorf("%w: missing known_bits", ErrMalformedInput)
	}
	if len(doc.Signatures) == 0 {
		return nil, fmt.Errorf("%w: missing signatures", ErrMalformedInput)
	}

	var globalHash *big.Int
	if doc.Message != nil {
		globalHash = hashMessage(doc.Message)
	}

	samples := make([]hnp.Sample, len(doc.Signatures))
	for i, s := range doc.Signatures {
		if s.R == nil || s.S == nil || s.Kp == nil {
			return nil, fmt.Errorf("%w: signature %d missing r/s/kp", ErrMalformedInput, i)
		}
		h := s.Hash
		if globalHash != nil {
			h = globalHash
		}
		if h == nil {
			return nil, fmt.Errorf("%w: signature %d missing hash and no top-level message", ErrMalformedInput, i)
		}
		samples[i] = hnp.Sample{R: s.R, S: s.S, Kp: s.Kp, H: h}
	}

	problem := &hnp.Problem{
		Curve:     curveName,
		Qx:        doc.PublicKey[0],
		Qy:        doc.PublicKey[1],
		KnownType: known,
		Leakage:   doc.KnownBits,
		Samples:   samples,
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return problem, nil
}

// hashMessage returns the integer-reduced SHA-256 hash of message bytes
// given as a list of byte-valued integers.
func hashMessage(message []int) *big.Int {
	b := make([]byte, len(message))
	for i, v := range message {
		b[i] = byte(v)
	}
	sum := sha256.Sum256(b)
	return new(big.Int).SetBytes(sum[:])
}

// Marshal re-emits problem as the JSON contract problem was parsed from,
// satisfying the idempotence property of spec.md §8: Parse(Marshal(p))
// produces an equivalent instance. Per-sample hashes are always emitted
// individually (no attempt to recover whether the original document used
// a shared "message" field), since the resolved hash values are what
// downstream recovery depends on, not the document's original shape.
func Marshal(p *hnp.Problem) ([]byte, error) {
	doc := problemJSON{
		Curve:      string(p.Curve),
		PublicKey:  [2]*big.Int{p.Qx, p.Qy},
		KnownType:  string(p.KnownType),
		KnownBits:  p.Leakage,
		Signatures: make([]sampleJSON, len(p.Samples)),
	}
	for i, s := range p.Samples {
		doc.Signatures[i] = sampleJSON{R: s.R, S: s.S, Kp: s.Kp, Hash: s.H}
	}
	return json.Marshal(doc)
}
