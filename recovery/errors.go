package recovery

import "errors"

// ErrInsufficientLeakage is returned when the leakage width is below
// hnp.MinLeakageBits. A fail-fast precondition; no lattice is built.
var ErrInsufficientLeakage = errors.New("recovery: leakage width below minimum")

// ErrNotEnoughSignatures is returned when the signature pool is smaller
// than the minimum required sample count for the curve and leakage width.
var ErrNotEnoughSignatures = errors.New("recovery: not enough signatures for leakage width")

// ErrNotFound is returned when the recovery attempt (or, with loop
// disabled, the single attempt) exhausts the effort schedule without a
// matching candidate. This is a normal negative result, not a fault.
var ErrNotFound = errors.New("recovery: no matching private key found")
