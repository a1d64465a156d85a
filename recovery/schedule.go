package recovery

import "github.com/bitlogik/lattice-attack/lattice"

// step is one entry in the effort schedule: either plain LLL (BlockSize
// == 0) or BKZ at a given block size.
type step struct {
	BlockSize int
}

// effortSchedule is spec.md §4.6's six-step sequence: LLL first, then BKZ
// with escalating block sizes. Each step reduces the basis left by the
// previous step, never starting over from the unreduced basis.
var effortSchedule = []step{
	{BlockSize: 0},
	{BlockSize: 15},
	{BlockSize: 25},
	{BlockSize: 40},
	{BlockSize: 50},
	{BlockSize: 60},
}

func (s step) reduce(basis lattice.IntegerMatrix) lattice.IntegerMatrix {
	if s.BlockSize == 0 {
		return lattice.LLL(basis)
	}
	return lattice.BKZ(basis, s.BlockSize)
}
