package recovery

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/bitlogik/lattice-attack/hnp"
)

// sample draws n items without replacement from pool, using src as the
// source of randomness. src is always explicit — never a package-level
// global — so callers can substitute a deterministic reader in tests.
// Uses a partial Fisher-Yates shuffle: O(n) random draws rather than
// shuffling the whole pool, since n_req is typically much smaller than
// the pool size.
func sample(src io.Reader, pool []hnp.Sample, n int) ([]hnp.Sample, error) {
	working := make([]hnp.Sample, len(pool))
	copy(working, pool)

	for i := 0; i < n; i++ {
		remaining := len(working) - i
		j, err := randIndex(src, remaining)
		if err != nil {
			return nil, err
		}
		pick := i + j
		working[i], working[pick] = working[pick], working[i]
	}
	return working[:n], nil
}

// randIndex returns a uniform random integer in [0, n) read from src.
func randIndex(src io.Reader, n int) (int, error) {
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
