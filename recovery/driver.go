package recovery

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/bitlogik/lattice-attack/curve"
	"github.com/bitlogik/lattice-attack/hnp"
	"github.com/bitlogik/lattice-attack/log"
)

// Options configures a recovery run.
type Options struct {
	// Loop re-shuffles and retries the whole effort schedule when the
	// prior attempt exhausted it without a match. Off by default.
	Loop bool

	// MaxAttempts bounds the number of reshuffle attempts when Loop is
	// set, so a run always terminates even against a pathological
	// instance. Zero means unbounded (subject only to ctx cancellation).
	MaxAttempts int

	// RNG is the source of randomness for subsampling. Defaults to
	// crypto/rand.Reader; tests may substitute a deterministic reader.
	RNG io.Reader

	// Build adjusts hnp.BuildMatrix behavior (e.g. LegacyMSBScale).
	Build hnp.BuildOptions

	// Logger receives one structured line per effort-schedule step and
	// per reshuffle. Defaults to log.Default().Module("recovery").
	Logger *log.Logger
}

// Recover runs the recovery loop described in spec.md §4.6 against
// problem: enforces the leakage and sample-count preconditions, then
// repeatedly samples a working subset, builds its lattice, and applies
// the escalating reduction schedule, returning the first verified
// candidate private key.
func Recover(ctx context.Context, problem *hnp.Problem, opts Options) (*big.Int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().Module("recovery")
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.Reader
	}

	if problem.Leakage < hnp.MinLeakageBits {
		return nil, fmt.Errorf("%w: got %d, need >= %d", ErrInsufficientLeakage, problem.Leakage, hnp.MinLeakageBits)
	}
	bitSize, err := curve.BitSize(problem.Curve)
	if err != nil {
		return nil, err
	}
	nReq := hnp.MinimumSignatures(bitSize, problem.Leakage)
	if len(problem.Samples) < nReq {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughSignatures, len(problem.Samples), nReq)
	}

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		attempt++
		logger.Info("reshuffle attempt", "attempt", attempt, "n_req", nReq)

		candidate, err := attemptOnce(ctx, problem, nReq, rng, opts.Build, logger)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return candidate, nil
		}

		if !opts.Loop {
			return nil, ErrNotFound
		}
		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return nil, ErrNotFound
		}
	}
}

// attemptOnce draws one fresh subsample, builds its lattice, and walks the
// effort schedule, returning a non-nil candidate on the first hit.
func attemptOnce(ctx context.Context, problem *hnp.Problem, nReq int, rng io.Reader, buildOpts hnp.BuildOptions, logger *log.Logger) (*big.Int, error) {
	subset, err := sample(rng, problem.Samples, nReq)
	if err != nil {
		return nil, fmt.Errorf("recovery: sampling: %w", err)
	}

	// hGlobal is always nil here: the input adapter already resolved each
	// sample's hash (global message hash or per-sample), so the builder
	// can always read it off Sample.H.
	basis, err := hnp.BuildMatrix(subset, problem.Curve, problem.Leakage, problem.KnownType, nil, buildOpts)
	if err != nil {
		return nil, err
	}

	for _, st := range effortSchedule {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		basis = st.reduce(basis)
		candidate, found, err := hnp.Extract(basis, problem.Qx, problem.Qy, problem.Curve)
		if err != nil {
			return nil, err
		}
		logger.Info("effort step complete", "block_size", st.BlockSize, "found", found)
		if found {
			return candidate, nil
		}
	}
	return nil, nil
}

// RecoverConcurrent runs workers independent attempt loops in parallel,
// each with its own RNG draws, returning on the first success and
// cancelling the rest. With opts.Loop set, each worker reshuffles and
// retries after a miss (at most opts.MaxAttempts attempts per worker when
// that is non-zero); without it, each worker makes one attempt. It implements the optional "return first success,
// cancel peers" semantic spec.md §5 allows for loop=true runs. Each
// attempt, like Recover, still enforces the leakage and sample-count
// preconditions before spawning any goroutines.
func RecoverConcurrent(ctx context.Context, problem *hnp.Problem, workers int, opts Options) (*big.Int, error) {
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().Module("recovery")
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.Reader
	}

	if problem.Leakage < hnp.MinLeakageBits {
		return nil, fmt.Errorf("%w: got %d, need >= %d", ErrInsufficientLeakage, problem.Leakage, hnp.MinLeakageBits)
	}
	bitSize, err := curve.BitSize(problem.Curve)
	if err != nil {
		return nil, err
	}
	nReq := hnp.MinimumSignatures(bitSize, problem.Leakage)
	if len(problem.Samples) < nReq {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughSignatures, len(problem.Samples), nReq)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		candidate *big.Int
		err       error
	}
	results := make(chan result, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLog := logger.With("worker", id)
			for attempt := 1; ; attempt++ {
				candidate, err := attemptOnce(runCtx, problem, nReq, rng, opts.Build, workerLog)
				if err != nil || candidate != nil || !opts.Loop ||
					(opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts) {
					results <- result{candidate, err}
					return
				}
			}
		}(w)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if r.candidate != nil {
			cancel()
			return r.candidate, nil
		}
	}
	if firstErr != nil && !errors.Is(firstErr, context.Canceled) {
		return nil, firstErr
	}
	return nil, ErrNotFound
}
