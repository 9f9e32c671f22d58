package sim

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/particlelife/internal/life"
)

// Ensemble runs independent simulations of one configuration over
// consecutive seeds, one goroutine per run.
type Ensemble struct {
	cfg       life.Config
	numRuns   int
	seedStart int64
	opts      []Option
}

// RunResult is one finished member of an ensemble.
type RunResult struct {
	Seed    int64
	Steps   int
	Elapsed time.Duration
	Sim     *Simulation
}

// StepsPerSecond reports wall-clock throughput of the run.
func (r *RunResult) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

func NewEnsemble(cfg life.Config, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run advances every member by steps steps of cfg.Dt. setup, when non-nil,
// is applied to each member before stepping.
func (e *Ensemble) Run(ctx context.Context, steps int, setup func(*Simulation) error) ([]*RunResult, error) {
	results := make([]*RunResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			opts := append(append([]Option(nil), e.opts...), WithSeed(seed))
			s, err := New(e.cfg, opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			if setup != nil {
				if err := setup(s); err != nil {
					errs[idx] = err
					return
				}
			}

			res := &RunResult{Seed: seed, Sim: s}
			start := time.Now()
			for n := 0; n < steps; n++ {
				select {
				case <-ctx.Done():
					errs[idx] = ctx.Err()
					return
				default:
				}
				if err := s.Step(e.cfg.Dt); err != nil {
					errs[idx] = err
					return
				}
				res.Steps++
			}
			res.Elapsed = time.Since(start)
			results[idx] = res
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
