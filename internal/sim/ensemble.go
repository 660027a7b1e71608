package sim

import (
	"context"
	"sync"

	"github.com/chili-epfl/states-of-matter/internal/config"
)

// Ensemble runs the same configuration across consecutive seeds in
// parallel. Each run gets its own runner and metric instances, so the
// base runner's metrics are used as prototypes only.
type Ensemble struct {
	numRuns   int
	seedStart int64
	factory   func() []Metric
}

func NewEnsemble(numRuns int, seedStart int64, factory func() []Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, factory: factory}
}

func (e *Ensemble) Run(ctx context.Context, cfg *config.Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			runner := NewRunner()
			if e.factory != nil {
				for _, m := range e.factory() {
					runner.AddMetric(m)
				}
			}
			results[idx], errs[idx] = runner.Run(ctx, &cfgCopy)
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
