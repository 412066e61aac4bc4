package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/finsec/market"
)

// Job is one named instrument to value.
type Job struct {
	Name  string
	Build Builder
}

// ValueAll builds and evaluates every job against lookup with at most workers
// valuations in flight. Results keep the order of jobs. The first failure
// cancels the remaining jobs.
func ValueAll(ctx context.Context, log zerolog.Logger, lookup *market.Lookup, jobs []Job, workers int) ([]Position, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}
	if workers < 1 {
		workers = 1
	}

	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()
	log.Debug().Int("jobs", len(jobs)).Int("workers", workers).Msg("valuation started")
	start := time.Now()

	out := make([]Position, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := job.Build(lookup)
			if err != nil {
				log.Error().Err(err).Str("instrument", job.Name).Msg("build failed")
				return fmt.Errorf("%s: build: %w", job.Name, err)
			}
			h.Name = job.Name
			pos, err := h.Evaluate()
			if err != nil {
				log.Error().Err(err).Str("instrument", job.Name).Str("handle", h.ID.String()).Msg("evaluate failed")
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			log.Debug().Str("instrument", job.Name).Float64("npv", pos.NPV).Msg("valued")
			out[i] = pos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("valuation finished")
	return out, nil
}
