package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/comalice/malariasim"
)

// Factory builds a fresh runner around the given randomness source.
type Factory func(rng malariasim.Random) (*Runner, error)

// Ensemble runs independent replicates of one scenario.
type Ensemble struct {
	Replicates int    // Number of runs
	Workers    int    // Concurrent runs; 0 means one per replicate
	BaseSeed   uint64 // Replicate i is seeded BaseSeed+i
}

// Run executes every replicate and returns their histories in replicate order.
// The first failing replicate cancels the rest.
func (e Ensemble) Run(ctx context.Context, factory Factory) ([]History, error) {
	if factory == nil {
		return nil, errors.New("factory is required")
	}
	if e.Replicates <= 0 {
		return nil, &malariasim.ParameterError{Name: "replicates", Value: float64(e.Replicates), Reason: "must be positive"}
	}

	results := make([]History, e.Replicates)
	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i := 0; i < e.Replicates; i++ {
		g.Go(func() error {
			r, err := factory(malariasim.NewRandom(e.BaseSeed + uint64(i)))
			if err != nil {
				return fmt.Errorf("replicate %d: %w", i, err)
			}
			h, err := r.Run(gctx)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", i, err)
			}
			results[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DaySummary aggregates the infected count of one day across replicates.
type DaySummary struct {
	Day    int     `json:"day" yaml:"day"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
	Min    int     `json:"min" yaml:"min"`
	Max    int     `json:"max" yaml:"max"`
}

// Summarize computes per-day statistics. Days beyond the shortest history are dropped.
func Summarize(runs []History) []DaySummary {
	if len(runs) == 0 {
		return nil
	}
	days := len(runs[0])
	for _, h := range runs[1:] {
		days = min(days, len(h))
	}

	out := make([]DaySummary, days)
	xs := make([]float64, len(runs))
	for d := 0; d < days; d++ {
		lo, hi := math.MaxInt, math.MinInt
		for i, h := range runs {
			v := h[d].Infected
			xs[i] = float64(v)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		out[d] = DaySummary{Day: d + 1, Mean: mean, StdDev: std, Min: lo, Max: hi}
	}
	return out
}
