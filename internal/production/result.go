// Package production provides output integrations: run persistence, day publishing, visualization.
// Everything here runs after or alongside a simulation and never mutates a Population.
package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/malariasim/internal/scenario"
	"github.com/comalice/malariasim/simulation"
)

// RunResult is the serializable outcome of one run.
type RunResult struct {
	RunID      string             `json:"runID" yaml:"runID"`
	Scenario   scenario.Scenario  `json:"scenario" yaml:"scenario"`
	Version    string             `json:"version" yaml:"version"`
	Seed       uint64             `json:"seed" yaml:"seed"`
	History    simulation.History `json:"history" yaml:"history"`
	StartedAt  time.Time          `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt" yaml:"finishedAt"`
}

// NewRunResult stamps a fresh run ID and the scenario version onto a finished run.
func NewRunResult(s scenario.Scenario, seed uint64, history simulation.History, startedAt, finishedAt time.Time) RunResult {
	return RunResult{
		RunID:      uuid.NewString(),
		Scenario:   s,
		Version:    scenario.ComputeVersion(&s),
		Seed:       seed,
		History:    history,
		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
	}
}

// Persister stores and retrieves run results.
type Persister interface {
	Save(ctx context.Context, result RunResult) error
	Load(ctx context.Context, runID string) (RunResult, error)
}
