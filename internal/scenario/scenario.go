// Package scenario defines the serializable description of one simulation run:
// population parameters, intervention parameters, horizon and seed.
//
// Scenarios are loaded from YAML or JSON files, start from Default so omitted
// fields keep the reference values, and are checked with Validate before use.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/simulation"
)

// PopulationParams configures the population at construction.
type PopulationParams struct {
	Size             int     `json:"size" yaml:"size"`
	InitialInfected  int     `json:"initialInfected" yaml:"initialInfected"`
	TransmissionRate float64 `json:"transmissionRate" yaml:"transmissionRate"`
	RecoveryRate     float64 `json:"recoveryRate" yaml:"recoveryRate"`
}

// InterventionParams configures the intervention policy.
type InterventionParams struct {
	BedNetCoverage          float64 `json:"bedNetCoverage" yaml:"bedNetCoverage"`
	MedicationEffectiveness float64 `json:"medicationEffectiveness" yaml:"medicationEffectiveness"`
}

// Scenario is the complete run configuration.
type Scenario struct {
	Version       string             `json:"version,omitempty" yaml:"version,omitempty"`
	ID            string             `json:"id" yaml:"id"`
	Days          int                `json:"days" yaml:"days"`
	Seed          uint64             `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 draws a fresh seed
	Population    PopulationParams   `json:"population" yaml:"population"`
	Interventions InterventionParams `json:"interventions" yaml:"interventions"`
}

// Default returns the reference scenario.
func Default() Scenario {
	return Scenario{
		ID:   "malaria",
		Days: 100,
		Population: PopulationParams{
			Size:             1000,
			InitialInfected:  10,
			TransmissionRate: 0.05,
			RecoveryRate:     0.01,
		},
		Interventions: InterventionParams{
			BedNetCoverage:          0.2,
			MedicationEffectiveness: 0.5,
		},
	}
}

// Validate validates the entire scenario:
// - Non-empty ID
// - Positive population size, initial infected within [0, size]
// - All four probabilities within [0, 1]
// - Non-negative horizon
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("scenario ID is required")
	}
	p := s.Population
	if p.Size <= 0 {
		return &malariasim.ParameterError{Name: "population.size", Value: float64(p.Size), Reason: "must be positive"}
	}
	if p.InitialInfected < 0 || p.InitialInfected > p.Size {
		return &malariasim.ParameterError{
			Name:   "population.initialInfected",
			Value:  float64(p.InitialInfected),
			Reason: fmt.Sprintf("must be within [0, %d]", p.Size),
		}
	}
	probs := []struct {
		name string
		v    float64
	}{
		{"population.transmissionRate", p.TransmissionRate},
		{"population.recoveryRate", p.RecoveryRate},
		{"interventions.bedNetCoverage", s.Interventions.BedNetCoverage},
		{"interventions.medicationEffectiveness", s.Interventions.MedicationEffectiveness},
	}
	for _, pr := range probs {
		if err := malariasim.CheckProbability(pr.name, pr.v); err != nil {
			return err
		}
	}
	if s.Days < 0 {
		return &malariasim.ParameterError{Name: "days", Value: float64(s.Days), Reason: "must not be negative"}
	}
	return nil
}

// Factory returns a simulation.Factory that builds a runner for this scenario
// around the supplied randomness source. The population and the policy share it.
func (s Scenario) Factory(opts ...simulation.Option) simulation.Factory {
	return func(rng malariasim.Random) (*simulation.Runner, error) {
		pop, err := malariasim.NewPopulation(
			s.Population.Size,
			s.Population.InitialInfected,
			s.Population.TransmissionRate,
			s.Population.RecoveryRate,
			malariasim.WithRandom(rng),
		)
		if err != nil {
			return nil, fmt.Errorf("population: %w", err)
		}
		policy, err := malariasim.NewInterventionPolicy(
			s.Interventions.BedNetCoverage,
			s.Interventions.MedicationEffectiveness,
			malariasim.WithRandom(rng),
		)
		if err != nil {
			return nil, fmt.Errorf("interventions: %w", err)
		}
		return simulation.NewRunner(pop, policy, simulation.Config{Days: s.Days}, opts...)
	}
}
