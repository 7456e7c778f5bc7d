// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/malariasim"
	"github.com/comalice/malariasim/internal/production"
	"github.com/comalice/malariasim/internal/scenario"
	"github.com/comalice/malariasim/simulation"
)

// Sizes are the population sizes exercised by the size-parameterized benchmarks.
var Sizes = []int{1_000, 10_000, 100_000}

// GenScenario creates a scenario of the given size with an active epidemic:
// 1% initially infected and a transmission rate high enough to keep contagion alive.
func GenScenario(size, days int) scenario.Scenario {
	s := scenario.Default()
	s.ID = fmt.Sprintf("bench_%d", size)
	s.Days = days
	s.Population.Size = size
	s.Population.InitialInfected = max(size/100, 1)
	s.Population.TransmissionRate = 0.05
	s.Population.RecoveryRate = 0.01
	return s
}

// GenPopulation builds a population and a policy sharing one seeded source.
func GenPopulation(size int, seed uint64) (*malariasim.Population, *malariasim.InterventionPolicy) {
	s := GenScenario(size, 0)
	rng := malariasim.NewRandom(seed)
	pop, err := malariasim.NewPopulation(size, s.Population.InitialInfected,
		s.Population.TransmissionRate, s.Population.RecoveryRate, malariasim.WithRandom(rng))
	if err != nil {
		panic(err)
	}
	policy, err := malariasim.NewInterventionPolicy(
		s.Interventions.BedNetCoverage, s.Interventions.MedicationEffectiveness, malariasim.WithRandom(rng))
	if err != nil {
		panic(err)
	}
	return pop, policy
}

// GenRunner creates a runner for GenScenario(size, days).
func GenRunner(size, days int, seed uint64) *simulation.Runner {
	r, err := GenScenario(size, days).Factory()(malariasim.NewRandom(seed))
	if err != nil {
		panic(err)
	}
	return r
}

// GenResult runs a scenario to completion and wraps it as a RunResult.
func GenResult(size, days int) production.RunResult {
	s := GenScenario(size, days)
	started := time.Now()
	h, err := GenRunner(size, days, 1).Run(context.Background())
	if err != nil {
		panic(err)
	}
	return production.NewRunResult(s, 1, h, started, time.Now())
}

// GenResultYAML generates YAML bytes for a run result of the given horizon.
func GenResultYAML(size, days int) []byte {
	data, err := yaml.Marshal(GenResult(size, days))
	if err != nil {
		panic(err)
	}
	return data
}
