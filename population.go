package malariasim

import "fmt"

// Population owns one State per individual and the two natural transition rates.
// It is not safe for concurrent use.
type Population struct {
	states           []State
	transmissionRate float64
	recoveryRate     float64
	rng              Random
}

// NewPopulation creates size Susceptible individuals and infects initialInfected
// distinct ones chosen uniformly at random.
func NewPopulation(size, initialInfected int, transmissionRate, recoveryRate float64, opts ...Option) (*Population, error) {
	if size <= 0 {
		return nil, &ParameterError{Name: "size", Value: float64(size), Reason: "must be positive"}
	}
	if initialInfected < 0 || initialInfected > size {
		return nil, &ParameterError{
			Name:   "initial_infected",
			Value:  float64(initialInfected),
			Reason: fmt.Sprintf("must be within [0, %d]", size),
		}
	}
	if err := CheckProbability("transmission_rate", transmissionRate); err != nil {
		return nil, err
	}
	if err := CheckProbability("recovery_rate", recoveryRate); err != nil {
		return nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	p := &Population{
		states:           make([]State, size), // zero value is Susceptible
		transmissionRate: transmissionRate,
		recoveryRate:     recoveryRate,
		rng:              o.rng,
	}
	for _, i := range p.rng.Sample(size, initialInfected) {
		p.states[i] = Infected
	}
	return p, nil
}

func (p *Population) Size() int                 { return len(p.states) }
func (p *Population) TransmissionRate() float64 { return p.transmissionRate }
func (p *Population) RecoveryRate() float64     { return p.recoveryRate }

// State returns the state of individual i.
func (p *Population) State(i int) State {
	return p.states[i]
}

// States returns a copy of the state array.
func (p *Population) States() []State {
	out := make([]State, len(p.states))
	copy(out, p.states)
	return out
}

// Count returns how many individuals currently hold s.
func (p *Population) Count(s State) int {
	n := 0
	for _, st := range p.states {
		if st == s {
			n++
		}
	}
	return n
}

// Census tallies all four states in one pass.
func (p *Population) Census() Census {
	var c Census
	for _, st := range p.states {
		c.add(st)
	}
	return c
}

// ContagionPresent reports whether at least one individual is Infected.
func (p *Population) ContagionPresent() bool {
	for _, st := range p.states {
		if st == Infected {
			return true
		}
	}
	return false
}

// Update advances the population one day.
//
// Contagion presence is computed once up front. Susceptible decisions are
// buffered and committed after the pass so nobody infected today can infect
// others today. Recoveries are written in place; they cannot influence the
// Susceptible path, which depends only on the snapshot flag.
func (p *Population) Update() {
	contagion := p.ContagionPresent()

	var newlyInfected []int
	for i, st := range p.states {
		switch st {
		case Susceptible:
			if contagion && p.rng.Float64() < p.transmissionRate {
				newlyInfected = append(newlyInfected, i)
			}
		case Infected:
			if p.rng.Float64() < p.recoveryRate {
				p.states[i] = Recovered
			}
		}
	}

	for _, i := range newlyInfected {
		p.states[i] = Infected
	}
}
