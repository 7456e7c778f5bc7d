package malariasim

import "math"

// InterventionPolicy applies bed nets and medication to a Population.
// It holds no state between calls apart from its two probabilities.
type InterventionPolicy struct {
	bedNetCoverage          float64
	medicationEffectiveness float64
	rng                     Random
}

// NewInterventionPolicy validates both probabilities and returns a policy.
func NewInterventionPolicy(bedNetCoverage, medicationEffectiveness float64, opts ...Option) (*InterventionPolicy, error) {
	if err := CheckProbability("bed_net_coverage", bedNetCoverage); err != nil {
		return nil, err
	}
	if err := CheckProbability("medication_effectiveness", medicationEffectiveness); err != nil {
		return nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &InterventionPolicy{
		bedNetCoverage:          bedNetCoverage,
		medicationEffectiveness: medicationEffectiveness,
		rng:                     o.rng,
	}, nil
}

func (ip *InterventionPolicy) BedNetCoverage() float64          { return ip.bedNetCoverage }
func (ip *InterventionPolicy) MedicationEffectiveness() float64 { return ip.medicationEffectiveness }

// ApplyBedNets samples floor(size*coverage) distinct individuals from the whole
// population and protects those that are Susceptible. Sampled individuals in
// any other state are left alone, so the effective rate among Susceptibles can
// fall below the coverage. It returns how many became Protected.
func (ip *InterventionPolicy) ApplyBedNets(p *Population) int {
	count := int(math.Floor(float64(p.Size()) * ip.bedNetCoverage))
	protected := 0
	for _, i := range ip.rng.Sample(p.Size(), count) {
		if p.states[i] == Susceptible {
			p.states[i] = Protected
			protected++
		}
	}
	return protected
}

// ApplyMedication gives every Infected individual one chance to recover
// immediately. It returns how many recovered.
func (ip *InterventionPolicy) ApplyMedication(p *Population) int {
	recovered := 0
	for i, st := range p.states {
		if st != Infected {
			continue
		}
		if ip.rng.Float64() < ip.medicationEffectiveness {
			p.states[i] = Recovered
			recovered++
		}
	}
	return recovered
}
