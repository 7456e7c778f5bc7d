package simulation

// processDay runs one complete day. The phase order is fixed.
func (r *Runner) processDay() DayRecord {
	// Phase 1: bed nets before natural transitions
	protected := r.policy.ApplyBedNets(r.pop)

	// Phase 2: natural transitions
	r.pop.Update()

	// Phase 3: medication after natural transitions
	medicated := r.policy.ApplyMedication(r.pop)

	// Phase 4: record
	r.day++
	census := r.pop.Census()
	return DayRecord{
		Day:            r.day,
		Infected:       census.Infected,
		Census:         census,
		NewlyProtected: protected,
		Medicated:      medicated,
	}
}
