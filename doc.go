// Package malariasim models day-by-day malaria spread through a fixed population.
//
// Every individual holds exactly one State. A Population advances one day at a
// time with Update, and an InterventionPolicy brackets that step: bed nets are
// handed out before the natural transitions, medication is given after them.
//
// # Daily Order
//
//	policy.ApplyBedNets(pop)
//	pop.Update()
//	policy.ApplyMedication(pop)
//	infected := pop.Count(malariasim.Infected)
//
// Reordering these calls changes outcomes. The simulation package wraps the
// sequence in a Runner so callers do not have to repeat it.
//
// # Transitions
//
//	Susceptible --(contagion present, p=transmission)--> Infected
//	Infected    --(p=recovery)-------------------------> Recovered
//	Susceptible --(bed net sampled)--------------------> Protected
//	Infected    --(p=medication)-----------------------> Recovered
//
// Protected and Recovered are absorbing: nothing moves an individual out of
// them.
//
// # Randomness
//
// All draws go through the Random interface. NewRandom returns a seedable
// source so runs can be replayed exactly; tests may inject a scripted one.
package malariasim
