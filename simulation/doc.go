// Package simulation provides a day-stepped deterministic runner for malariasim.
//
// Each simulated day is processed as one tick with a fixed phase order:
//  1. Bed nets are handed out (InterventionPolicy.ApplyBedNets)
//  2. The population advances one day (Population.Update)
//  3. Medication is given (InterventionPolicy.ApplyMedication)
//  4. The day's census is recorded and observers are notified
//
// A day is never partially applied: cancellation is checked only between
// days, and observers run after the day has been committed.
//
// # Example Usage
//
//	rng := malariasim.NewRandom(42)
//	pop, _ := malariasim.NewPopulation(1000, 10, 0.05, 0.01, malariasim.WithRandom(rng))
//	policy, _ := malariasim.NewInterventionPolicy(0.2, 0.5, malariasim.WithRandom(rng))
//	r, _ := simulation.NewRunner(pop, policy, simulation.Config{Days: 100})
//	history, _ := r.Run(ctx)
//	infected := history.Infected()
//
// # Pacing
//
// With Config.TickRate zero, days run back to back. A positive TickRate paces
// days on a ticker, which is useful for live dashboards fed by an Observer.
// Pacing never changes outcomes; the same seed yields the same History.
//
// # Ensembles
//
// Ensemble runs independent replicates concurrently, each with its own seeded
// Random. Parallelism is across whole runs only; a single Population is always
// advanced by one goroutine.
package simulation
