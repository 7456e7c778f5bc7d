package testutil

import (
	"testing"

	"github.com/comalice/malariasim"
)

// AssertConserved fails the test unless every individual is counted exactly once.
func AssertConserved(t testing.TB, pop *malariasim.Population) {
	t.Helper()
	c := pop.Census()
	if c.Total() != pop.Size() {
		t.Fatalf("census total %d != population size %d (%+v)", c.Total(), pop.Size(), c)
	}
	for i, st := range pop.States() {
		if !st.Valid() {
			t.Fatalf("individual %d holds invalid state %v", i, st)
		}
	}
}

// AssertAbsorbed fails the test if any individual that was Protected or
// Recovered in before holds a different state in after.
func AssertAbsorbed(t testing.TB, before, after []malariasim.State) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("state slices differ in length: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Absorbing() && after[i] != before[i] {
			t.Fatalf("individual %d left absorbing state %v for %v", i, before[i], after[i])
		}
	}
}

// IndicesIn returns the indices of states equal to s.
func IndicesIn(states []malariasim.State, s malariasim.State) []int {
	var out []int
	for i, st := range states {
		if st == s {
			out = append(out, i)
		}
	}
	return out
}
