package testutil

import (
	"sync"

	"github.com/comalice/malariasim"
)

// ScriptedRandom is a malariasim.Random that replays fixed values so tests can
// pin every Bernoulli trial and every index sample.
type ScriptedRandom struct {
	mu sync.Mutex

	// Floats are returned in order by Float64. Once exhausted, Fallback is returned.
	Floats   []float64
	Fallback float64

	// Samples are returned in order by Sample. Once exhausted, Sample returns
	// the first k indices 0..k-1.
	Samples [][]int

	floatCalls  int
	sampleCalls int
}

// NewConstantRandom returns a source whose Float64 always yields v and whose
// Sample always picks the lowest k indices.
func NewConstantRandom(v float64) *ScriptedRandom {
	return &ScriptedRandom{Fallback: v}
}

func (r *ScriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floatCalls++
	if len(r.Floats) == 0 {
		return r.Fallback
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *ScriptedRandom) Sample(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sampleCalls++
	if len(r.Samples) > 0 {
		s := r.Samples[0]
		r.Samples = r.Samples[1:]
		return s
	}
	if k > n {
		k = n
	}
	out := make([]int, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, i)
	}
	return out
}

// FloatCalls returns how many uniform draws were taken.
func (r *ScriptedRandom) FloatCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.floatCalls
}

// SampleCalls returns how many index samples were taken.
func (r *ScriptedRandom) SampleCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleCalls
}

var _ malariasim.Random = (*ScriptedRandom)(nil)
