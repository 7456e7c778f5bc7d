package malariasim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Random is the randomness capability the model draws from.
type Random interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Sample returns k distinct indices chosen uniformly from [0, n).
	Sample(n, k int) []int
}

type pcgRandom struct {
	src *rand.PCG
	rng *rand.Rand
}

// NewRandom returns a Random backed by a PCG generator. Equal seeds replay equal runs.
func NewRandom(seed uint64) Random {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &pcgRandom{src: src, rng: rand.New(src)}
}

func (r *pcgRandom) Float64() float64 {
	return r.rng.Float64()
}

func (r *pcgRandom) Sample(n, k int) []int {
	if k <= 0 {
		return nil
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, n, r.src)
	return idxs
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func defaultRandom() (Random, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewRandom(seed), nil
}
