// Package rng provides the explicit random source used by the simulation.
// Every draw goes through a Source handle so that a run is reproducible from
// its seed.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Source supplies the draws the simulation needs.
type Source interface {
	// IntN returns a uniform integer in [0, n). n must be > 0.
	IntN(n int) int
	// WeightedIndex returns an index with probability proportional to its
	// weight. Weights must be non-negative. ok is false when no index can
	// be drawn (empty slice or all-zero weights).
	WeightedIndex(weights []float64) (idx int, ok bool)
}

// Rand is a seeded Source backed by PCG.
type Rand struct {
	src  *rand.PCG
	rand *rand.Rand
}

// New returns a Rand seeded with seed.
func New(seed uint64) *Rand {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Rand{src: src, rand: rand.New(src)}
}

// IntN returns a uniform integer in [0, n).
func (r *Rand) IntN(n int) int {
	return r.rand.IntN(n)
}

// Float64 returns a uniform float in [0, 1).
func (r *Rand) Float64() float64 {
	return r.rand.Float64()
}

// WeightedIndex draws one index proportionally to weights. The draw shares
// the PCG state with IntN, so interleaved calls stay deterministic.
func (r *Rand) WeightedIndex(weights []float64) (int, bool) {
	if len(weights) == 0 {
		return -1, false
	}
	w := sampleuv.NewWeighted(weights, r.src)
	return w.Take()
}

// Choose returns a uniformly chosen element of items. items must be non-empty.
func Choose[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// ChooseWeighted returns an element of items drawn with probability
// proportional to weight(item). ok is false if nothing could be drawn.
func ChooseWeighted[T any](src Source, items []T, weight func(T) float64) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	weights := make([]float64, len(items))
	for i, it := range items {
		w := weight(it)
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
	idx, ok := src.WeightedIndex(weights)
	if !ok || idx < 0 || idx >= len(items) {
		return zero, false
	}
	return items[idx], true
}
