package push

import (
	"math/rand/v2"

	"respush/internal/domain/catalog"
)

// Sampler draws uniform random samples without replacement.
// Each call is independent; nothing is remembered between draws.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler. A nil seed seeds from the runtime's entropy source;
// a non-nil seed makes every sequence of draws reproducible.
func NewSampler(seed *uint64) *Sampler {
	var src rand.Source
	if seed != nil {
		src = rand.NewPCG(*seed, *seed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample returns min(n, len(items)) distinct items in random order.
// The input slice is not modified.
func (s *Sampler) Sample(items []catalog.Item, n int) []catalog.Item {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}

	pool := make([]catalog.Item, len(items))
	copy(pool, items)

	// Partial Fisher-Yates: the first n slots end up a uniform sample
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
