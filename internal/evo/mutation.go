package evo

import (
	"math/rand"
)

// SwapMutation perturbs a genome by exchanging the columns of two distinct
// rows. A swap of two entries keeps a permutation a permutation.
type SwapMutation struct {
	// Rate is a single Bernoulli trial per offspring, not per gene.
	Rate float64
}

// Apply mutates genome in place.
func (m SwapMutation) Apply(rng *rand.Rand, genome []int) {
	if len(genome) < 2 || rng.Float64() >= m.Rate {
		return
	}
	i := rng.Intn(len(genome))
	j := rng.Intn(len(genome) - 1)
	if j >= i {
		j++
	}
	genome[i], genome[j] = genome[j], genome[i]
}
