package evo

import (
	"math/rand"
)

// PMXCrossover recombines two parent permutations with partially mapped
// crossover: a random segment is inherited from parent 1, the rest comes
// from parent 2 with mapping-chain repair so the child stays a permutation.
type PMXCrossover struct {
	// Rate is the probability that crossover happens at all; otherwise
	// the child is a copy of parent 1.
	Rate float64
}

// Child produces one offspring genome. Callers must still validate the
// result with IsPermutation before admitting it to the population.
func (c PMXCrossover) Child(rng *rand.Rand, parent1, parent2 []int) []int {
	n := len(parent1)
	if rng.Float64() >= c.Rate {
		return append([]int(nil), parent1...)
	}

	lo := rng.Intn(n)
	hi := rng.Intn(n)
	for hi == lo {
		hi = rng.Intn(n)
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	child := make([]int, n)
	used := make([]bool, n)
	for i := range child {
		child[i] = -1
	}

	// Segment from parent 1, plus the value mapping between the parents
	// restricted to that segment.
	mapping := make(map[int]int, hi-lo+1)
	for i := lo; i <= hi; i++ {
		child[i] = parent1[i]
		used[parent1[i]] = true
		mapping[parent1[i]] = parent2[i]
	}

	for i := 0; i < n; i++ {
		if i >= lo && i <= hi {
			continue
		}
		v := parent2[i]
		for hops := 0; used[v] && hops < n; hops++ {
			next, ok := mapping[v]
			if !ok {
				break
			}
			v = next
		}
		if used[v] {
			// Broken mapping chain: take any value still absent.
			for candidate := 0; candidate < n; candidate++ {
				if !used[candidate] {
					v = candidate
					break
				}
			}
		}
		child[i] = v
		used[v] = true
	}
	return child
}
