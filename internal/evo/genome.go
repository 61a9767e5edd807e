package evo

import (
	"math/rand"

	"nqueens/internal/model"
)

// RandomGenome draws a uniformly random permutation of [0, n) by picking
// a random remaining value from a shrinking candidate set. Factory output
// is structurally valid and never needs repair.
func RandomGenome(rng *rand.Rand, n int) []int {
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	genome := make([]int, 0, n)
	for len(candidates) > 0 {
		idx := rng.Intn(len(candidates))
		genome = append(genome, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return genome
}

// RandomIndividual builds and scores a fresh random board.
func RandomIndividual(rng *rand.Rand, n int) model.Individual {
	genome := RandomGenome(rng, n)
	return model.Individual{Genome: genome, Fitness: Fitness(genome)}
}

// IsPermutation reports whether genome contains each value in
// [0, len(genome)) exactly once.
func IsPermutation(genome []int) bool {
	seen := make([]bool, len(genome))
	for _, v := range genome {
		if v < 0 || v >= len(genome) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
