package evo

import (
	"math"
	"math/rand"

	"nqueens/internal/model"
)

const (
	// convergenceTolerance is how close to the population average an
	// individual's fitness must be to count as converged.
	convergenceTolerance = 0.001
	// convergenceShare is the converged fraction that trips the guard.
	convergenceShare = 0.7
	// injectionShare is the fraction of slots overwritten on a trip.
	injectionShare = 0.3
)

// DiversityGuard detects a collapsed fitness distribution and injects
// fresh random individuals to restart exploration.
type DiversityGuard struct{}

// Apply inspects an evaluated population and, when more than
// convergenceShare of it sits within convergenceTolerance of the average
// fitness, overwrites injectionShare of the slots with freshly generated,
// freshly evaluated individuals. Target indices are drawn independently
// from [1, len(population)); index 0 holds the best elite and is never
// touched, and colliding draws mean fewer distinct slots may change.
// Returns the number of draws performed.
func (DiversityGuard) Apply(rng *rand.Rand, population []model.Individual) int {
	size := len(population)
	if size < 2 {
		return 0
	}

	total := 0
	for _, ind := range population {
		total += ind.Fitness
	}
	avg := float64(total) / float64(size)

	converged := 0
	for _, ind := range population {
		if math.Abs(float64(ind.Fitness)-avg) < convergenceTolerance {
			converged++
		}
	}
	if float64(converged) <= convergenceShare*float64(size) {
		return 0
	}

	n := len(population[0].Genome)
	injections := int(injectionShare * float64(size))
	for k := 0; k < injections; k++ {
		idx := 1 + rng.Intn(size-1)
		population[idx] = RandomIndividual(rng, n)
	}
	return injections
}
