package evo

import (
	"math/rand"

	"nqueens/internal/model"
)

// Selector chooses one parent from an evaluated population. Implementations
// draw every random decision from the supplied source.
type Selector interface {
	Name() string
	PickParent(rng *rand.Rand, population []model.Individual) model.Individual
}

// NewSelector resolves the strategy tag once at configuration time.
// Unrecognized tags fall back to roulette-wheel, matching the clamping
// policy for every other parameter.
func NewSelector(params model.Parameters) Selector {
	if params.SelectionStrategy == model.SelectionTournament {
		return TournamentSelector{Size: params.TournamentSize}
	}
	return RouletteWheelSelector{}
}

// RouletteWheelSelector picks parents with probability proportional to
// fitness.
type RouletteWheelSelector struct{}

func (RouletteWheelSelector) Name() string {
	return "roulette"
}

func (RouletteWheelSelector) PickParent(rng *rand.Rand, population []model.Individual) model.Individual {
	total := 0
	for _, ind := range population {
		total += ind.Fitness
	}
	// A fitness-zero population would starve the wheel; fall back to a
	// uniform draw.
	if total <= 0 {
		return population[rng.Intn(len(population))]
	}
	draw := rng.Intn(total)
	for _, ind := range population {
		draw -= ind.Fitness
		if draw < 0 {
			return ind
		}
	}
	return population[len(population)-1]
}

// TournamentSelector samples Size distinct individuals without replacement
// and returns the fittest; ties keep the first one encountered.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) PickParent(rng *rand.Rand, population []model.Individual) model.Individual {
	size := s.Size
	if size < 2 {
		size = 2
	}
	if size > len(population) {
		size = len(population)
	}
	order := rng.Perm(len(population))
	best := population[order[0]]
	for _, idx := range order[1:size] {
		if population[idx].Fitness > best.Fitness {
			best = population[idx]
		}
	}
	return best
}
