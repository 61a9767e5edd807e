package evo

import (
	"nqueens/internal/model"
)

// CollectStats derives aggregate metrics from an evaluated population.
// The best genome is copied out so callers can hold it across generations.
func CollectStats(generation int, population []model.Individual) model.GenerationStats {
	if len(population) == 0 {
		return model.GenerationStats{Generation: generation}
	}

	best := population[0]
	worst := population[0].Fitness
	total := 0
	for _, ind := range population {
		total += ind.Fitness
		if ind.Fitness > best.Fitness {
			best = ind
		}
		if ind.Fitness < worst {
			worst = ind.Fitness
		}
	}

	return model.GenerationStats{
		Generation:     generation,
		BestFitness:    best.Fitness,
		AverageFitness: float64(total) / float64(len(population)),
		WorstFitness:   worst,
		BestGenome:     append([]int(nil), best.Genome...),
		Solved:         best.Fitness == MaxPairs(len(best.Genome)),
	}
}
