package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"nqueens/internal/model"
)

// eliteShare is the fraction of the population carried over unchanged,
// floored at one individual.
const eliteShare = 0.1

// Monitor owns one population and drives it a generation at a time. It is
// a pull-based core: callers (normally the Engine) invoke Reset and Step
// synchronously, which keeps every operator deterministically testable
// against a seeded random source.
//
// A Monitor is not safe for concurrent use; exactly one goroutine may
// drive it.
type Monitor struct {
	params    model.Parameters
	rng       *rand.Rand
	selector  Selector
	crossover PMXCrossover
	mutation  SwapMutation
	guard     DiversityGuard

	population []model.Individual
	generation int
	best       *model.Individual
	solved     bool
}

// NewMonitor validates the configuration and returns an empty monitor.
// The population is built on the first Reset. Parameters arriving from
// the control protocol are clamped by the engine before they get here;
// programmatic configurations are validated structurally but taken as
// given, so callers may run with out-of-policy bounds such as a single
// generation.
func NewMonitor(params model.Parameters, rng *rand.Rand) (*Monitor, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	m := &Monitor{rng: rng}
	m.configure(params)
	return m, nil
}

func validateParams(params model.Parameters) error {
	if params.BoardSize < 2 {
		return fmt.Errorf("board size must be >= 2, got %d", params.BoardSize)
	}
	if params.PopulationSize < 2 {
		return fmt.Errorf("population size must be >= 2, got %d", params.PopulationSize)
	}
	if params.MaxGenerations < 1 {
		return fmt.Errorf("max generations must be >= 1, got %d", params.MaxGenerations)
	}
	if params.CrossoverRate < 0 || params.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1], got %v", params.CrossoverRate)
	}
	if params.MutationRate < 0 || params.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1], got %v", params.MutationRate)
	}
	return nil
}

func (m *Monitor) configure(params model.Parameters) {
	m.params = params
	m.selector = NewSelector(params)
	m.crossover = PMXCrossover{Rate: params.CrossoverRate}
	m.mutation = SwapMutation{Rate: params.MutationRate}
}

// Reset replaces the parameters wholesale, clears the generation counter
// and best-ever individual, and builds a fresh evaluated population.
// It returns the initial (generation zero) statistics.
func (m *Monitor) Reset(params model.Parameters) (model.GenerationStats, error) {
	if err := validateParams(params); err != nil {
		return model.GenerationStats{}, err
	}
	m.configure(params)
	m.generation = 0
	m.best = nil
	m.solved = false
	m.population = make([]model.Individual, 0, params.PopulationSize)
	for i := 0; i < params.PopulationSize; i++ {
		m.population = append(m.population, RandomIndividual(m.rng, params.BoardSize))
	}
	return m.collect(), nil
}

// Initialized reports whether a population exists.
func (m *Monitor) Initialized() bool {
	return m.population != nil
}

// Generation returns the monotonic generation counter.
func (m *Monitor) Generation() int {
	return m.generation
}

// Params returns the active parameters.
func (m *Monitor) Params() model.Parameters {
	return m.params
}

// Best returns a copy of the best individual ever observed in this run.
func (m *Monitor) Best() (model.Individual, bool) {
	if m.best == nil {
		return model.Individual{}, false
	}
	return m.best.Clone(), true
}

// Done reports whether a termination condition holds: the board is solved
// or the generation budget is spent.
func (m *Monitor) Done() bool {
	return m.solved || m.generation >= m.params.MaxGenerations
}

// Step advances exactly one generation: reproduction with elitism, the
// diversity guard, then statistics collection with best-ever tracking.
// Once begun a step runs to completion; cancellation happens between
// steps, at the caller's yield point.
func (m *Monitor) Step() model.GenerationStats {
	m.generation++
	m.population = m.reproduce()
	m.guard.Apply(m.rng, m.population)
	return m.collect()
}

// reproduce builds the next generation: a stable descending sort keeps
// tie order, the elite prefix is copied over by value, and the remaining
// slots are filled by select → crossover → mutate → validate. A child
// that fails permutation validation is discarded for a fresh random
// individual.
func (m *Monitor) reproduce() []model.Individual {
	ranked := make([]model.Individual, len(m.population))
	copy(ranked, m.population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	eliteCount := int(eliteShare * float64(len(ranked)))
	if eliteCount < 1 {
		eliteCount = 1
	}

	next := make([]model.Individual, 0, len(ranked))
	for i := 0; i < eliteCount; i++ {
		next = append(next, ranked[i].Clone())
	}

	for len(next) < len(ranked) {
		parent1 := m.selector.PickParent(m.rng, ranked)
		parent2 := m.selector.PickParent(m.rng, ranked)
		genome := m.crossover.Child(m.rng, parent1.Genome, parent2.Genome)
		m.mutation.Apply(m.rng, genome)
		if !IsPermutation(genome) {
			next = append(next, RandomIndividual(m.rng, m.params.BoardSize))
			continue
		}
		next = append(next, model.Individual{Genome: genome, Fitness: Fitness(genome)})
	}
	return next
}

// collect computes statistics for the current population and advances the
// best-ever individual, replacing it only on strict fitness improvement
// so its fitness never decreases within a run.
func (m *Monitor) collect() model.GenerationStats {
	stats := CollectStats(m.generation, m.population)
	if m.best == nil || stats.BestFitness > m.best.Fitness {
		m.best = &model.Individual{
			Genome:  append([]int(nil), stats.BestGenome...),
			Fitness: stats.BestFitness,
		}
	}
	m.solved = stats.Solved
	return stats
}
