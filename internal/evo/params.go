package evo

import (
	"nqueens/internal/model"
)

// Closed ranges for every numeric parameter. Out-of-range input is
// clamped, never rejected.
const (
	MinBoardSize      = 4
	MaxBoardSize      = 50
	MinPopulationSize = 10
	MaxPopulationSize = 1000
	MinTournamentSize = 2
	MaxTournamentSize = 20
	MinGenerations    = 10
	MaxGenerations    = 100000
)

// DefaultParameters is the configuration used when a caller supplies none.
func DefaultParameters() model.Parameters {
	return model.Parameters{
		BoardSize:         8,
		PopulationSize:    100,
		SelectionStrategy: model.SelectionRouletteWheel,
		TournamentSize:    5,
		CrossoverRate:     0.8,
		MutationRate:      0.2,
		MaxGenerations:    1000,
	}
}

// ClampParameters forces every field of p into its documented range and
// normalizes the selection strategy. It never fails.
func ClampParameters(p model.Parameters) model.Parameters {
	p.BoardSize = clampInt(p.BoardSize, MinBoardSize, MaxBoardSize)
	p.PopulationSize = clampInt(p.PopulationSize, MinPopulationSize, MaxPopulationSize)
	p.TournamentSize = clampInt(p.TournamentSize, MinTournamentSize, MaxTournamentSize)
	p.CrossoverRate = clampFloat(p.CrossoverRate, 0, 1)
	p.MutationRate = clampFloat(p.MutationRate, 0, 1)
	p.MaxGenerations = clampInt(p.MaxGenerations, MinGenerations, MaxGenerations)
	switch p.SelectionStrategy {
	case model.SelectionRouletteWheel, model.SelectionTournament:
	default:
		p.SelectionStrategy = model.SelectionRouletteWheel
	}
	return p
}

// SanitizeParameters coerces the fields present in raw onto base,
// tolerating JSON's float-typed numbers. Absent or unrecognized keys
// leave the base value untouched.
func SanitizeParameters(base model.Parameters, raw map[string]any) model.Parameters {
	if v, ok := asInt(raw["board_size"]); ok {
		base.BoardSize = v
	}
	if v, ok := asInt(raw["population_size"]); ok {
		base.PopulationSize = v
	}
	if v, ok := asString(raw["selection_strategy"]); ok {
		base.SelectionStrategy = model.SelectionStrategy(v)
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		base.TournamentSize = v
	}
	if v, ok := asFloat64(raw["crossover_rate"]); ok {
		base.CrossoverRate = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok {
		base.MutationRate = v
	}
	if v, ok := asInt(raw["max_generations"]); ok {
		base.MaxGenerations = v
	}
	return base
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
