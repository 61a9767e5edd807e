package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqueens/internal/model"
)

func TestClampParametersForcesRanges(t *testing.T) {
	tests := []struct {
		name string
		in   model.Parameters
		want model.Parameters
	}{
		{
			name: "everything below range",
			in: model.Parameters{
				BoardSize:         1,
				PopulationSize:    0,
				SelectionStrategy: "",
				TournamentSize:    0,
				CrossoverRate:     -0.5,
				MutationRate:      -1,
				MaxGenerations:    1,
			},
			want: model.Parameters{
				BoardSize:         4,
				PopulationSize:    10,
				SelectionStrategy: model.SelectionRouletteWheel,
				TournamentSize:    2,
				CrossoverRate:     0,
				MutationRate:      0,
				MaxGenerations:    10,
			},
		},
		{
			name: "everything above range",
			in: model.Parameters{
				BoardSize:         500,
				PopulationSize:    5000,
				SelectionStrategy: "simulated_annealing",
				TournamentSize:    100,
				CrossoverRate:     1.5,
				MutationRate:      2,
				MaxGenerations:    1 << 30,
			},
			want: model.Parameters{
				BoardSize:         50,
				PopulationSize:    1000,
				SelectionStrategy: model.SelectionRouletteWheel,
				TournamentSize:    20,
				CrossoverRate:     1,
				MutationRate:      1,
				MaxGenerations:    100000,
			},
		},
		{
			name: "in range untouched",
			in: model.Parameters{
				BoardSize:         8,
				PopulationSize:    100,
				SelectionStrategy: model.SelectionTournament,
				TournamentSize:    5,
				CrossoverRate:     0.8,
				MutationRate:      0.2,
				MaxGenerations:    1000,
			},
			want: model.Parameters{
				BoardSize:         8,
				PopulationSize:    100,
				SelectionStrategy: model.SelectionTournament,
				TournamentSize:    5,
				CrossoverRate:     0.8,
				MutationRate:      0.2,
				MaxGenerations:    1000,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampParameters(tc.in))
		})
	}
}

func TestSanitizeParametersCoercesPresentFields(t *testing.T) {
	base := DefaultParameters()

	got := SanitizeParameters(base, map[string]any{
		"board_size":         float64(12), // JSON numbers arrive as float64
		"population_size":    200,
		"selection_strategy": "tournament",
		"crossover_rate":     0.9,
		"mutation_rate":      1,
		"max_generations":    int64(2000),
	})

	require.Equal(t, 12, got.BoardSize)
	require.Equal(t, 200, got.PopulationSize)
	require.Equal(t, model.SelectionTournament, got.SelectionStrategy)
	require.Equal(t, 0.9, got.CrossoverRate)
	require.Equal(t, 1.0, got.MutationRate)
	require.Equal(t, 2000, got.MaxGenerations)
	// Absent keys keep the base value.
	require.Equal(t, base.TournamentSize, got.TournamentSize)
}

func TestSanitizeParametersIgnoresUnrecognizedAndMistyped(t *testing.T) {
	base := DefaultParameters()

	got := SanitizeParameters(base, map[string]any{
		"board_size":      "twelve",
		"colour_scheme":   "dark",
		"selection_strategy": 7,
	})

	assert.Equal(t, base, got)
}
