package main

import (
	"encoding/json"
	"fmt"
	"os"

	"nqueens/internal/evo"
	nqapi "nqueens/pkg/nqueens"
)

// loadRunRequestFromConfig reads a JSON parameter file. Keys use the
// same snake_case names as the persisted records; unknown keys are
// ignored and numbers tolerate JSON's float typing.
func loadRunRequestFromConfig(path string) (nqapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nqapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nqapi.RunRequest{}, fmt.Errorf("parse %s: %w", path, err)
	}

	params := evo.SanitizeParameters(evo.DefaultParameters(), raw)
	req := nqapi.RunRequest{
		BoardSize:      params.BoardSize,
		Population:     params.PopulationSize,
		Generations:    params.MaxGenerations,
		Selection:      string(params.SelectionStrategy),
		TournamentSize: params.TournamentSize,
		CrossoverRate:  params.CrossoverRate,
		MutationRate:   params.MutationRate,
	}
	if v, ok := asConfigInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := raw["profile"].(string); ok {
		req.Profile = v
	}
	return req, nil
}

func asConfigInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}
