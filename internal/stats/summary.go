package stats

import (
	"nqueens/internal/evo"
	"nqueens/internal/model"
)

// RunSummary condenses one run's best-by-generation trace.
type RunSummary struct {
	RunID       string `json:"run_id"`
	Generations int    `json:"generations"`
	Target      int    `json:"target"`
	FirstBest   int    `json:"first_best"`
	FinalBest   int    `json:"final_best"`
	PeakBest    int    `json:"peak_best"`
	Solved      bool   `json:"solved"`
	// SolvedAt is the first generation whose best reached the target;
	// meaningful only when Solved is true.
	SolvedAt int `json:"solved_at,omitempty"`
}

func SummarizeRun(record model.RunRecord) RunSummary {
	summary := RunSummary{
		RunID:       record.RunID,
		Generations: record.Generations,
		Target:      evo.MaxPairs(record.Params.BoardSize),
		Solved:      record.Solved,
	}
	trace := record.BestByGeneration
	if len(trace) == 0 {
		summary.FinalBest = record.BestFitness
		summary.PeakBest = record.BestFitness
		return summary
	}
	summary.FirstBest = trace[0]
	summary.FinalBest = trace[len(trace)-1]
	for generation, best := range trace {
		if best > summary.PeakBest {
			summary.PeakBest = best
		}
		if record.Solved && summary.SolvedAt == 0 && best == summary.Target && generation > 0 {
			summary.SolvedAt = generation
		}
	}
	if record.Solved && summary.SolvedAt == 0 && trace[0] == summary.Target {
		summary.SolvedAt = 0
	}
	return summary
}

// RunAggregate summarizes a set of finished runs.
type RunAggregate struct {
	TotalRuns      int     `json:"total_runs"`
	SolvedRuns     int     `json:"solved_runs"`
	SuccessRate    float64 `json:"success_rate"`
	AvgGenerations float64 `json:"avg_generations"`
	MinGenerations int     `json:"min_generations"`
	MaxGenerations int     `json:"max_generations"`
}

// AggregateRuns computes success-rate and generation spread across
// records. The generation average covers solved runs only; unsolved
// runs always burn their full budget and would drown the signal.
func AggregateRuns(records []model.RunRecord) RunAggregate {
	agg := RunAggregate{TotalRuns: len(records)}
	if len(records) == 0 {
		return agg
	}

	totalSolvedGenerations := 0
	first := true
	for _, record := range records {
		if first || record.Generations < agg.MinGenerations {
			agg.MinGenerations = record.Generations
		}
		if first || record.Generations > agg.MaxGenerations {
			agg.MaxGenerations = record.Generations
		}
		first = false
		if record.Solved {
			agg.SolvedRuns++
			totalSolvedGenerations += record.Generations
		}
	}
	agg.SuccessRate = float64(agg.SolvedRuns) / float64(agg.TotalRuns)
	if agg.SolvedRuns > 0 {
		agg.AvgGenerations = float64(totalSolvedGenerations) / float64(agg.SolvedRuns)
	}
	return agg
}
