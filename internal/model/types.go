package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// SelectionStrategy names a parent-selection operator.
type SelectionStrategy string

const (
	SelectionRouletteWheel SelectionStrategy = "roulette"
	SelectionTournament    SelectionStrategy = "tournament"
)

// Parameters is the full configuration of one search run. A value is
// immutable while a generation is in progress; the engine replaces it
// wholesale on init/reset.
type Parameters struct {
	BoardSize         int               `json:"board_size"`
	PopulationSize    int               `json:"population_size"`
	SelectionStrategy SelectionStrategy `json:"selection_strategy"`
	TournamentSize    int               `json:"tournament_size"`
	CrossoverRate     float64           `json:"crossover_rate"`
	MutationRate      float64           `json:"mutation_rate"`
	MaxGenerations    int               `json:"max_generations"`
}

// Individual is a candidate board: genome[row] is the column of the queen
// on that row. The genome is always a permutation of [0, BoardSize), so
// diagonal conflicts are the only conflicts possible.
type Individual struct {
	Genome  []int `json:"genome"`
	Fitness int   `json:"fitness"`
}

// Clone returns a deep copy so generations never share genome slices.
func (i Individual) Clone() Individual {
	return Individual{
		Genome:  append([]int(nil), i.Genome...),
		Fitness: i.Fitness,
	}
}

// GenerationStats aggregates one evaluated population.
type GenerationStats struct {
	Generation     int     `json:"generation"`
	BestFitness    int     `json:"best_fitness"`
	AverageFitness float64 `json:"average_fitness"`
	WorstFitness   int     `json:"worst_fitness"`
	BestGenome     []int   `json:"best_genome"`
	Solved         bool    `json:"solved"`
}

// RunRecord is the persisted outcome of one finished run.
type RunRecord struct {
	VersionedRecord
	RunID            string     `json:"run_id"`
	CreatedAtUTC     string     `json:"created_at_utc"`
	Params           Parameters `json:"params"`
	Seed             int64      `json:"seed"`
	Generations      int        `json:"generations"`
	BestFitness      int        `json:"best_fitness"`
	BestGenome       []int      `json:"best_genome"`
	Solved           bool       `json:"solved"`
	BestByGeneration []int      `json:"best_by_generation"`
}

// ProfileSet maps user-chosen names to saved parameter sets. The whole
// set is serialized as a single JSON object under one storage key.
type ProfileSet struct {
	VersionedRecord
	Profiles map[string]Parameters `json:"profiles"`
}
