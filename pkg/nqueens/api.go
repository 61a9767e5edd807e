package nqueens

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nqueens/internal/evo"
	"nqueens/internal/model"
	"nqueens/internal/platform"
	"nqueens/internal/storage"
)

const defaultDBPath = "nqueens.db"

type Options struct {
	StoreKind string
	DBPath    string
	Logger    *slog.Logger
}

// Client is the embedding-friendly entry point: it owns the store and
// the run hub and exposes synchronous runs, profile management, and run
// history on top of them.
type Client struct {
	store storage.Store
	hub   *platform.Hub
}

// RunRequest describes one solver run. Zero fields fall back to the
// defaults, or to the named profile when Profile is set.
type RunRequest struct {
	BoardSize      int
	Population     int
	Generations    int
	Selection      string
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
	// Seed zero draws a time-based seed; any other value makes the run
	// reproducible.
	Seed int64
	// Profile names a saved parameter set to start from.
	Profile string
	// Events, when non-nil, receives live engine events during Run.
	Events chan<- evo.Event
}

type RunSummary struct {
	RunID            string
	Params           model.Parameters
	Seed             int64
	Generations      int
	BestFitness      int
	BestGenome       []int
	Solved           bool
	BestByGeneration []int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	BoardSize    int
	Seed         int64
	Generations  int
	BestFitness  int
	Solved       bool
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store: store,
		hub:   platform.NewHub(platform.Config{Store: store, Logger: opts.Logger}),
	}, nil
}

func (c *Client) Close() error {
	c.hub.Shutdown()
	return storage.CloseIfSupported(c.store)
}

// Init prepares the store and hub. It is idempotent and implied by the
// other operations.
func (c *Client) Init(ctx context.Context) error {
	return c.hub.Init(ctx)
}

// Run executes one search to completion and returns its summary. The
// run record is persisted and later visible through Runs.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := c.Init(ctx); err != nil {
		return RunSummary{}, err
	}

	params, err := c.resolveParams(ctx, req)
	if err != nil {
		return RunSummary{}, err
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runID, err := c.hub.StartRun(platform.RunConfig{
		Params: params,
		Seed:   seed,
		Events: req.Events,
	})
	if err != nil {
		return RunSummary{}, err
	}

	record, err := c.hub.WaitRun(ctx, runID)
	if err != nil {
		// The engine keeps searching in the background if the caller
		// gave up waiting; abandon it instead.
		_ = c.hub.StopRun(runID)
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:            record.RunID,
		Params:           record.Params,
		Seed:             record.Seed,
		Generations:      record.Generations,
		BestFitness:      record.BestFitness,
		BestGenome:       record.BestGenome,
		Solved:           record.Solved,
		BestByGeneration: record.BestByGeneration,
	}, nil
}

func (c *Client) resolveParams(ctx context.Context, req RunRequest) (model.Parameters, error) {
	params := evo.DefaultParameters()
	if req.Profile != "" {
		saved, ok, err := c.Profile(ctx, req.Profile)
		if err != nil {
			return model.Parameters{}, err
		}
		if !ok {
			return model.Parameters{}, fmt.Errorf("unknown profile: %s", req.Profile)
		}
		params = saved
	}

	if req.BoardSize > 0 {
		params.BoardSize = req.BoardSize
	}
	if req.Population > 0 {
		params.PopulationSize = req.Population
	}
	if req.Generations > 0 {
		params.MaxGenerations = req.Generations
	}
	if req.Selection != "" {
		params.SelectionStrategy = model.SelectionStrategy(req.Selection)
	}
	if req.TournamentSize > 0 {
		params.TournamentSize = req.TournamentSize
	}
	if req.CrossoverRate > 0 {
		params.CrossoverRate = req.CrossoverRate
	}
	if req.MutationRate > 0 {
		params.MutationRate = req.MutationRate
	}
	return params, nil
}

// SaveProfile stores params under name, replacing any previous profile
// with that name.
func (c *Client) SaveProfile(ctx context.Context, name string, params model.Parameters) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := c.Init(ctx); err != nil {
		return err
	}

	profiles, err := c.loadProfiles(ctx)
	if err != nil {
		return err
	}
	profiles.Profiles[name] = params
	return c.store.SaveProfiles(ctx, profiles)
}

// Profiles returns all saved profiles by name.
func (c *Client) Profiles(ctx context.Context) (map[string]model.Parameters, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	profiles, err := c.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return profiles.Profiles, nil
}

func (c *Client) Profile(ctx context.Context, name string) (model.Parameters, bool, error) {
	profiles, err := c.Profiles(ctx)
	if err != nil {
		return model.Parameters{}, false, err
	}
	params, ok := profiles[name]
	return params, ok, nil
}

func (c *Client) DeleteProfile(ctx context.Context, name string) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	profiles, err := c.loadProfiles(ctx)
	if err != nil {
		return err
	}
	if _, ok := profiles.Profiles[name]; !ok {
		return fmt.Errorf("unknown profile: %s", name)
	}
	delete(profiles.Profiles, name)
	return c.store.SaveProfiles(ctx, profiles)
}

func (c *Client) loadProfiles(ctx context.Context) (model.ProfileSet, error) {
	profiles, ok, err := c.store.GetProfiles(ctx)
	if err != nil {
		return model.ProfileSet{}, err
	}
	if !ok {
		profiles = model.ProfileSet{
			VersionedRecord: model.VersionedRecord{
				SchemaVersion: storage.CurrentSchemaVersion,
				CodecVersion:  storage.CurrentCodecVersion,
			},
		}
	}
	if profiles.Profiles == nil {
		profiles.Profiles = make(map[string]model.Parameters)
	}
	return profiles, nil
}

// Runs lists finished runs oldest first. A positive limit keeps only
// the most recent entries.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	records, err := c.store.ListRunRecords(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	items := make([]RunItem, 0, len(records))
	for _, record := range records {
		items = append(items, RunItem{
			RunID:        record.RunID,
			CreatedAtUTC: record.CreatedAtUTC,
			BoardSize:    record.Params.BoardSize,
			Seed:         record.Seed,
			Generations:  record.Generations,
			BestFitness:  record.BestFitness,
			Solved:       record.Solved,
		})
	}
	return items, nil
}

// Records returns every stored run record, oldest first.
func (c *Client) Records(ctx context.Context) ([]model.RunRecord, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRunRecords(ctx)
}

// RunRecord returns the full stored record for one run.
func (c *Client) RunRecord(ctx context.Context, runID string) (model.RunRecord, bool, error) {
	if err := c.Init(ctx); err != nil {
		return model.RunRecord{}, false, err
	}
	return c.store.GetRunRecord(ctx, runID)
}

// Hub exposes the run registry for callers that manage long-lived runs
// themselves (start, pause, resume, stop by run ID).
func (c *Client) Hub() *platform.Hub {
	return c.hub
}
