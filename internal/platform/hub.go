package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"nqueens/internal/evo"
	"nqueens/internal/model"
	"nqueens/internal/storage"
)

type Config struct {
	Store  storage.Store
	Logger *slog.Logger
}

// RunConfig describes one search run to launch.
type RunConfig struct {
	// RunID defaults to a fresh UUID.
	RunID  string
	Params model.Parameters
	Seed   int64
	// Events, when non-nil, receives a copy of every engine event. The
	// hub never closes it.
	Events chan<- evo.Event
}

// Hub is the registry of concurrently running engines. It launches each
// engine under the supervisor, routes control commands to it by run ID,
// and persists a run record when the engine terminates.
type Hub struct {
	store storage.Store
	log   *slog.Logger
	sup   *Supervisor

	mu      sync.RWMutex
	started bool
	runs    map[string]*activeRun
}

type activeRun struct {
	id     string
	engine *evo.Engine
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		store: cfg.Store,
		log:   logger,
		sup:   NewSupervisor(SupervisorPolicy{}),
		runs:  make(map[string]*activeRun),
	}
}

func (h *Hub) Init(ctx context.Context) error {
	if h.store == nil {
		return errors.New("store is required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return nil
	}
	if err := h.store.Init(ctx); err != nil {
		return err
	}
	h.runs = make(map[string]*activeRun)
	h.started = true
	return nil
}

// Reset stops all runs, drops stored data when the backend supports it,
// and reinitializes the hub.
func (h *Hub) Reset(ctx context.Context) error {
	h.Shutdown()
	if resetter, ok := h.store.(storage.Resetter); ok {
		if err := resetter.Reset(ctx); err != nil {
			return err
		}
	}
	return h.Init(ctx)
}

// StartRun builds an engine for cfg and starts it immediately. The
// returned ID addresses the run in the control operations.
func (h *Hub) StartRun(cfg RunConfig) (string, error) {
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	params := cfg.Params
	if params == (model.Parameters{}) {
		params = evo.DefaultParameters()
	}

	engine, err := evo.NewEngine(evo.EngineConfig{Params: params, Seed: cfg.Seed})
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	run := &activeRun{
		id:     runID,
		engine: engine,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		cancel()
		return "", errors.New("hub is not initialized")
	}
	if _, exists := h.runs[runID]; exists {
		h.mu.Unlock()
		cancel()
		return "", fmt.Errorf("run already active: %s", runID)
	}
	h.runs[runID] = run
	h.mu.Unlock()

	spec := SupervisorChildSpec{
		Name:    engineTaskName(runID),
		Restart: SupervisorRestartTemporary,
	}
	if err := h.sup.StartSpec(spec, engine.Run); err != nil {
		h.mu.Lock()
		delete(h.runs, runID)
		h.mu.Unlock()
		cancel()
		return "", err
	}

	go h.collect(runCtx, run, params, cfg.Seed, cfg.Events)
	engine.Commands() <- evo.Command{Type: evo.CommandStart}
	h.log.Info("run started", "run_id", runID, "board_size", params.BoardSize, "seed", cfg.Seed)
	return runID, nil
}

// collect drains engine events, forwards them to the caller's sink, and
// writes the run record when the terminal event arrives.
func (h *Hub) collect(ctx context.Context, run *activeRun, params model.Parameters, seed int64, sink chan<- evo.Event) {
	defer close(run.done)

	createdAt := time.Now().UTC().Format(time.RFC3339)
	var bestByGeneration []int
	var last model.GenerationStats

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-run.engine.Events():
			if sink != nil {
				select {
				case sink <- event:
				case <-ctx.Done():
					return
				}
			}
			switch event.Type {
			case evo.EventStats:
				last = *event.Stats
				bestByGeneration = append(bestByGeneration, event.Stats.BestFitness)
			case evo.EventError:
				h.log.Warn("run reported an error", "run_id", run.id, "error", event.Err)
			case evo.EventSolution:
				record := model.RunRecord{
					VersionedRecord: model.VersionedRecord{
						SchemaVersion: storage.CurrentSchemaVersion,
						CodecVersion:  storage.CurrentCodecVersion,
					},
					RunID:            run.id,
					CreatedAtUTC:     createdAt,
					Params:           params,
					Seed:             seed,
					Generations:      last.Generation,
					BestFitness:      event.Best.Fitness,
					BestGenome:       append([]int(nil), event.Best.Genome...),
					Solved:           last.Solved,
					BestByGeneration: bestByGeneration,
				}
				if err := h.store.SaveRunRecord(ctx, record); err != nil {
					h.log.Error("persist run record", "run_id", run.id, "error", err)
				}
				h.log.Info("run finished",
					"run_id", run.id,
					"generations", record.Generations,
					"best_fitness", record.BestFitness,
					"solved", record.Solved)
				h.finishRun(run.id)
				return
			}
		}
	}
}

func (h *Hub) finishRun(runID string) {
	h.mu.Lock()
	run, ok := h.runs[runID]
	if ok {
		delete(h.runs, runID)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	h.sup.Stop(engineTaskName(runID))
	run.cancel()
}

func (h *Hub) PauseRun(runID string) error {
	return h.sendRunCommand(runID, evo.Command{Type: evo.CommandPause})
}

func (h *Hub) ResumeRun(runID string) error {
	return h.sendRunCommand(runID, evo.Command{Type: evo.CommandStart})
}

// ResetRun reinitializes a run in place. A nil params keeps the run's
// current parameters; a payload is clamped by the engine.
func (h *Hub) ResetRun(runID string, params *model.Parameters) error {
	return h.sendRunCommand(runID, evo.Command{Type: evo.CommandReset, Params: params})
}

// StopRun abandons a run without writing a record.
func (h *Hub) StopRun(runID string) error {
	h.mu.Lock()
	run, ok := h.runs[runID]
	if ok {
		delete(h.runs, runID)
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("run not active: %s", runID)
	}
	run.cancel()
	h.sup.Stop(engineTaskName(runID))
	<-run.done
	h.log.Info("run stopped", "run_id", runID)
	return nil
}

// WaitRun blocks until the run terminates and returns its stored record.
func (h *Hub) WaitRun(ctx context.Context, runID string) (model.RunRecord, error) {
	h.mu.RLock()
	run, active := h.runs[runID]
	h.mu.RUnlock()

	if active {
		select {
		case <-run.done:
		case <-ctx.Done():
			return model.RunRecord{}, ctx.Err()
		}
	}

	record, ok, err := h.store.GetRunRecord(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("no record for run: %s", runID)
	}
	return record, nil
}

func (h *Hub) sendRunCommand(runID string, cmd evo.Command) error {
	if runID == "" {
		return errors.New("run id is required")
	}
	h.mu.RLock()
	run, ok := h.runs[runID]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("run not active: %s", runID)
	}
	select {
	case run.engine.Commands() <- cmd:
		return nil
	default:
		return fmt.Errorf("run control channel is full: %s", runID)
	}
}

func (h *Hub) ActiveRuns() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.runs))
	for id := range h.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Hub) Started() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.started
}

// Shutdown stops every active run and marks the hub uninitialized.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	runs := make([]*activeRun, 0, len(h.runs))
	for _, run := range h.runs {
		runs = append(runs, run)
	}
	h.runs = make(map[string]*activeRun)
	h.started = false
	h.mu.Unlock()

	for _, run := range runs {
		run.cancel()
	}
	h.sup.StopAll()
	for _, run := range runs {
		<-run.done
	}
}

func engineTaskName(runID string) string {
	return "engine:" + runID
}
