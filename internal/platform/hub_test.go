package platform

import (
	"context"
	"testing"
	"time"

	"nqueens/internal/evo"
	"nqueens/internal/model"
	"nqueens/internal/storage"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(Config{Store: storage.NewMemoryStore()})
	if err := hub.Init(context.Background()); err != nil {
		t.Fatalf("init hub: %v", err)
	}
	t.Cleanup(hub.Shutdown)
	return hub
}

func quickParams() model.Parameters {
	return model.Parameters{
		BoardSize:         8,
		PopulationSize:    20,
		SelectionStrategy: model.SelectionRouletteWheel,
		TournamentSize:    5,
		CrossoverRate:     0.8,
		MutationRate:      0.2,
		MaxGenerations:    5,
	}
}

func TestHubRunLifecycle(t *testing.T) {
	hub := newTestHub(t)

	runID, err := hub.StartRun(RunConfig{Params: quickParams(), Seed: 42})
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a generated run id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	record, err := hub.WaitRun(ctx, runID)
	if err != nil {
		t.Fatalf("wait run: %v", err)
	}

	if record.RunID != runID {
		t.Fatalf("record run id = %q, want %q", record.RunID, runID)
	}
	if record.Seed != 42 {
		t.Fatalf("record seed = %d", record.Seed)
	}
	if record.Generations < 1 || record.Generations > 5 {
		t.Fatalf("generations = %d, want within [1, 5]", record.Generations)
	}
	if len(record.BestByGeneration) != record.Generations+1 {
		t.Fatalf("best-by-generation length %d for %d generations", len(record.BestByGeneration), record.Generations)
	}
	if len(record.BestGenome) != 8 {
		t.Fatalf("best genome length = %d", len(record.BestGenome))
	}
	if record.SchemaVersion != storage.CurrentSchemaVersion {
		t.Fatalf("schema version = %d", record.SchemaVersion)
	}

	if active := hub.ActiveRuns(); len(active) != 0 {
		t.Fatalf("finished run still active: %v", active)
	}
}

func TestHubRequiresInit(t *testing.T) {
	hub := NewHub(Config{Store: storage.NewMemoryStore()})
	if _, err := hub.StartRun(RunConfig{Params: quickParams()}); err == nil {
		t.Fatal("expected an error before init")
	}
}

func TestHubRejectsDuplicateRunID(t *testing.T) {
	hub := newTestHub(t)

	params := quickParams()
	params.BoardSize = 50
	params.MaxGenerations = 100000

	if _, err := hub.StartRun(RunConfig{RunID: "same", Params: params}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := hub.StartRun(RunConfig{RunID: "same", Params: params}); err == nil {
		t.Fatal("expected an error for a duplicate run id")
	}
	if err := hub.StopRun("same"); err != nil {
		t.Fatalf("stop run: %v", err)
	}
}

func TestHubForwardsEventsToSink(t *testing.T) {
	hub := newTestHub(t)

	sink := make(chan evo.Event, 64)
	runID, err := hub.StartRun(RunConfig{Params: quickParams(), Seed: 7, Events: sink})
	if err != nil {
		t.Fatalf("start run: %v", err)
	}

	sawStats := false
	for {
		select {
		case event := <-sink:
			switch event.Type {
			case evo.EventStats:
				sawStats = true
			case evo.EventSolution:
				if !sawStats {
					t.Fatal("solution forwarded before any statistics")
				}
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if _, err := hub.WaitRun(ctx, runID); err != nil {
					t.Fatalf("wait run: %v", err)
				}
				return
			}
		case <-time.After(10 * time.Second):
			t.Fatal("timeout waiting for forwarded events")
		}
	}
}

func TestHubPauseResumeStop(t *testing.T) {
	hub := newTestHub(t)

	params := quickParams()
	params.BoardSize = 50
	params.MaxGenerations = 100000

	runID, err := hub.StartRun(RunConfig{RunID: "long-run", Params: params, Seed: 3})
	if err != nil {
		t.Fatalf("start run: %v", err)
	}

	if err := hub.PauseRun(runID); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if active := hub.ActiveRuns(); len(active) != 1 || active[0] != runID {
		t.Fatalf("paused run missing from registry: %v", active)
	}
	if err := hub.ResumeRun(runID); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if err := hub.StopRun(runID); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := hub.StopRun(runID); err == nil {
		t.Fatal("expected an error stopping a stopped run")
	}

	// An abandoned run leaves no record behind.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := hub.WaitRun(ctx, runID); err == nil {
		t.Fatal("expected no record for an abandoned run")
	}
}

func TestHubControlRejectsUnknownRun(t *testing.T) {
	hub := newTestHub(t)

	if err := hub.PauseRun("ghost"); err == nil {
		t.Fatal("expected an error for an unknown run")
	}
	if err := hub.ResetRun("ghost", nil); err == nil {
		t.Fatal("expected an error for an unknown run")
	}
}

func TestHubResetReinitializesStore(t *testing.T) {
	hub := newTestHub(t)

	runID, err := hub.StartRun(RunConfig{Params: quickParams(), Seed: 5})
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := hub.WaitRun(ctx, runID); err != nil {
		t.Fatalf("wait run: %v", err)
	}

	if err := hub.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !hub.Started() {
		t.Fatal("hub must be reinitialized after reset")
	}
	record, ok, err := hub.store.GetRunRecord(context.Background(), runID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if ok {
		t.Fatalf("record survived reset: %+v", record)
	}
}
