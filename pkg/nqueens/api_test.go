package nqueens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nqueens/internal/evo"
	"nqueens/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientRunWithDefaults(t *testing.T) {
	client := newTestClient(t)

	summary, err := client.Run(context.Background(), RunRequest{
		BoardSize:   6,
		Population:  40,
		Generations: 300,
		Seed:        42,
	})
	require.NoError(t, err)

	require.NotEmpty(t, summary.RunID)
	require.Equal(t, int64(42), summary.Seed)
	require.Equal(t, 6, summary.Params.BoardSize)
	require.Len(t, summary.BestGenome, 6)
	require.LessOrEqual(t, summary.Generations, 300)
	require.Len(t, summary.BestByGeneration, summary.Generations+1)
	require.LessOrEqual(t, summary.BestFitness, evo.MaxPairs(6))

	// The run is visible in the history afterwards.
	runs, err := client.Runs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, summary.RunID, runs[0].RunID)
	require.Equal(t, 6, runs[0].BoardSize)
}

func TestClientRunIsDeterministicPerSeed(t *testing.T) {
	client := newTestClient(t)

	req := RunRequest{BoardSize: 8, Population: 30, Generations: 20, Seed: 7}
	first, err := client.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := client.Run(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.BestByGeneration, second.BestByGeneration)
	require.Equal(t, first.BestGenome, second.BestGenome)
}

func TestClientRunRejectsInvalidParameters(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Run(context.Background(), RunRequest{
		BoardSize:     6,
		CrossoverRate: 1.5,
	})
	require.Error(t, err)
}

func TestClientProfileLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	params := evo.DefaultParameters()
	params.BoardSize = 10
	params.SelectionStrategy = model.SelectionTournament

	require.NoError(t, client.SaveProfile(ctx, "ten-tournament", params))

	saved, ok, err := client.Profile(ctx, "ten-tournament")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, params, saved)

	all, err := client.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// A run can start from the profile; explicit fields still win.
	summary, err := client.Run(ctx, RunRequest{Profile: "ten-tournament", Generations: 5, Seed: 3})
	require.NoError(t, err)
	require.Equal(t, 10, summary.Params.BoardSize)
	require.Equal(t, model.SelectionTournament, summary.Params.SelectionStrategy)
	require.Equal(t, 5, summary.Params.MaxGenerations)

	require.NoError(t, client.DeleteProfile(ctx, "ten-tournament"))
	_, ok, err = client.Profile(ctx, "ten-tournament")
	require.NoError(t, err)
	require.False(t, ok)

	require.Error(t, client.DeleteProfile(ctx, "ten-tournament"))
}

func TestClientRunUnknownProfile(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Run(context.Background(), RunRequest{Profile: "nope"})
	require.Error(t, err)
}

func TestClientRunsLimit(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for seed := int64(1); seed <= 3; seed++ {
		_, err := client.Run(ctx, RunRequest{BoardSize: 6, Population: 20, Generations: 3, Seed: seed})
		require.NoError(t, err)
	}

	runs, err := client.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	record, ok, err := client.RunRecord(ctx, runs[0].RunID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, runs[0].RunID, record.RunID)
}

func TestClientRunForwardsEvents(t *testing.T) {
	client := newTestClient(t)

	sink := make(chan evo.Event, 256)
	_, err := client.Run(context.Background(), RunRequest{
		BoardSize:   6,
		Population:  20,
		Generations: 5,
		Seed:        9,
		Events:      sink,
	})
	require.NoError(t, err)

	sawStats, sawSolution := false, false
	for len(sink) > 0 {
		event := <-sink
		switch event.Type {
		case evo.EventStats:
			sawStats = true
		case evo.EventSolution:
			sawSolution = true
		}
	}
	require.True(t, sawStats)
	require.True(t, sawSolution)
}
