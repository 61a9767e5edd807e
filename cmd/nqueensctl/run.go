package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nqueens/internal/evo"
	"nqueens/internal/stats"
	nqapi "nqueens/pkg/nqueens"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the solver to completion and print the result",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("board-size", 0, "board size N (default 8)")
	runCmd.Flags().Int("population", 0, "population size (default 100)")
	runCmd.Flags().Int("generations", 0, "generation budget (default 1000)")
	runCmd.Flags().String("selection", "", "selection strategy: roulette|tournament")
	runCmd.Flags().Int("tournament-size", 0, "tournament size for tournament selection")
	runCmd.Flags().Float64("crossover-rate", 0, "crossover rate in [0,1]")
	runCmd.Flags().Float64("mutation-rate", 0, "mutation rate in [0,1]")
	runCmd.Flags().Int64("seed", 0, "random seed (0 draws a time-based seed)")
	runCmd.Flags().String("profile", "", "start from a saved profile")
	runCmd.Flags().String("params", "", "JSON parameter file")
	runCmd.Flags().Bool("watch", false, "print per-generation statistics while running")
}

func runRun(cmd *cobra.Command, _ []string) error {
	req, err := runRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	watch, _ := cmd.Flags().GetBool("watch")
	var watcher chan evo.Event
	watchDone := make(chan struct{})
	if watch {
		watcher = make(chan evo.Event, 256)
		req.Events = watcher
		go func() {
			defer close(watchDone)
			for event := range watcher {
				if event.Type != evo.EventStats {
					continue
				}
				fmt.Printf("gen=%d best=%d avg=%.2f worst=%d\n",
					event.Stats.Generation,
					event.Stats.BestFitness,
					event.Stats.AverageFitness,
					event.Stats.WorstFitness)
			}
		}()
	}

	summary, err := client.Run(cmd.Context(), req)
	if watcher != nil {
		close(watcher)
		<-watchDone
	}
	if err != nil {
		return err
	}

	printRunSummary(summary)
	return nil
}

func runRequestFromFlags(cmd *cobra.Command) (nqapi.RunRequest, error) {
	var req nqapi.RunRequest
	if path, _ := cmd.Flags().GetString("params"); path != "" {
		loaded, err := loadRunRequestFromConfig(path)
		if err != nil {
			return nqapi.RunRequest{}, err
		}
		req = loaded
	}

	if cmd.Flags().Changed("board-size") {
		req.BoardSize, _ = cmd.Flags().GetInt("board-size")
	}
	if cmd.Flags().Changed("population") {
		req.Population, _ = cmd.Flags().GetInt("population")
	}
	if cmd.Flags().Changed("generations") {
		req.Generations, _ = cmd.Flags().GetInt("generations")
	}
	if cmd.Flags().Changed("selection") {
		req.Selection, _ = cmd.Flags().GetString("selection")
	}
	if cmd.Flags().Changed("tournament-size") {
		req.TournamentSize, _ = cmd.Flags().GetInt("tournament-size")
	}
	if cmd.Flags().Changed("crossover-rate") {
		req.CrossoverRate, _ = cmd.Flags().GetFloat64("crossover-rate")
	}
	if cmd.Flags().Changed("mutation-rate") {
		req.MutationRate, _ = cmd.Flags().GetFloat64("mutation-rate")
	}
	if cmd.Flags().Changed("seed") {
		req.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("profile") {
		req.Profile, _ = cmd.Flags().GetString("profile")
	}
	return req, nil
}

func printRunSummary(summary nqapi.RunSummary) {
	target := evo.MaxPairs(summary.Params.BoardSize)
	fmt.Printf("run %s finished after %d generations\n", summary.RunID, summary.Generations)
	fmt.Printf("best fitness: %d/%d", summary.BestFitness, target)
	if summary.Solved {
		fmt.Print(" (solved)")
	}
	fmt.Println()
	fmt.Printf("seed: %d\n", summary.Seed)
	if len(summary.BestByGeneration) > 1 {
		fmt.Printf("progress: %s\n", stats.Sparkline(summary.BestByGeneration, 60))
	}
	fmt.Println(renderBoard(summary.BestGenome))
}

// renderBoard draws the placement with one queen per row.
func renderBoard(genome []int) string {
	var b strings.Builder
	for _, col := range genome {
		for c := 0; c < len(genome); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if c == col {
				b.WriteByte('Q')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
