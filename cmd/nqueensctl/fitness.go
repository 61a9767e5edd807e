package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nqueens/internal/stats"
)

var fitnessCmd = &cobra.Command{
	Use:   "fitness <run-id>",
	Short: "Plot a run's best-fitness trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runFitness,
}

func init() {
	rootCmd.AddCommand(fitnessCmd)
	fitnessCmd.Flags().Int("width", 60, "plot width in characters")
	fitnessCmd.Flags().Bool("board", false, "also print the best placement")
}

func runFitness(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, ok, err := client.RunRecord(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown run: %s", args[0])
	}

	summary := stats.SummarizeRun(record)
	width, _ := cmd.Flags().GetInt("width")

	fmt.Printf("run %s, board %d, %d generations\n", record.RunID, record.Params.BoardSize, summary.Generations)
	fmt.Printf("fitness %d -> %d (target %d)\n", summary.FirstBest, summary.FinalBest, summary.Target)
	if summary.Solved {
		fmt.Printf("solved at generation %d\n", summary.SolvedAt)
	} else {
		fmt.Printf("unsolved, peak %d\n", summary.PeakBest)
	}
	if line := stats.Sparkline(record.BestByGeneration, width); line != "" {
		fmt.Println(line)
	}

	if board, _ := cmd.Flags().GetBool("board"); board {
		fmt.Println(renderBoard(record.BestGenome))
	}
	return nil
}
