package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nqueens/internal/stats"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "show at most this many recent runs (0 for all)")
	runsCmd.Flags().Bool("aggregate", false, "append success-rate statistics")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	limit, _ := cmd.Flags().GetInt("limit")
	items, err := client.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tBOARD\tSEED\tGENERATIONS\tBEST\tSOLVED")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%t\n",
			item.RunID, item.CreatedAtUTC, item.BoardSize, item.Seed,
			item.Generations, item.BestFitness, item.Solved)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if aggregate, _ := cmd.Flags().GetBool("aggregate"); aggregate {
		// Aggregate over everything recorded, not just the listed page.
		records, err := client.Records(cmd.Context())
		if err != nil {
			return err
		}
		agg := stats.AggregateRuns(records)
		fmt.Printf("\n%d runs, %d solved (%.0f%%), avg %.1f generations to solve\n",
			agg.TotalRuns, agg.SolvedRuns, agg.SuccessRate*100, agg.AvgGenerations)
	}
	return nil
}
