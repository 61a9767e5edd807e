package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nqueens/internal/evo"
	"nqueens/internal/model"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved parameter profiles",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a parameter profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSave,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSaveCmd, profileListCmd, profileShowCmd, profileDeleteCmd)

	profileSaveCmd.Flags().Int("board-size", 0, "board size N")
	profileSaveCmd.Flags().Int("population", 0, "population size")
	profileSaveCmd.Flags().Int("generations", 0, "generation budget")
	profileSaveCmd.Flags().String("selection", "", "selection strategy: roulette|tournament")
	profileSaveCmd.Flags().Int("tournament-size", 0, "tournament size")
	profileSaveCmd.Flags().Float64("crossover-rate", 0, "crossover rate in [0,1]")
	profileSaveCmd.Flags().Float64("mutation-rate", 0, "mutation rate in [0,1]")
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	params := profileParamsFromFlags(cmd)
	if err := client.SaveProfile(cmd.Context(), args[0], params); err != nil {
		return err
	}
	fmt.Printf("saved profile %s (board %d)\n", args[0], params.BoardSize)
	return nil
}

func profileParamsFromFlags(cmd *cobra.Command) model.Parameters {
	params := evo.DefaultParameters()
	if cmd.Flags().Changed("board-size") {
		params.BoardSize, _ = cmd.Flags().GetInt("board-size")
	}
	if cmd.Flags().Changed("population") {
		params.PopulationSize, _ = cmd.Flags().GetInt("population")
	}
	if cmd.Flags().Changed("generations") {
		params.MaxGenerations, _ = cmd.Flags().GetInt("generations")
	}
	if cmd.Flags().Changed("selection") {
		selection, _ := cmd.Flags().GetString("selection")
		params.SelectionStrategy = model.SelectionStrategy(selection)
	}
	if cmd.Flags().Changed("tournament-size") {
		params.TournamentSize, _ = cmd.Flags().GetInt("tournament-size")
	}
	if cmd.Flags().Changed("crossover-rate") {
		params.CrossoverRate, _ = cmd.Flags().GetFloat64("crossover-rate")
	}
	if cmd.Flags().Changed("mutation-rate") {
		params.MutationRate, _ = cmd.Flags().GetFloat64("mutation-rate")
	}
	return params
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	profiles, err := client.Profiles(cmd.Context())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("no profiles saved")
		return nil
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBOARD\tPOPULATION\tSELECTION\tGENERATIONS")
	for _, name := range names {
		p := profiles[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\n",
			name, p.BoardSize, p.PopulationSize, p.SelectionStrategy, p.MaxGenerations)
	}
	return w.Flush()
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	params, ok, err := client.Profile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown profile: %s", args[0])
	}
	payload, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.DeleteProfile(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted profile %s\n", args[0])
	return nil
}
