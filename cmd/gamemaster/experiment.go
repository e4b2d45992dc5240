package main

import (
	"fmt"

	"punter/config"
	"punter/experiments"

	"github.com/spf13/cobra"
)

var exp experiments.Experiment

func init() {
	experimentCmd := &cobra.Command{
		Use:   "experiment MAP",
		Short: "Play strategies against each other in-process",
		Long: `Play every ordered pair of strategies against each other on MAP and write games.csv and
moves.csv under OUT/NAME/<timestamp>.

Examples:
  gamemaster experiment sample --strategies lightning,greedy --games 20 --out results`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runExperiment,
	}

	flags := experimentCmd.Flags()
	flags.StringVar(&exp.Name, "name", "tournament", "Experiment name")
	flags.StringSliceVar(&exp.Strategies, "strategies", []string{"lightning", "greedy"}, "Strategies to pit against each other")
	flags.IntVarP(&exp.Games, "games", "n", experiments.NumGames, "Games per match up")
	flags.DurationVar(&exp.Budget, "budget", experiments.TimeBudget, "Time budget per move")
	flags.Uint64Var(&exp.Seed, "seed", 1, "Seed of the random strategies")
	flags.IntVar(&exp.Parallel, "parallel", 1, "Games played at once")
	flags.StringVarP(&exp.Out, "out", "o", "experiments", "Output directory")

	rootCmd.AddCommand(experimentCmd)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	config.SetupLogging(debug)
	name, m, err := loadMap(args[0])
	if err != nil {
		return err
	}
	exp.MapName, exp.Map, exp.Settings = name, m, settings

	result, err := experiments.Run(cmd.Context(), exp)
	if err != nil {
		return err
	}
	for _, strategy := range exp.Strategies {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d wins\n", strategy, result.Wins[strategy])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "records in %s\n", result.Dir)
	return nil
}
