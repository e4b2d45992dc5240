package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"punter/communication"
	"punter/config"
	"punter/player"
	"punter/searcher"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	name        string
	strategy    string
	budget      time.Duration
	seed        uint64
	chokepoints bool
	collect     bool
	debug       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "punter",
		Short: "Play a punter over stdin and stdout",
		Long: `Play one punter of a match, speaking the length-prefixed JSON protocol on stdin and stdout.
Logs go to stderr.

Examples:
  punter --strategy greedy
  punter --config punter.yaml --budget 500ms --debug`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&name, "name", "", "Name sent in the handshake")
	flags.StringVar(&strategy, "strategy", "", "Ranking strategy: "+strings.Join(searcher.Names(), ", "))
	flags.DurationVar(&budget, "budget", 0, "Time budget per move")
	flags.Uint64Var(&seed, "seed", 0, "Seed of the random strategy")
	flags.BoolVar(&chokepoints, "chokepoints", true, "Search for chokepoints every turn")
	flags.BoolVar(&collect, "metrics", false, "Log search metrics every turn")
	flags.BoolVar(&debug, "debug", false, "Log protocol traffic and decisions")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = name
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("budget") {
		cfg.Budget = budget
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("chokepoints") {
		cfg.Chokepoints = chokepoints
	}
	if flags.Changed("metrics") {
		cfg.Metrics = collect
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	config.SetupLogging(cfg.Debug)

	options, err := cfg.DeciderOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn := communication.NewConn("runner", os.Stdin, os.Stdout)
	return player.NewPlayer(cfg.Name, conn, searcher.NewDecider(options...)).Play(ctx)
}
