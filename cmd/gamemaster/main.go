package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"punter/config"
	"punter/engine"
	"punter/game"

	"github.com/spf13/cobra"
)

var (
	mapsDir  string
	settings game.Settings
	matchID  string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "gamemaster MAP PUNTER PUNTER...",
	Short: "Run a match between punter executables",
	Long: `Run a match between punter executables in offline mode and print the result as JSON.

MAP is a map file, or the name of a map under --maps. Each PUNTER is a command line started
once per message. Progress goes to stderr.

Examples:
  gamemaster maps/sample.json ./punter "./punter --strategy greedy"
  gamemaster --maps ./maps --options circle ./punter ./punter ./punter`,
	Args:         cobra.MinimumNArgs(3),
	SilenceUsage: true,
	RunE:         runMatch,
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&mapsDir, "maps", "maps", "Directory searched for maps given by name")
	flags.BoolVar(&settings.Options, "options", false, "Enable options")
	flags.BoolVar(&settings.Splurges, "splurges", false, "Enable splurges")
	flags.BoolVar(&settings.Futures, "futures", false, "Announce futures")
	flags.BoolVar(&debug, "debug", false, "Log protocol traffic")
	rootCmd.Flags().StringVar(&matchID, "id", "", "Match id, generated if empty")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
	config.SetupLogging(debug)
	name, m, err := loadMap(args[0])
	if err != nil {
		return err
	}

	punters := make([]engine.Connector, 0, len(args)-1)
	for _, identifier := range args[1:] {
		punters = append(punters, engine.NewProcess(identifier))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := engine.NewEngine(name, m, punters, engine.WithSettings(settings), engine.WithID(matchID))
	output, err := e.Run(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// loadMap reads arg as a path, falling back to <maps>/<arg>.json. The name is the file name
// without extension.
func loadMap(arg string) (string, *game.Map, error) {
	path := arg
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = filepath.Join(mapsDir, arg+".json")
	}
	m, err := game.LoadMap(path)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), m, nil
}
