// Package cli provides the evetrade command-line interface. Commands collect
// trade parameters from flags, run the analytics engine, and print results as
// text tables or JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"evetrade/internal/config"
	"evetrade/internal/engine"
	"evetrade/internal/logging"
	"evetrade/internal/store"
)

const Version = "0.2.0"

// App holds the dependencies shared by all commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  *store.Store
	Rates  *engine.RatesCache
}

// NewRootCmd builds the root command and wires up the application state.
// The store is optional: if the database cannot be opened, watchlist and
// history commands degrade with an error while analysis still works.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger, configDir string) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Rates:  engine.NewRatesCache(),
	}

	if configDir == "" {
		configDir = config.DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0o755); err == nil {
		if st, err := store.Open(configDir); err != nil {
			logger.Warn().Err(err).Msg("store unavailable, watchlist and history disabled")
		} else {
			app.Store = st
			// Persisted settings override the config file.
			app.Config = st.LoadSettings(cfg)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "evetrade",
		Short: "Market trading analytics for EVE Online",
		Long: `evetrade analyzes station trading opportunities: effective fee rates from
your skills, per-trade profitability, risk and scam scoring, station
viability, and multi-day competition simulations.

All analysis runs locally from the numbers you supply.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/evetrade)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newRatesCmd(app),
		newProfitCmd(app),
		newRiskCmd(app),
		newStationCmd(app),
		newSimulateCmd(app),
		newWatchlistCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app, configDir),
	)

	return rootCmd
}

// Execute loads config, builds the logger and root command, and runs it.
func Execute() error {
	configDir := configDirFromArgs(os.Args[1:])
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Log)
	return NewRootCmd(cfg, logger, configDir).Execute()
}

// configDirFromArgs pre-scans for --config so the value is known before
// cobra parses flags; config must be loaded to build the commands.
func configDirFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(a) > len("--config=") && a[:len("--config=")] == "--config=" {
			return a[len("--config="):]
		}
	}
	return ""
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
