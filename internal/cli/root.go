// Package cli implements the moodreel command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kittclouds/moodreel/internal/config"
	"github.com/kittclouds/moodreel/internal/logging"
)

// app carries state shared by subcommands once flags are parsed.
type app struct {
	configPath  string
	catalogPath string
	logLevel    string

	cfg *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "moodreel",
		Short: "Movie recommendations for a detected mood",
		Long: `moodreel maps an emotion label to a short ranked list of movies.

Movies are filtered by the genres associated with the emotion and ranked by
how typical their descriptions are within that set. When no genre matches,
the neutral genres are tried and finally the whole catalog.

Quick Start:
  moodreel recommend happy          Top 5 movies for a happy mood
  moodreel mood --polarity -0.4     Recommend from a text sentiment score
  moodreel similar "Inception"      Movies with similar descriptions
  moodreel serve                    Start the HTTP API`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default moodreel.yaml)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog CSV, overrides catalog.path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides logging.level")

	root.AddCommand(
		newRecommendCmd(a),
		newMoodCmd(a),
		newSimilarCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.Catalog.Path = a.catalogPath
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return nil
}
