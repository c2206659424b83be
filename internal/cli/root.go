package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"personarank/config"
)

var (
	cfgFile  string
	inputDir string
	cfg      *config.Config
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "personarank",
	Short: "Rank document sections by relevance to a persona and task",
	Long: `personarank ranks sections of a document collection by how relevant they
are to a persona and a job to be done, returning a bounded, diversified
top-K list.

Example usage:
  personarank rank --input ./docs --run-config input_config.json
  personarank sections --input ./docs   # inspect segmentation only`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if inputDir == "" {
			inputDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(inputDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg.Logging.Level)
		slog.SetDefault(logger)

		return nil
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <input>/personarank.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputDir, "input", "i", "", "input document directory (default is current directory)")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
