package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"personarank/config"
	"personarank/internal/adapter/encoder"
	"personarank/internal/adapter/extract"
	"personarank/internal/adapter/fs"
	"personarank/internal/adapter/segment"
	"personarank/internal/usecase"
)

var (
	rankRunConfig  string
	rankOutput     string
	rankTopK       int
	rankEncoder    string
	rankTimeout    time.Duration
	rankNoCache    bool
	rankNoProgress bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank document sections for a persona and job",
	Long: `Rank the sections of the configured document collection by relevance to
the persona and job described in the run configuration, and write the
top-K result as JSON.

Examples:
  personarank rank --input ./docs
  personarank rank --input ./docs --run-config cfg.json --output out/results.json
  personarank rank --input ./docs --encoder mock --top-k 10`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringVarP(&rankRunConfig, "run-config", "r", "", "run config JSON (default <input>/input_config.json)")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "results.json", "output JSON file")
	rankCmd.Flags().IntVarP(&rankTopK, "top-k", "k", 0, "number of results (default from config)")
	rankCmd.Flags().StringVar(&rankEncoder, "encoder", "", "encoder provider override (openai, ollama, fastembed, mock)")
	rankCmd.Flags().DurationVar(&rankTimeout, "timeout", 0, "wall-clock budget for the run (0 = none)")
	rankCmd.Flags().BoolVar(&rankNoCache, "no-cache", false, "disable the extraction cache")
	rankCmd.Flags().BoolVar(&rankNoProgress, "no-progress", false, "disable the encoding progress bar")
}

func runRank(cmd *cobra.Command, args []string) error {
	rc, err := loadRunConfig()
	if err != nil {
		return err
	}

	docPaths, err := fs.NewResolver(inputDir).Resolve(rc.InputDocuments)
	if err != nil {
		return err
	}

	var cache *extract.Cache
	if !rankNoCache {
		if err := config.EnsureWorkDir(inputDir); err != nil {
			logger.Warn("cannot create work directory, extraction cache disabled", "error", err)
		} else if cache, err = extract.OpenCache(config.CacheDBPath(inputDir)); err != nil {
			logger.Warn("cannot open extraction cache, continuing without it", "error", err)
			cache = nil
		}
	}
	if cache != nil {
		defer cache.Close()
	}

	encCfg := cfg.Encoder
	if rankEncoder != "" {
		encCfg.Provider = rankEncoder
	}
	enc, err := encoder.FromConfig(encCfg)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	if closer, ok := enc.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	topK := cfg.Rank.TopK
	if rankTopK > 0 {
		topK = rankTopK
	}

	scorer := usecase.NewScoringEngine(enc, encCfg.PassagePrefix, encCfg.BatchSize, logger)
	if !rankNoProgress {
		var bar *progressbar.ProgressBar
		scorer.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("encoding sections"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionClearOnFinish(),
				)
			}
			bar.Set(done)
		}
	}

	pipeline := usecase.NewPipeline(
		extract.New(cache, logger),
		segment.New(cfg.Segment.MaxChars, cfg.Segment.MinChars, logger),
		usecase.NewQueryBuilder(encCfg.QueryPrefix),
		scorer,
		usecase.NewRanker(topK, cfg.Rank.MaxPerDocument, cfg.Rank.MinScore),
		usecase.NewAssembler(cfg.Assemble.RefinedChars),
		logger,
	)

	ctx := context.Background()
	if rankTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rankTimeout)
		defer cancel()
	}

	start := time.Now()
	rs, err := pipeline.Run(ctx, rc.Persona, rc.JobToBeDone, docPaths)
	if err != nil {
		return err
	}

	if err := WriteReport(rankOutput, rs); err != nil {
		return err
	}

	fmt.Printf("Ranked %d section(s) from %d document(s) in %s\n",
		len(rs.Sections), len(rs.Meta.InputDocuments), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Output written to %s\n", rankOutput)

	return nil
}

// loadRunConfig finds the run configuration: the explicit flag, then
// input_config.json in the input directory, then the working directory.
func loadRunConfig() (*config.RunConfig, error) {
	if rankRunConfig != "" {
		return config.LoadRunConfig(rankRunConfig)
	}

	candidates := []string{
		filepath.Join(inputDir, "input_config.json"),
		"input_config.json",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return config.LoadRunConfig(path)
		}
	}

	return nil, fmt.Errorf("run config not found (looked for %s); pass --run-config", candidates[0])
}
