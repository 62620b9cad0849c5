package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/acevents/internal/logger"
	"github.com/ppiankov/acevents/internal/model"
	"github.com/ppiankov/acevents/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seed int64

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build train/dev/test splits from an ACE corpus",
	Long: `Build reads every configured genre under the corpus root:
- Extract event mentions from the annotation files
- Drop mentions of two characters or fewer
- Segment the raw documents into sentences
- Keep sentences containing no mention text as Non-event examples
- Shuffle, cap the negatives, shuffle again and split 80/10/10

Example:
  acevents build
  acevents build --corpus raw/Chinese --out data --seed 42
  acevents build --segmenter http --segmenter-url http://localhost:8020/split`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	defaults := model.DefaultConfig()

	// Corpus and output flags
	buildCmd.Flags().String("corpus", defaults.Corpus.Root, "corpus root holding one directory per genre")
	buildCmd.Flags().String("out", defaults.Output.Dir, "output directory for train.txt, dev.txt and test.txt")

	// Sampling flags
	buildCmd.Flags().Int64Var(&seed, "seed", 0, "shuffle seed (default: random, reported in the summary)")
	buildCmd.Flags().Int("negative-cap", defaults.Sampling.NegativeCap, "maximum number of Non-event examples")
	buildCmd.Flags().Bool("linear-scan", false, "test sentences against every mention instead of the mention index")

	// Segmentation flags
	buildCmd.Flags().String("segmenter", defaults.Segmenter.Backend, "sentence segmenter backend (rule, http)")
	buildCmd.Flags().String("segmenter-url", "", "sentence-split service URL for the http backend")
	buildCmd.Flags().Bool("cache", defaults.Cache.Enabled, "reuse segmentation results from earlier runs (cache.dir)")

	// Bind flags to viper
	_ = viper.BindPFlag("corpus.root", buildCmd.Flags().Lookup("corpus"))
	_ = viper.BindPFlag("output.dir", buildCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("sampling.negative_cap", buildCmd.Flags().Lookup("negative-cap"))
	_ = viper.BindPFlag("sampling.linear_scan", buildCmd.Flags().Lookup("linear-scan"))
	_ = viper.BindPFlag("segmenter.backend", buildCmd.Flags().Lookup("segmenter"))
	_ = viper.BindPFlag("segmenter.url", buildCmd.Flags().Lookup("segmenter-url"))
	_ = viper.BindPFlag("cache.enabled", buildCmd.Flags().Lookup("cache"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// --seed has no usable default value, so only an explicit flag applies
	if cmd.Flags().Changed("seed") {
		cfg.Sampling.Seed = &seed
	}

	level := "info"
	if cfg.Output.Verbose {
		level = "debug"
	}
	log := logger.New("acevents", level)

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Corpus: %s\n", cfg.Corpus.Root)
		fmt.Fprintf(os.Stderr, "Genres: %v\n", cfg.Corpus.Genres)
		fmt.Fprintf(os.Stderr, "Segmenter: %s\n", cfg.Segmenter.Backend)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if cfg.Output.Verbose && result.ManifestPath != "" {
		fmt.Fprintf(os.Stderr, "✓ Wrote manifest: %s\n", result.ManifestPath)
	}

	return nil
}
