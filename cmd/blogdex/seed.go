package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/config"
	"github.com/kailas-cloud/blogdex/internal/domain"
	"github.com/kailas-cloud/blogdex/internal/source"
	"github.com/kailas-cloud/blogdex/internal/usecase/catalog"
)

var (
	flagSeedFrom string
	flagSeedFile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write an article collection into the configured persistent source",
	Long: `Load articles from a YAML/JSON file or the built-in dataset and replace the
collection stored in the configured sqlite, redis or valkey source.

  blogdex seed --from seed
  blogdex seed --from file --file articles.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&flagSeedFrom, "from", config.DriverSeed, "input: seed (built-in dataset) or file")
	seedCmd.Flags().StringVar(&flagSeedFile, "file", "", "input file for --from file")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Source.Persistent() {
		return fmt.Errorf("source.driver %q is read-only; seed needs sqlite, redis or valkey", cfg.Source.Driver)
	}

	in := config.SourceConfig{Driver: flagSeedFrom, Path: flagSeedFile}
	switch flagSeedFrom {
	case config.DriverSeed:
	case config.DriverFile:
		if flagSeedFile == "" {
			return fmt.Errorf("--file is required with --from file")
		}
	default:
		return fmt.Errorf("--from must be seed or file, got %q", flagSeedFrom)
	}

	ctx := cmd.Context()
	input, err := source.Open(ctx, in, logger)
	if err != nil {
		return err
	}
	articles, err := input.Source.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	// Persistent sources report an empty collection as domain.ErrSourceEmpty,
	// so an empty seed would only make the next serve fail.
	if len(articles) == 0 {
		return fmt.Errorf("reading input: %w", domain.ErrSourceEmpty)
	}
	// Reject collections the index would refuse before touching the store.
	if _, err := catalog.NewIndex(articles); err != nil {
		return fmt.Errorf("validating input: %w", err)
	}

	target, err := source.Open(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("opening target: %w", err)
	}
	defer target.Close()

	if err := target.Save(ctx, articles); err != nil {
		return fmt.Errorf("writing articles: %w", err)
	}

	logger.Info("Seeded articles",
		zap.Int("articles", len(articles)),
		zap.String("from", flagSeedFrom),
		zap.String("driver", target.Driver),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d article(s) into %s.\n", len(articles), target.Driver)
	return nil
}
