package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/domain/tag"
)

var flagTagsSort string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag catalog of the configured source",
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().StringVar(&flagTagsSort, "sort", "", "order: empty for first-seen, count, or name")
}

func runTags(cmd *cobra.Command, _ []string) error {
	order, err := tag.ParseOrder(flagTagsSort)
	if err != nil {
		return fmt.Errorf("invalid --sort: %w", err)
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, h, err := loadCatalog(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer h.Close()

	n, err := svc.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Warn("Catalog is empty", zap.String("driver", h.Driver))
	}

	tags, err := svc.Tags(order)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tARTICLES")
	for _, t := range tags {
		fmt.Fprintf(tw, "%s\t%d\n", t.Name(), t.Count())
	}
	return tw.Flush()
}
