package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/builder"
	"github.com/perchpi/birdcache/internal/catalog"
	collyfetcher "github.com/perchpi/birdcache/internal/fetcher/colly"
	"github.com/perchpi/birdcache/internal/imgcache"
	"github.com/perchpi/birdcache/internal/normalize"
	"github.com/perchpi/birdcache/internal/search"
)

// newBuildCmd creates the 'build' subcommand, which populates the image
// cache for every species in the catalog and then normalizes oversized
// images.
func newBuildCmd() *cobra.Command {
	var skipNormalize bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Builds the offline image cache",
		Long: `Loads the species catalog and downloads images for every species that is
not yet fully cached, using a bounded pool of parallel workers. Species
already complete on disk are skipped, so interrupted runs resume where they
left off. Afterwards, cached images larger than the display's target
resolution are downsampled in place.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := catalog.Load(cfg.Cache.SpeciesFile, logger)
			if len(entries) == 0 {
				return fmt.Errorf("species catalog %s is absent or empty; run 'birdcache refresh-species' first", cfg.Cache.SpeciesFile)
			}

			fetcher := collyfetcher.New(collyfetcher.Config{UserAgent: cfg.Search.UserAgent})
			store, err := imgcache.New(cfg.Cache.Dir, fetcher, cfg.HTTP.DownloadTimeout, logger)
			if err != nil {
				return fmt.Errorf("init image cache: %w", err)
			}
			searcher := search.NewClient(search.Config{
				BaseURL:     cfg.Search.BaseURL,
				MinWidth:    cfg.Search.MinWidth,
				MinHeight:   cfg.Search.MinHeight,
				PageTimeout: cfg.HTTP.PageTimeout,
			}, fetcher, nil, logger)

			b := builder.New(searcher, store, builder.Config{
				Concurrency:      cfg.Cache.Concurrency,
				ImagesPerSpecies: cfg.Cache.ImagesPerSpecies,
				Progress:         true,
			}, logger)

			summary := b.Run(cmd.Context(), entries)
			if summary.Missing > 0 {
				logger.Warn("Some species ended the run without images",
					zap.Int("missing", summary.Missing),
					zap.Int("total", summary.Total()),
				)
			}

			if skipNormalize {
				return nil
			}
			return normalize.Sweep(cfg.Cache.Dir, cfg.Display.TargetWidth, cfg.Display.TargetHeight, logger)
		},
	}

	cmd.Flags().BoolVar(&skipNormalize, "skip-normalize", false, "skip the post-build image resize pass")
	return cmd
}
