package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/catalog"
)

// newRefreshCmd creates the 'refresh-species' subcommand, which overwrites
// the local species catalog with the range-filtered list served by the
// configured BirdNET-Go instance.
func newRefreshCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "refresh-species",
		Short: "Refreshes the species catalog from BirdNET-Go",
		Long: `Fetches the range-filtered species list from the configured BirdNET-Go
instance and overwrites the local catalog file. If the instance has no
location configured its species list may not match what the detector
actually hears, so the command refuses to proceed unless --yes is given.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			client := catalog.NewClient(cfg.BirdNET.BaseURL, cfg.HTTP.PageTimeout, cfg.HTTP.ProbeTimeout, logger)

			status := client.CheckLocation(cmd.Context())
			if status != catalog.LocationConfigured {
				logger.Warn("BirdNET-Go location is not verified; the species list may not match your area",
					zap.String("status", status.String()),
				)
				if !yes {
					return fmt.Errorf("location status is %s; re-run with --yes to refresh anyway", status)
				}
			}

			entries, err := client.FetchSpecies(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch species list: %w", err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("BirdNET-Go returned an empty species list")
			}

			if existing := catalog.Load(cfg.Cache.SpeciesFile, logger); len(existing) > 0 {
				logger.Info("Overwriting existing species catalog",
					zap.String("path", cfg.Cache.SpeciesFile),
					zap.Int("existing", len(existing)),
					zap.Int("fetched", len(entries)),
				)
			}

			if err := catalog.Save(entries, cfg.Cache.SpeciesFile); err != nil {
				return fmt.Errorf("save species catalog: %w", err)
			}
			logger.Info("Species catalog updated",
				zap.String("path", cfg.Cache.SpeciesFile),
				zap.Int("species", len(entries)),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "proceed even when the location check fails")
	return cmd
}
