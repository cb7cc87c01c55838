package cmd

import (
	"github.com/spf13/cobra"

	"github.com/perchpi/birdcache/internal/normalize"
)

// newNormalizeCmd creates the 'normalize' subcommand, which runs only the
// image resize pass over the existing cache.
func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Downsamples cached images to the display's target size",
		Long: `Walks the image cache and resizes any image exceeding the display's
target resolution in place, using cover scaling so the result always fills
the target box. Images already within bounds are left untouched.`,

		RunE: func(_ *cobra.Command, _ []string) error {
			return normalize.Sweep(cfg.Cache.Dir, cfg.Display.TargetWidth, cfg.Display.TargetHeight, logger)
		},
	}
}
