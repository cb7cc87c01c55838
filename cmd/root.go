// Package cmd defines and implements the CLI commands for the birdcache
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/config"
	"github.com/perchpi/birdcache/internal/logging"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birdcache",
		Short: "Offline image cache builder for a bird-detection display.",
		Long: `birdcache maintains a local library of bird species images for an
offline display dashboard. It loads a species catalog, scrapes Wikimedia
Commons for suitably sized images with attribution, caches them per species,
and normalizes oversized images to the display's target resolution.`,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err = logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},

		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., /etc/birdcache, $HOME/.birdcache)")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newNormalizeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
