// Package config loads and validates birdcache configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	BirdNET BirdNETConfig `mapstructure:"birdnet"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig governs the on-disk image cache and build fan-out.
type CacheConfig struct {
	Dir              string `mapstructure:"dir"`
	SpeciesFile      string `mapstructure:"species_file"`
	ImagesPerSpecies int    `mapstructure:"images_per_species"`
	Concurrency      int    `mapstructure:"concurrency"`
}

// SearchConfig controls the media-search scraper.
type SearchConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	MinWidth  int    `mapstructure:"min_width"`
	MinHeight int    `mapstructure:"min_height"`
	UserAgent string `mapstructure:"user_agent"`
}

// HTTPConfig holds per-request timeouts. Probes are short so an unreachable
// host fails fast; content fetches get longer budgets.
type HTTPConfig struct {
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	PageTimeout     time.Duration `mapstructure:"page_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// BirdNETConfig points at the BirdNET-Go instance used for species refresh.
type BirdNETConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// DisplayConfig is the target box images are normalized to fill.
type DisplayConfig struct {
	TargetWidth  int `mapstructure:"target_width"`
	TargetHeight int `mapstructure:"target_height"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIRDCACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/birdcache/")
		v.AddConfigPath("$HOME/.birdcache")
		if err := v.ReadInConfig(); err != nil {
			// Missing config file is fine; defaults and env vars carry the run.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.dir", "static/bird_images_cache")
	v.SetDefault("cache.species_file", "species_list.csv")
	v.SetDefault("cache.images_per_species", 3)
	v.SetDefault("cache.concurrency", 10)
	v.SetDefault("search.base_url", "https://commons.wikimedia.org")
	v.SetDefault("search.min_width", 800)
	v.SetDefault("search.min_height", 600)
	v.SetDefault("search.user_agent", "birdcache/1.0 (+https://github.com/perchpi/birdcache) Go-HTTP-Client")
	v.SetDefault("http.probe_timeout", "500ms")
	v.SetDefault("http.page_timeout", "10s")
	v.SetDefault("http.download_timeout", "15s")
	v.SetDefault("birdnet.base_url", "http://localhost:8080")
	v.SetDefault("display.target_width", 800)
	v.SetDefault("display.target_height", 600)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir must be set")
	}
	if c.Cache.SpeciesFile == "" {
		return fmt.Errorf("cache.species_file must be set")
	}
	if c.Cache.ImagesPerSpecies <= 0 {
		return fmt.Errorf("cache.images_per_species must be > 0")
	}
	if c.Cache.Concurrency <= 0 {
		return fmt.Errorf("cache.concurrency must be > 0")
	}
	if c.Search.BaseURL == "" {
		return fmt.Errorf("search.base_url must be set")
	}
	if c.Search.MinWidth <= 0 || c.Search.MinHeight <= 0 {
		return fmt.Errorf("search.min_width and search.min_height must be > 0")
	}
	if c.Search.UserAgent == "" {
		return fmt.Errorf("search.user_agent must be set")
	}
	if c.HTTP.PageTimeout <= 0 || c.HTTP.DownloadTimeout <= 0 {
		return fmt.Errorf("http.page_timeout and http.download_timeout must be > 0")
	}
	if c.BirdNET.BaseURL == "" {
		return fmt.Errorf("birdnet.base_url must be set")
	}
	if c.Display.TargetWidth <= 0 || c.Display.TargetHeight <= 0 {
		return fmt.Errorf("display.target_width and display.target_height must be > 0")
	}
	return nil
}
