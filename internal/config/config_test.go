package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "static/bird_images_cache", cfg.Cache.Dir)
	require.Equal(t, "species_list.csv", cfg.Cache.SpeciesFile)
	require.Equal(t, 3, cfg.Cache.ImagesPerSpecies)
	require.Equal(t, 10, cfg.Cache.Concurrency)
	require.Equal(t, "https://commons.wikimedia.org", cfg.Search.BaseURL)
	require.Equal(t, 800, cfg.Search.MinWidth)
	require.Equal(t, 600, cfg.Search.MinHeight)
	require.Equal(t, 500*time.Millisecond, cfg.HTTP.ProbeTimeout)
	require.Equal(t, 10*time.Second, cfg.HTTP.PageTimeout)
	require.Equal(t, 15*time.Second, cfg.HTTP.DownloadTimeout)
	require.Equal(t, "http://localhost:8080", cfg.BirdNET.BaseURL)
	require.Equal(t, 800, cfg.Display.TargetWidth)
	require.Equal(t, 600, cfg.Display.TargetHeight)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
cache:
  dir: /tmp/birds
  concurrency: 4
search:
  min_width: 1024
birdnet:
  base_url: http://birdnet.local:8080
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/birds", cfg.Cache.Dir)
	require.Equal(t, 4, cfg.Cache.Concurrency)
	require.Equal(t, 1024, cfg.Search.MinWidth)
	require.Equal(t, "http://birdnet.local:8080", cfg.BirdNET.BaseURL)
	// Untouched keys keep their defaults.
	require.Equal(t, 3, cfg.Cache.ImagesPerSpecies)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := cfg
	bad.Cache.Concurrency = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Search.MinWidth = -1
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Display.TargetHeight = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.BirdNET.BaseURL = ""
	require.Error(t, bad.Validate())
}
