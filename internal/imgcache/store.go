// Package imgcache implements the on-disk image cache consumed by the
// display: one directory per species holding slot-indexed images, each with
// a .txt attribution sidecar sharing its stem.
package imgcache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/cache"
)

// Store reads and writes per-species asset directories under a root path.
// Presence is always re-derived from directory listings, never tracked in
// memory, so interrupted runs resume cleanly.
type Store struct {
	root            string
	fetcher         cache.PageFetcher
	downloadTimeout time.Duration
	logger          *zap.Logger
}

// New builds a Store rooted at dir.
func New(root string, fetcher cache.PageFetcher, downloadTimeout time.Duration, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("cache root is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create cache root %s: %w", root, err)
	}
	if downloadTimeout == 0 {
		downloadTimeout = 15 * time.Second
	}
	return &Store{
		root:            root,
		fetcher:         fetcher,
		downloadTimeout: downloadTimeout,
		logger:          logger,
	}, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// IsSpeciesComplete reports whether the species already has at least
// targetCount complete asset pairs. An image without its attribution sidecar
// does not count; the pair definition keeps completeness consistent with
// what Store skips.
func (s *Store) IsSpeciesComplete(commonName string, targetCount int) bool {
	dir := s.speciesDir(commonName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	complete := 0
	for _, entry := range entries {
		if entry.IsDir() || !hasImageExt(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if fileExists(filepath.Join(dir, stem+".txt")) {
			complete++
		}
	}
	return complete >= targetCount
}

// Store downloads a candidate into the given slot. If both the image and its
// sidecar already exist the call is a no-op; no bytes are fetched. Partial
// writes are not rolled back — the next build run re-derives completeness
// and retries the species wholesale.
func (s *Store) Store(ctx context.Context, candidate cache.ImageCandidate, commonName string, slot int) error {
	dir := s.speciesDir(commonName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create species dir %s: %w", dir, err)
	}

	base := fmt.Sprintf("%s_%d", cache.SanitizeSpeciesName(commonName), slot)
	imagePath := filepath.Join(dir, base+extFromURL(candidate.SourceURL))
	attrPath := filepath.Join(dir, base+".txt")

	if fileExists(imagePath) && fileExists(attrPath) {
		return nil
	}

	body, err := s.fetcher.Fetch(ctx, candidate.SourceURL, s.downloadTimeout)
	if err != nil {
		return fmt.Errorf("download %s: %w", candidate.SourceURL, err)
	}
	if err := os.WriteFile(imagePath, body, 0o640); err != nil {
		return fmt.Errorf("write image %s: %w", imagePath, err)
	}
	if err := os.WriteFile(attrPath, []byte(candidate.Attribution), 0o640); err != nil {
		return fmt.Errorf("write attribution %s: %w", attrPath, err)
	}

	s.logger.Info("Cached image", zap.String("species", commonName), zap.String("file", filepath.Base(imagePath)))
	return nil
}

// RandomAsset returns one randomly chosen cached image for the species,
// with its attribution text if the sidecar is readable. This is the read
// API the display layer uses; random choice keeps the screen varied.
func (s *Store) RandomAsset(commonName string) (cache.Asset, bool) {
	dir := s.speciesDir(commonName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return cache.Asset{}, false
	}

	var images []string
	for _, entry := range entries {
		if !entry.IsDir() && hasImageExt(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	if len(images) == 0 {
		return cache.Asset{}, false
	}

	name := images[rand.IntN(len(images))]
	asset := cache.Asset{ImagePath: filepath.Join(dir, name)}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if text, err := os.ReadFile(filepath.Join(dir, stem+".txt")); err == nil {
		asset.Attribution = string(text)
	}
	return asset, true
}

func (s *Store) speciesDir(commonName string) string {
	return filepath.Join(s.root, cache.SanitizeSpeciesName(commonName))
}

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

func hasImageExt(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// extFromURL derives the image extension from a download URL, defaulting to
// .jpg when the URL carries no recognizable one.
func extFromURL(raw string) string {
	candidate := raw
	if u, err := url.Parse(raw); err == nil {
		candidate = u.Path
	}
	ext := strings.ToLower(path.Ext(candidate))
	if _, ok := imageExts[ext]; ok {
		return ext
	}
	return ".jpg"
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
