package cache

import (
	"context"
	"time"
)

// Searcher resolves a species into up to count image download candidates.
type Searcher interface {
	Search(ctx context.Context, commonName, scientificName string, count int) ([]ImageCandidate, error)
}

// AssetStore persists image/attribution pairs under a per-species directory.
type AssetStore interface {
	IsSpeciesComplete(commonName string, targetCount int) bool
	Store(ctx context.Context, candidate ImageCandidate, commonName string, slot int) error
	RandomAsset(commonName string) (Asset, bool)
}

// PageFetcher performs a single GET and returns the response body. One shared
// implementation backs every worker so connections are pooled.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}
