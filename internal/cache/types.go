// Package cache defines core types shared across the cache-building subsystems.
package cache

import "strings"

// SpeciesEntry is one row of the species catalog.
type SpeciesEntry struct {
	CommonName     string `json:"commonName"`
	ScientificName string `json:"scientificName"`
}

// ImageCandidate is a discovered image plus its attribution, not yet persisted.
type ImageCandidate struct {
	SourceURL   string
	Attribution string
	Width       int
	Height      int
}

// Asset is a persisted image/attribution pair for one species slot.
type Asset struct {
	ImagePath   string `json:"image_path"`
	Attribution string `json:"attribution"`
}

// OutcomeStatus classifies how a species fared during a build run.
type OutcomeStatus string

// Outcome status values reported in the build summary.
const (
	StatusCached  OutcomeStatus = "cached"  // already complete, skipped
	StatusFetched OutcomeStatus = "fetched" // all requested slots stored
	StatusPartial OutcomeStatus = "partial" // some slots stored, some failed
	StatusMissing OutcomeStatus = "missing" // no images found or stored
)

// SpeciesOutcome is the per-species result of one unit of build work.
type SpeciesOutcome struct {
	CommonName string
	Status     OutcomeStatus
	Stored     int
	Err        error
}

// SanitizeSpeciesName converts a common name into a filesystem-safe directory
// name: alphanumerics, spaces and underscores are kept, everything else is
// dropped, and spaces become underscores.
func SanitizeSpeciesName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
}
