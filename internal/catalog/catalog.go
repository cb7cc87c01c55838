// Package catalog manages the species list driving cache population: a flat
// CSV file plus a client for refreshing it from a BirdNET-Go instance.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/cache"
)

// Load parses a species CSV with a header row. Rows missing either field are
// skipped. An absent or malformed file yields an empty list, not an error;
// the caller decides whether an empty catalog is fatal.
func Load(path string, logger *zap.Logger) []cache.SpeciesEntry {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to open species file", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		logger.Warn("Failed to parse species file", zap.String("path", path), zap.Error(err))
		return nil
	}
	if len(rows) <= 1 {
		return nil
	}

	entries := make([]cache.SpeciesEntry, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 {
			continue
		}
		common := strings.TrimSpace(row[0])
		scientific := strings.TrimSpace(row[1])
		if common == "" || scientific == "" {
			continue
		}
		entries = append(entries, cache.SpeciesEntry{
			CommonName:     common,
			ScientificName: scientific,
		})
	}
	return entries
}

// Save overwrites path with a header row plus one row per entry.
func Save(entries []cache.SpeciesEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create species file %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Common Name", "Scientific Name"}); err != nil {
		return fmt.Errorf("write species header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.CommonName, e.ScientificName}); err != nil {
			return fmt.Errorf("write species row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush species file %s: %w", path, err)
	}
	return nil
}
