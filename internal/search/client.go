// Package search resolves bird species into downloadable image candidates by
// scraping Wikimedia Commons MediaSearch.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/cache"
)

// Config controls the search client.
type Config struct {
	BaseURL     string
	MinWidth    int
	MinHeight   int
	PageTimeout time.Duration
}

// Client implements cache.Searcher against Wikimedia Commons.
type Client struct {
	cfg     Config
	fetcher cache.PageFetcher
	parser  Parser
	logger  *zap.Logger
}

// NewClient builds a Client. A nil parser selects the default goquery one.
func NewClient(cfg Config, fetcher cache.PageFetcher, parser Parser, logger *zap.Logger) *Client {
	if parser == nil {
		parser = NewParser()
	}
	if cfg.PageTimeout == 0 {
		cfg.PageTimeout = 10 * time.Second
	}
	return &Client{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  parser,
		logger:  logger,
	}
}

// Search tries query strings in priority order and returns candidates from
// the first query with any hits. This is a fallback chain, not an
// aggregation: once a query yields results the remaining queries are never
// issued.
func (c *Client) Search(ctx context.Context, commonName, scientificName string, count int) ([]cache.ImageCandidate, error) {
	queries := []string{
		fmt.Sprintf("%s %s bird", commonName, scientificName),
		fmt.Sprintf("%s bird", scientificName),
		fmt.Sprintf("%s bird", commonName),
	}
	for _, query := range queries {
		candidates, err := c.searchOnce(ctx, query, count)
		if err != nil {
			c.logger.Warn("Search query failed", zap.String("query", query), zap.Error(err))
			continue
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	return nil, nil
}

func (c *Client) searchOnce(ctx context.Context, query string, count int) ([]cache.ImageCandidate, error) {
	body, err := c.fetcher.Fetch(ctx, c.searchURL(query), c.cfg.PageTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	links := c.parser.SearchResults(body, count)
	candidates := make([]cache.ImageCandidate, 0, len(links))
	for _, link := range links {
		candidate, ok := c.resolveCandidate(ctx, link)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// resolveCandidate fetches a result's file page and derives the download URL
// and attribution. A candidate whose detail page cannot be fetched is
// skipped, not retried.
func (c *Client) resolveCandidate(ctx context.Context, link ResultLink) (cache.ImageCandidate, bool) {
	pageURL := c.absolutize(link.FilePageURL)
	body, err := c.fetcher.Fetch(ctx, pageURL, c.cfg.PageTimeout)
	if err != nil {
		c.logger.Debug("Skipping candidate, detail page fetch failed",
			zap.String("url", pageURL), zap.Error(err))
		return cache.ImageCandidate{}, false
	}

	detail := c.parser.DetailPage(body)
	candidate := cache.ImageCandidate{Attribution: FormatAttribution(detail.Author)}

	if best, ok := selectBySize(detail.Renditions, c.cfg.MinWidth, c.cfg.MinHeight); ok {
		candidate.SourceURL = c.absolutize(best.URL)
		candidate.Width = best.Width
		candidate.Height = best.Height
	} else {
		candidate.SourceURL = c.absolutize(fullResFromThumb(link.ThumbURL))
	}
	if candidate.SourceURL == "" {
		return cache.ImageCandidate{}, false
	}
	return candidate, true
}

func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("search", query)
	params.Set("title", "Special:MediaSearch")
	params.Set("go", "Go")
	params.Set("type", "image")
	return fmt.Sprintf("%s/w/index.php?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())
}

// absolutize resolves protocol-relative and root-relative URLs against the
// configured base.
func (c *Client) absolutize(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(c.cfg.BaseURL, "/") + raw
	default:
		return raw
	}
}

// fullResFromThumb derives the original-file URL from a thumbnail URL by
// stripping the /thumb segment and the size suffix path element.
func fullResFromThumb(thumb string) string {
	if thumb == "" {
		return ""
	}
	full := strings.Replace(thumb, "/thumb", "", 1)
	if idx := strings.LastIndex(full, "/"); idx > 0 {
		full = full[:idx]
	}
	return full
}
