package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/cache"
)

// LocationStatus is the tri-state result of a location settings check.
type LocationStatus int

// Location check outcomes. Unknown means the check itself failed; callers
// proceed with a warning rather than treating it as an error.
const (
	LocationUnknown LocationStatus = iota
	LocationUnset
	LocationConfigured
)

func (s LocationStatus) String() string {
	switch s {
	case LocationConfigured:
		return "configured"
	case LocationUnset:
		return "unset"
	default:
		return "unknown"
	}
}

// Client talks to a BirdNET-Go instance's v2 API.
type Client struct {
	baseURL      string
	http         *http.Client
	probeTimeout time.Duration
	logger       *zap.Logger
}

// NewClient builds a Client for the given base URL. The probe timeout bounds
// availability checks like CheckLocation so an unreachable instance fails
// fast; content requests get the full timeout.
func NewClient(baseURL string, timeout, probeTimeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if probeTimeout == 0 {
		probeTimeout = 500 * time.Millisecond
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

type speciesListResponse struct {
	Species []cache.SpeciesEntry `json:"species"`
}

type settingsResponse struct {
	BirdNET struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"birdnet"`
}

// FetchSpecies pulls the range-filtered species list. Network failures are
// returned to the caller; connection-refused and timeout failures are
// distinguished in the logs so the operator can tell a stopped instance from
// a slow one.
func (c *Client) FetchSpecies(ctx context.Context) ([]cache.SpeciesEntry, error) {
	url := c.baseURL + "/api/v2/range/species/list"
	c.logger.Info("Fetching species list", zap.String("url", url))

	body, err := c.get(ctx, url)
	if err != nil {
		switch {
		case errors.Is(err, syscall.ECONNREFUSED):
			c.logger.Error("Cannot connect to BirdNET-Go; is it running?", zap.String("base_url", c.baseURL))
		case isTimeout(err):
			c.logger.Error("Connection to BirdNET-Go timed out", zap.String("base_url", c.baseURL))
		default:
			c.logger.Error("Failed to fetch species list", zap.Error(err))
		}
		return nil, err
	}

	var resp speciesListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode species list: %w", err)
	}

	entries := make([]cache.SpeciesEntry, 0, len(resp.Species))
	for _, s := range resp.Species {
		common := strings.TrimSpace(s.CommonName)
		scientific := strings.TrimSpace(s.ScientificName)
		if common == "" || scientific == "" {
			continue
		}
		entries = append(entries, cache.SpeciesEntry{
			CommonName:     common,
			ScientificName: scientific,
		})
	}
	c.logger.Info("Fetched species from API", zap.Int("count", len(entries)))
	return entries, nil
}

// CheckLocation verifies that the BirdNET-Go range filter has usable
// coordinates. A species list pulled without a location is not wrong, just
// unlikely to match what the detector actually hears.
func (c *Client) CheckLocation(ctx context.Context) LocationStatus {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	body, err := c.get(probeCtx, c.baseURL+"/api/v2/settings")
	if err != nil {
		c.logger.Warn("Could not verify location settings", zap.Error(err))
		return LocationUnknown
	}

	var resp settingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("Could not parse settings response", zap.Error(err))
		return LocationUnknown
	}

	lat, lon := resp.BirdNET.Latitude, resp.BirdNET.Longitude
	if lat == nil || lon == nil {
		return LocationUnset
	}
	if *lat == 0 && *lon == 0 {
		return LocationUnset
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return LocationUnset
	}

	c.logger.Info("Location configured", zap.Float64("latitude", *lat), zap.Float64("longitude", *lon))
	return LocationConfigured
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return buf, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
