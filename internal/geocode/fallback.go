package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/homeward-labs/homeward/internal/models"
)

// FallbackClient calls the free, keyless ZIP provider. It returns city,
// state, and coordinates but no county.
type FallbackClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFallbackClient creates a client for the keyless provider.
func NewFallbackClient(baseURL string, timeout time.Duration) *FallbackClient {
	return &FallbackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type fallbackResponse struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName         string `json:"place name"`
		StateAbbreviation string `json:"state abbreviation"`
		Latitude          string `json:"latitude"`
		Longitude         string `json:"longitude"`
	} `json:"places"`
}

// Lookup resolves a ZIP through the keyless provider.
func (c *FallbackClient) Lookup(ctx context.Context, zip string) (*models.ZipLocation, error) {
	endpoint := fmt.Sprintf("%s/us/%s", c.baseURL, zip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create fallback geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback geocode request: %w", classifyTransportError(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var body fallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode fallback geocode response: %w", err)
	}
	if len(body.Places) == 0 {
		return nil, ErrNotFound
	}

	place := body.Places[0]
	lat, _ := strconv.ParseFloat(place.Latitude, 64)
	lon, _ := strconv.ParseFloat(place.Longitude, 64)

	return &models.ZipLocation{
		ZipCode: zip,
		City:    place.PlaceName,
		State:   place.StateAbbreviation,
		Lat:     lat,
		Lon:     lon,
	}, nil
}
