package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/homeward-labs/homeward/internal/models"
)

// PrimaryClient calls the paid geocoding provider. It returns city, state,
// and county for a ZIP, which the keyless fallback cannot supply.
type PrimaryClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPrimaryClient creates a client for the keyed provider. The timeout
// bounds every lookup.
func NewPrimaryClient(baseURL, apiKey string, timeout time.Duration) *PrimaryClient {
	return &PrimaryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type primaryResponse struct {
	Results []struct {
		AddressComponents struct {
			City   string `json:"city"`
			County string `json:"county"`
			State  string `json:"state"`
			Zip    string `json:"zip"`
		} `json:"address_components"`
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		Fields struct {
			Timezone struct {
				Name string `json:"name"`
			} `json:"timezone"`
		} `json:"fields"`
	} `json:"results"`
}

// Lookup resolves a ZIP through the keyed provider. A missing API key is
// reported as ErrUnavailable so the caller falls through to the free
// provider without a network round trip.
func (c *PrimaryClient) Lookup(ctx context.Context, zip string) (*models.ZipLocation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/geocode?q=%s&fields=timezone&api_key=%s",
		c.baseURL, url.QueryEscape(zip), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("primary geocode request: %w", classifyTransportError(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var body primaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, ErrNotFound
	}

	best := body.Results[0]
	county := strings.TrimSuffix(best.AddressComponents.County, " County")

	return &models.ZipLocation{
		ZipCode:  zip,
		City:     best.AddressComponents.City,
		State:    best.AddressComponents.State,
		County:   county,
		Timezone: best.Fields.Timezone.Name,
		Lat:      best.Location.Lat,
		Lon:      best.Location.Lng,
	}, nil
}
