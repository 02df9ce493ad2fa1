// Package estimator is the HTTP client for the AI-backed property-tax
// estimation collaborator. The service is treated as a black box: it takes a
// location query and returns a record-shaped estimate with its own confidence
// and source attribution.
package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/homeward-labs/homeward/internal/models"
)

// HTTPStatusError reports a non-success response from the estimation service.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("estimator status: %s", e.Status)
	}
	return fmt.Sprintf("estimator status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

// Client calls the estimation service with a per-request timeout and a
// circuit breaker. Once the breaker opens, calls fail immediately instead of
// burning the full timeout on every cache miss while the upstream is down.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*models.PropertyTaxRecord]
}

// New creates an estimation client.
func New(baseURL, model string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name: "tax-estimator",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Timeout: 30 * time.Second,
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker[*models.PropertyTaxRecord](settings),
	}
}

type estimateRequest struct {
	Model string               `json:"model"`
	Query models.LocationQuery `json:"query"`
}

type estimateResponse struct {
	HeadlineRate       float64             `json:"headlineRate"`
	ApplicableRate     float64             `json:"applicableRate"`
	Exemptions         models.ExemptionSet `json:"exemptions"`
	EstimatedAnnualTax float64             `json:"estimatedAnnualTax"`
	Details            models.TaxDetails   `json:"details"`
	Confidence         float64             `json:"confidence"`
	Sources            []string            `json:"sources"`
}

// Estimate requests a property-tax estimate for a query. Any failure
// (timeout, non-success status, open breaker) is returned to the caller, who
// is expected to fall back to the deterministic formula.
func (c *Client) Estimate(ctx context.Context, query models.LocationQuery) (*models.PropertyTaxRecord, error) {
	return c.breaker.Execute(func() (*models.PropertyTaxRecord, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.estimate(callCtx, query)
	})
}

func (c *Client) estimate(ctx context.Context, query models.LocationQuery) (*models.PropertyTaxRecord, error) {
	payload, err := json.Marshal(estimateRequest{Model: c.model, Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal estimate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/estimate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create estimate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("estimate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var body estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode estimate response: %w", err)
	}

	return &models.PropertyTaxRecord{
		Query:              query,
		HeadlineRate:       body.HeadlineRate,
		ApplicableRate:     body.ApplicableRate,
		Exemptions:         body.Exemptions,
		EstimatedAnnualTax: body.EstimatedAnnualTax,
		Details:            body.Details,
		Confidence:         body.Confidence,
		Sources:            body.Sources,
	}, nil
}
