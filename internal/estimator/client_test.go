package estimator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeward-labs/homeward/internal/models"
)

func testQuery() models.LocationQuery {
	return models.LocationQuery{
		State:              "TX",
		ZipCode:            "77301",
		IsPrimaryResidence: true,
		HomeValue:          385000,
	}
}

func TestEstimate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/estimate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req estimateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tax-estimator-v1", req.Model)
		assert.Equal(t, "77301", req.Query.ZipCode)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"headlineRate": 1.6,
			"applicableRate": 1.18,
			"estimatedAnnualTax": 4560,
			"details": {"assessedValue": 385000, "exemptionTotal": 100000, "taxableValue": 285000, "jurisdiction": "Montgomery County, TX"},
			"confidence": 0.85,
			"sources": ["Montgomery County CAD 2025 rates"]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "tax-estimator-v1", 5*time.Second)
	record, err := client.Estimate(context.Background(), testQuery())

	require.NoError(t, err)
	assert.Equal(t, 1.6, record.HeadlineRate)
	assert.Equal(t, 4560.0, record.EstimatedAnnualTax)
	assert.Equal(t, 0.85, record.Confidence)
	assert.Equal(t, "77301", record.Query.ZipCode)
	assert.Equal(t, []string{"Montgomery County CAD 2025 rates"}, record.Sources)
}

func TestEstimate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "tax-estimator-v1", 5*time.Second)
	_, err := client.Estimate(context.Background(), testQuery())

	require.Error(t, err)
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "model overloaded")
}

func TestEstimate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, "tax-estimator-v1", 20*time.Millisecond)
	_, err := client.Estimate(context.Background(), testQuery())

	assert.Error(t, err)
}

func TestEstimate_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "tax-estimator-v1", 5*time.Second)

	for i := 0; i < 5; i++ {
		_, err := client.Estimate(context.Background(), testQuery())
		require.Error(t, err)
	}
	require.Equal(t, 5, calls)

	// Breaker is open: the next call fails without reaching the server
	_, err := client.Estimate(context.Background(), testQuery())
	assert.Error(t, err)
	assert.Equal(t, 5, calls)
}

func TestEstimate_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"headlineRate": not-json`))
	}))
	defer server.Close()

	client := New(server.URL, "tax-estimator-v1", 5*time.Second)
	_, err := client.Estimate(context.Background(), testQuery())

	assert.Error(t, err)
}
