package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/homeward-labs/homeward/internal/errors"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/services"
)

// MockLocationService is a mock implementation of services.LocationService for testing
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) ResolveZip(ctx context.Context, zip string) (*models.ZipLocation, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ZipLocation), args.Error(1)
}

func getZip(t *testing.T, service *MockLocationService, zip string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewZipCodeHandler(service)
	router, _ := setupTestRouter()
	router.GET("/api/v1/zipcode", handler.Resolve)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zipcode?zip="+zip, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestZipResolve_Success(t *testing.T) {
	service := new(MockLocationService)
	service.On("ResolveZip", mock.Anything, "77301").Return(&models.ZipLocation{
		ZipCode: "77301",
		City:    "Conroe",
		State:   "TX",
		County:  "Montgomery",
	}, nil)

	w := getZip(t, service, "77301")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.ZipLocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Conroe", got.City)
	assert.Equal(t, "Montgomery", got.County)
}

func TestZipResolve_InvalidZip(t *testing.T) {
	service := new(MockLocationService)
	service.On("ResolveZip", mock.Anything, "123").Return(nil, services.ErrInvalidZip)

	w := getZip(t, service, "123")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.ErrBadRequest, resp.Error.Code)
}

func TestZipResolve_NotFound(t *testing.T) {
	service := new(MockLocationService)
	service.On("ResolveZip", mock.Anything, "00000").Return(nil, services.ErrZipNotFound)

	w := getZip(t, service, "00000")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestZipResolve_TimeoutIs504(t *testing.T) {
	service := new(MockLocationService)
	service.On("ResolveZip", mock.Anything, "77301").Return(nil, services.ErrGeocodeTimeout)

	w := getZip(t, service, "77301")

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.ErrTimeout, resp.Error.Code)
}
