package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/homeward-labs/homeward/internal/geocode"
	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
)

// Service-level errors for ZIP resolution. Timeout and not-found stay
// distinct all the way to the HTTP layer.
var (
	ErrInvalidZip     = errors.New("ZIP code must be exactly 5 digits")
	ErrZipNotFound    = errors.New("ZIP code not found")
	ErrGeocodeTimeout = errors.New("geocoding timed out")
)

// ZipProvider resolves a ZIP code to a location.
type ZipProvider interface {
	Lookup(ctx context.Context, zip string) (*models.ZipLocation, error)
}

// LocationService resolves ZIP codes through a primary provider with a
// keyless fallback.
type LocationService interface {
	// ResolveZip validates the ZIP format and resolves it to a location.
	// Returns ErrInvalidZip before any network call for malformed input,
	// ErrZipNotFound when no provider knows the ZIP, and ErrGeocodeTimeout
	// when the last attempted provider timed out.
	ResolveZip(ctx context.Context, zip string) (*models.ZipLocation, error)
}

// locationService is the concrete implementation of LocationService.
type locationService struct {
	primary  ZipProvider
	fallback ZipProvider
	log      *logger.Logger
}

// NewLocationService creates a new instance of LocationService.
func NewLocationService(primary, fallback ZipProvider, log *logger.Logger) LocationService {
	return &locationService{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// ResolveZip tries the primary provider and falls through to the fallback on
// any primary failure, including not-found. The fallback's outcome decides
// the final error classification.
func (s *locationService) ResolveZip(ctx context.Context, zip string) (*models.ZipLocation, error) {
	if !geocode.ValidZip(zip) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidZip, zip)
	}

	location, err := s.primary.Lookup(ctx, zip)
	if err == nil {
		s.log.Info("ZIP resolved by primary provider", map[string]interface{}{
			"zip_code": zip,
			"state":    location.State,
			"county":   location.County,
		})
		return location, nil
	}

	s.log.Warn("Primary geocoding provider failed, trying fallback", map[string]interface{}{
		"zip_code": zip,
		"error":    err.Error(),
	})

	location, err = s.fallback.Lookup(ctx, zip)
	if err != nil {
		s.log.Error("Fallback geocoding provider failed", err, map[string]interface{}{
			"zip_code": zip,
		})
		switch {
		case errors.Is(err, geocode.ErrNotFound):
			return nil, ErrZipNotFound
		case errors.Is(err, geocode.ErrTimeout):
			return nil, ErrGeocodeTimeout
		default:
			return nil, fmt.Errorf("geocoding failed: %w", err)
		}
	}

	s.log.Info("ZIP resolved by fallback provider", map[string]interface{}{
		"zip_code": zip,
		"state":    location.State,
	})
	return location, nil
}
