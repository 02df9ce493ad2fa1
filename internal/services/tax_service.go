package services

import (
	"context"
	"errors"
	"time"

	"github.com/homeward-labs/homeward/internal/cache"
	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/taxengine"
)

// ErrMissingState is returned when a query has no state, which makes both the
// external estimate and the fallback formula meaningless.
var ErrMissingState = errors.New("state is required")

// TaxEstimator is the external AI-backed estimation collaborator.
type TaxEstimator interface {
	Estimate(ctx context.Context, query models.LocationQuery) (*models.PropertyTaxRecord, error)
}

// TaxService resolves property-tax estimates through the cache.
type TaxService interface {
	// Resolve returns a property-tax record for the query, from cache when
	// possible. Returns ErrMissingState for queries without a state; an
	// external or cache failure degrades the estimate instead of failing.
	Resolve(ctx context.Context, query models.LocationQuery) (*models.PropertyTaxRecord, error)
}

// taxService is the concrete implementation of TaxService.
type taxService struct {
	records   *RecordCache
	estimator TaxEstimator
	ttl       time.Duration
	log       *logger.Logger
}

// NewTaxService creates a new instance of TaxService. ttl is how long a
// resolved record stays servable from the cache.
func NewTaxService(records *RecordCache, estimator TaxEstimator, ttl time.Duration, log *logger.Logger) TaxService {
	return &taxService{
		records:   records,
		estimator: estimator,
		ttl:       ttl,
		log:       log,
	}
}

// Resolve implements cache-aside lookup: a fresh cached record is returned as
// is; on a miss the external estimator is consulted, low-confidence estimates
// are blended with the deterministic state formula, and an estimator failure
// falls back to the formula entirely. The result is written back to the cache
// before returning; a write failure is logged but never surfaced.
func (s *taxService) Resolve(ctx context.Context, query models.LocationQuery) (*models.PropertyTaxRecord, error) {
	if query.State == "" {
		return nil, ErrMissingState
	}

	key := cache.Fingerprint(query)

	if hit := s.records.Lookup(ctx, key); hit != nil {
		s.log.Debug("Property-tax cache hit", map[string]interface{}{
			"cache_key": key,
		})
		return hit, nil
	}

	s.log.Info("Property-tax cache miss, estimating", map[string]interface{}{
		"cache_key": key,
		"state":     query.State,
		"zip_code":  query.ZipCode,
	})

	record, err := s.estimator.Estimate(ctx, query)
	if err != nil {
		s.log.Warn("Estimator unavailable, using fallback formula", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
		record = taxengine.Fallback(query)
	} else if taxengine.ShouldBlend(record.Confidence) {
		s.log.Debug("Blending low-confidence estimate with formula", map[string]interface{}{
			"cache_key":  key,
			"confidence": record.Confidence,
		})
		record = taxengine.Blend(record, taxengine.Fallback(query), record.Confidence)
	}

	now := time.Now().UTC()
	record.CacheKey = key
	record.LastUpdated = now
	record.ExpiresAt = now.Add(s.ttl)

	if err := s.records.Upsert(ctx, record); err != nil {
		// Best-effort write: the caller still gets the estimate.
		s.log.Error("Failed to cache property-tax record", err, map[string]interface{}{
			"cache_key": key,
		})
	}

	return record, nil
}
