package services

import (
	"context"
	"fmt"
	"time"

	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/repository"
)

// RecordCache is the cache-aside façade over the persisted property-tax
// records. It enforces the two properties the store does not: expired records
// are never returned, and the total row count stays at or below the cap.
type RecordCache struct {
	store      repository.TaxRecordStore
	maxEntries int
	log        *logger.Logger
}

// NewRecordCache creates a RecordCache with the given capacity.
func NewRecordCache(store repository.TaxRecordStore, maxEntries int, log *logger.Logger) *RecordCache {
	return &RecordCache{
		store:      store,
		maxEntries: maxEntries,
		log:        log,
	}
}

// Lookup returns the cached record for a key, or nil on a miss. A record past
// its expiry is a miss even if the sweeper has not removed it yet. A store
// failure is logged and treated as a miss; cache reads are best-effort.
func (c *RecordCache) Lookup(ctx context.Context, key string) *models.PropertyTaxRecord {
	record, err := c.store.GetByKey(ctx, key)
	if err != nil {
		c.log.Warn("Cache read failed, treating as miss", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
		return nil
	}
	if record == nil {
		return nil
	}
	if record.Expired(time.Now()) {
		c.log.Debug("Cached record expired, treating as miss", map[string]interface{}{
			"cache_key":  key,
			"expires_at": record.ExpiresAt,
		})
		return nil
	}
	return record
}

// Upsert writes a record, overwriting any existing record with the same key.
// A fresh insert that pushes the row count over the cap evicts the records
// with the smallest expiry, counting the new row itself as a candidate.
// Concurrent upserts of one key resolve last-write-wins at the store, so two
// resolvers racing on the same miss both succeed.
func (c *RecordCache) Upsert(ctx context.Context, record *models.PropertyTaxRecord) error {
	existing, err := c.store.GetByKey(ctx, record.CacheKey)
	if err != nil {
		return fmt.Errorf("cache upsert read: %w", err)
	}

	if existing != nil {
		if err := c.store.Update(ctx, record); err != nil {
			return fmt.Errorf("cache upsert update: %w", err)
		}
		return nil
	}

	if err := c.store.Insert(ctx, record); err != nil {
		return fmt.Errorf("cache upsert insert: %w", err)
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("cache upsert count: %w", err)
	}
	if over := count - int64(c.maxEntries); over > 0 {
		evicted, err := c.store.DeleteOldestExpiring(ctx, int(over))
		if err != nil {
			return fmt.Errorf("cache evict: %w", err)
		}
		c.log.Info("Evicted soonest-expiring cache records", map[string]interface{}{
			"evicted": evicted,
			"cap":     c.maxEntries,
		})
	}

	return nil
}

// SweepExpired deletes every record past its expiry and returns the number
// removed. Sweeping is housekeeping; Lookup enforces expiry on its own.
func (c *RecordCache) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := c.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	return deleted, nil
}
