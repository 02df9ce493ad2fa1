package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
)

// fakeRecordStore is an in-memory TaxRecordStore so the cache façade's
// expiry and eviction behavior can be tested without a database.
type fakeRecordStore struct {
	mu         sync.Mutex
	records    map[string]models.PropertyTaxRecord
	failReads  bool
	failWrites bool
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]models.PropertyTaxRecord)}
}

func (f *fakeRecordStore) GetByKey(_ context.Context, key string) (*models.PropertyTaxRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errors.New("store read failure")
	}
	record, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeRecordStore) Insert(_ context.Context, record *models.PropertyTaxRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errors.New("store write failure")
	}
	// Key collisions resolve last-write-wins, like the Postgres store.
	f.records[record.CacheKey] = *record
	return nil
}

func (f *fakeRecordStore) Update(_ context.Context, record *models.PropertyTaxRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errors.New("store write failure")
	}
	if _, ok := f.records[record.CacheKey]; !ok {
		return errors.New("no such key")
	}
	f.records[record.CacheKey] = *record
	return nil
}

func (f *fakeRecordStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for key, record := range f.records {
		if record.ExpiresAt.Before(now) {
			delete(f.records, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRecordStore) DeleteOldestExpiring(_ context.Context, n int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.records))
	for key := range f.records {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return f.records[keys[i]].ExpiresAt.Before(f.records[keys[j]].ExpiresAt)
	})
	var deleted int64
	for _, key := range keys {
		if deleted >= int64(n) {
			break
		}
		delete(f.records, key)
		deleted++
	}
	return deleted, nil
}

func (f *fakeRecordStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

func cacheRecord(key string, expiresAt time.Time) *models.PropertyTaxRecord {
	return &models.PropertyTaxRecord{
		CacheKey:           key,
		Query:              models.LocationQuery{State: "TX", ZipCode: "77301", HomeValue: 385000},
		ApplicableRate:     1.42,
		EstimatedAnnualTax: 4047,
		Confidence:         0.9,
		LastUpdated:        time.Now().UTC(),
		ExpiresAt:          expiresAt,
	}
}

func TestRecordCache_UpsertLookupRoundTrip(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	record := cacheRecord("tx:zip-77301:p0:s0:v0:d0:hv380000", time.Now().Add(time.Hour))
	require.NoError(t, cache.Upsert(ctx, record))

	got := cache.Lookup(ctx, record.CacheKey)
	require.NotNil(t, got)
	assert.Equal(t, record.CacheKey, got.CacheKey)
	assert.Equal(t, record.EstimatedAnnualTax, got.EstimatedAnnualTax)
}

func TestRecordCache_ExpiredRecordIsMiss(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	// Expired record still in the store: no sweep has run.
	record := cacheRecord("stale", time.Now().Add(-time.Minute))
	require.NoError(t, store.Insert(ctx, record))

	assert.Nil(t, cache.Lookup(ctx, "stale"))
}

func TestRecordCache_ReadFailureIsMiss(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	record := cacheRecord("key", time.Now().Add(time.Hour))
	require.NoError(t, cache.Upsert(ctx, record))

	store.failReads = true
	assert.Nil(t, cache.Lookup(ctx, "key"))
}

func TestRecordCache_UpsertOverwritesExistingKey(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	record := cacheRecord("key", time.Now().Add(time.Hour))
	require.NoError(t, cache.Upsert(ctx, record))

	record.EstimatedAnnualTax = 5000
	require.NoError(t, cache.Upsert(ctx, record))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got := cache.Lookup(ctx, "key")
	require.NotNil(t, got)
	assert.Equal(t, 5000.0, got.EstimatedAnnualTax)
}

func TestRecordCache_InsertOverCapEvictsSoonestExpiring(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	base := time.Now().Add(time.Hour)
	for i := 0; i < 1000; i++ {
		record := cacheRecord(fmt.Sprintf("key-%04d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Insert(ctx, record))
	}

	// The 1001st distinct key evicts exactly one record, the one with the
	// smallest expiry among all 1001.
	newcomer := cacheRecord("newcomer", base.Add(2000*time.Minute))
	require.NoError(t, cache.Upsert(ctx, newcomer))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), count)

	evicted, err := store.GetByKey(ctx, "key-0000")
	require.NoError(t, err)
	assert.Nil(t, evicted)

	kept := cache.Lookup(ctx, "newcomer")
	assert.NotNil(t, kept)
}

func TestRecordCache_NewcomerItselfCanBeEvicted(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 2, logger.New("test"))
	ctx := context.Background()

	base := time.Now().Add(time.Hour)
	require.NoError(t, store.Insert(ctx, cacheRecord("a", base.Add(time.Hour))))
	require.NoError(t, store.Insert(ctx, cacheRecord("b", base.Add(2*time.Hour))))

	// Expiring sooner than everything already cached.
	require.NoError(t, cache.Upsert(ctx, cacheRecord("c", base)))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	gone, err := store.GetByKey(ctx, "c")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRecordCache_RacingFirstMissesConverge(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	// Two resolvers missed on the same key and both chose the insert path.
	first := cacheRecord("key", time.Now().Add(time.Hour))
	first.EstimatedAnnualTax = 4000
	second := cacheRecord("key", time.Now().Add(time.Hour))
	second.EstimatedAnnualTax = 4100

	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got := cache.Lookup(ctx, "key")
	require.NotNil(t, got)
	assert.Equal(t, 4100.0, got.EstimatedAnnualTax)
}

func TestRecordCache_SweepExpiredRemovesOnlyExpired(t *testing.T) {
	store := newFakeRecordStore()
	cache := NewRecordCache(store, 1000, logger.New("test"))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, cacheRecord("stale", time.Now().Add(-time.Hour))))
	require.NoError(t, store.Insert(ctx, cacheRecord("fresh", time.Now().Add(time.Hour))))

	deleted, err := cache.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NotNil(t, cache.Lookup(ctx, "fresh"))
}
