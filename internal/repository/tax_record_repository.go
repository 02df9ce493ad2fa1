package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/homeward-labs/homeward/internal/database"
	"github.com/homeward-labs/homeward/internal/models"
)

// TaxRecordStore defines the primitive persistence operations for cached
// property-tax records. Expiry checks and capacity enforcement are the cache
// façade's concern; the store only moves rows.
type TaxRecordStore interface {
	// GetByKey returns the record for a cache key, expired or not.
	// Returns nil, nil when no record exists (not an error).
	GetByKey(ctx context.Context, key string) (*models.PropertyTaxRecord, error)

	// Insert adds a new record. A concurrent insert of the same key
	// resolves last-write-wins; all fields derive from the same query and
	// external call, so the overwrite loses nothing.
	Insert(ctx context.Context, record *models.PropertyTaxRecord) error

	// Update overwrites the record with the same cache key in place.
	Update(ctx context.Context, record *models.PropertyTaxRecord) error

	// DeleteExpired removes all records whose expiry is before now and
	// returns the number deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// DeleteOldestExpiring removes the n records with the smallest
	// expires_at and returns the number deleted.
	DeleteOldestExpiring(ctx context.Context, n int) (int64, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)
}

// taxRecordStore is the pgx implementation of TaxRecordStore.
type taxRecordStore struct {
	db *database.Database
}

// NewTaxRecordStore creates a TaxRecordStore backed by Postgres.
func NewTaxRecordStore(db *database.Database) TaxRecordStore {
	return &taxRecordStore{db: db}
}

const taxRecordColumns = `
	cache_key,
	state, zip_code, city, county,
	is_primary_residence, is_over_65, is_veteran, is_disabled, home_value,
	headline_rate, applicable_rate, exemptions, estimated_annual_tax, details,
	confidence, sources, last_updated, expires_at
`

func (s *taxRecordStore) GetByKey(ctx context.Context, key string) (*models.PropertyTaxRecord, error) {
	query := `SELECT ` + taxRecordColumns + ` FROM property_tax_records WHERE cache_key = $1`

	row := s.db.Pool.QueryRow(ctx, query, key)
	record, err := scanTaxRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tax record %q: %w", key, err)
	}
	return record, nil
}

func (s *taxRecordStore) Insert(ctx context.Context, record *models.PropertyTaxRecord) error {
	query := `
		INSERT INTO property_tax_records (` + taxRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (cache_key) DO UPDATE SET
			state = EXCLUDED.state, zip_code = EXCLUDED.zip_code,
			city = EXCLUDED.city, county = EXCLUDED.county,
			is_primary_residence = EXCLUDED.is_primary_residence,
			is_over_65 = EXCLUDED.is_over_65, is_veteran = EXCLUDED.is_veteran,
			is_disabled = EXCLUDED.is_disabled, home_value = EXCLUDED.home_value,
			headline_rate = EXCLUDED.headline_rate,
			applicable_rate = EXCLUDED.applicable_rate,
			exemptions = EXCLUDED.exemptions,
			estimated_annual_tax = EXCLUDED.estimated_annual_tax,
			details = EXCLUDED.details, confidence = EXCLUDED.confidence,
			sources = EXCLUDED.sources, last_updated = EXCLUDED.last_updated,
			expires_at = EXCLUDED.expires_at
	`

	args, err := taxRecordArgs(record)
	if err != nil {
		return err
	}

	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert tax record %q: %w", record.CacheKey, err)
	}
	return nil
}

func (s *taxRecordStore) Update(ctx context.Context, record *models.PropertyTaxRecord) error {
	query := `
		UPDATE property_tax_records SET
			state = $2, zip_code = $3, city = $4, county = $5,
			is_primary_residence = $6, is_over_65 = $7, is_veteran = $8, is_disabled = $9, home_value = $10,
			headline_rate = $11, applicable_rate = $12, exemptions = $13, estimated_annual_tax = $14, details = $15,
			confidence = $16, sources = $17, last_updated = $18, expires_at = $19
		WHERE cache_key = $1
	`

	args, err := taxRecordArgs(record)
	if err != nil {
		return err
	}

	tag, err := s.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tax record %q: %w", record.CacheKey, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no tax record with key %q to update", record.CacheKey)
	}
	return nil
}

func (s *taxRecordStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM property_tax_records WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tax records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *taxRecordStore) DeleteOldestExpiring(ctx context.Context, n int) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	query := `
		DELETE FROM property_tax_records
		WHERE cache_key IN (
			SELECT cache_key FROM property_tax_records
			ORDER BY expires_at ASC
			LIMIT $1
		)
	`

	tag, err := s.db.Pool.Exec(ctx, query, n)
	if err != nil {
		return 0, fmt.Errorf("failed to evict tax records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *taxRecordStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM property_tax_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tax records: %w", err)
	}
	return count, nil
}

// taxRecordArgs flattens a record into positional SQL arguments, encoding the
// structured fields as JSON.
func taxRecordArgs(record *models.PropertyTaxRecord) ([]interface{}, error) {
	exemptionsJSON, err := json.Marshal(record.Exemptions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode exemptions for %q: %w", record.CacheKey, err)
	}
	detailsJSON, err := json.Marshal(record.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details for %q: %w", record.CacheKey, err)
	}

	return []interface{}{
		record.CacheKey,
		record.Query.State, record.Query.ZipCode, record.Query.City, record.Query.County,
		record.Query.IsPrimaryResidence, record.Query.IsOver65, record.Query.IsVeteran, record.Query.IsDisabled, record.Query.HomeValue,
		record.HeadlineRate, record.ApplicableRate, exemptionsJSON, record.EstimatedAnnualTax, detailsJSON,
		record.Confidence, record.Sources, record.LastUpdated, record.ExpiresAt,
	}, nil
}

// scanTaxRecord reads one row into a record, decoding the JSON columns.
func scanTaxRecord(row pgx.Row) (*models.PropertyTaxRecord, error) {
	var record models.PropertyTaxRecord
	var exemptionsJSON, detailsJSON []byte

	err := row.Scan(
		&record.CacheKey,
		&record.Query.State, &record.Query.ZipCode, &record.Query.City, &record.Query.County,
		&record.Query.IsPrimaryResidence, &record.Query.IsOver65, &record.Query.IsVeteran, &record.Query.IsDisabled, &record.Query.HomeValue,
		&record.HeadlineRate, &record.ApplicableRate, &exemptionsJSON, &record.EstimatedAnnualTax, &detailsJSON,
		&record.Confidence, &record.Sources, &record.LastUpdated, &record.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(exemptionsJSON, &record.Exemptions); err != nil {
		return nil, fmt.Errorf("failed to decode exemptions for %q: %w", record.CacheKey, err)
	}
	if err := json.Unmarshal(detailsJSON, &record.Details); err != nil {
		return nil, fmt.Errorf("failed to decode details for %q: %w", record.CacheKey, err)
	}

	return &record, nil
}
