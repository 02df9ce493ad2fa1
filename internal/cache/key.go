// Package cache provides the content-addressed fingerprint used to key
// property-tax records. Key generation is pure and reproducible: the same
// logical query always produces the same key.
package cache

import (
	"fmt"
	"math"
	"strings"

	"github.com/homeward-labs/homeward/internal/models"
)

// HomeValueBucket is the coarsening applied to home values before they enter
// the fingerprint. Queries that differ only within the same bucket share a
// key, which raises the cache hit rate at the cost of estimate precision.
const HomeValueBucket = 10000

// Fingerprint derives the deterministic cache key for a location query.
//
// The key is built from the location discriminator (state plus ZIP, city, or
// county, in that priority), the occupant flags, and the home value floored
// to the nearest $10,000. A missing home value is treated as 0.
func Fingerprint(q models.LocationQuery) string {
	state := canonical(q.State)

	location := "none"
	switch {
	case strings.TrimSpace(q.ZipCode) != "":
		location = "zip-" + canonical(q.ZipCode)
	case strings.TrimSpace(q.City) != "":
		location = "city-" + canonical(q.City)
	case strings.TrimSpace(q.County) != "":
		location = "county-" + canonical(q.County)
	}

	return fmt.Sprintf("%s:%s:p%s:s%s:v%s:d%s:hv%d",
		state,
		location,
		flag(q.IsPrimaryResidence),
		flag(q.IsOver65),
		flag(q.IsVeteran),
		flag(q.IsDisabled),
		BucketHomeValue(q.HomeValue),
	)
}

// BucketHomeValue floors a home value to the lower $10,000 boundary.
// Negative or missing values bucket to 0.
func BucketHomeValue(homeValue float64) int64 {
	if homeValue <= 0 || math.IsNaN(homeValue) {
		return 0
	}
	return int64(homeValue/HomeValueBucket) * HomeValueBucket
}

func canonical(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
