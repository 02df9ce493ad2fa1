// Package geocode resolves ZIP codes to locations through a keyed primary
// provider with a keyless fallback. Each provider call is bounded by its own
// timeout; a timeout is a distinct failure mode from a missing ZIP.
package geocode

import (
	"context"
	"errors"
	"net"
	"regexp"
)

// Provider failure modes. Callers branch on these to pick the right HTTP
// status and to decide whether to fall through to the next provider.
var (
	ErrNotFound    = errors.New("no location found for ZIP code")
	ErrTimeout     = errors.New("geocoding provider timed out")
	ErrUnavailable = errors.New("geocoding provider unavailable")
)

// zipPattern is the strict 5-digit ZIP format accepted before any network
// call is attempted.
var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ValidZip reports whether a ZIP code matches the strict 5-digit format.
func ValidZip(zip string) bool {
	return zipPattern.MatchString(zip)
}

// classifyTransportError maps a transport-level failure onto the provider
// error taxonomy.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnavailable
}
