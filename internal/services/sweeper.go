package services

import (
	"context"
	"time"

	"github.com/homeward-labs/homeward/internal/logger"
)

// Sweeper periodically deletes expired cache records. It is a housekeeping
// loop only; lookups never depend on it for correctness.
type Sweeper struct {
	records  *RecordCache
	interval time.Duration
	log      *logger.Logger
}

// NewSweeper creates a Sweeper that runs every interval.
func NewSweeper(records *RecordCache, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		records:  records,
		interval: interval,
		log:      log,
	}
}

// Run sweeps on a fixed ticker until the context is cancelled. Sweep failures
// are logged and the loop keeps going.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Cache sweeper started", map[string]interface{}{
		"interval": s.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Cache sweeper stopped", nil)
			return
		case <-ticker.C:
			deleted, err := s.records.SweepExpired(ctx)
			if err != nil {
				s.log.Error("Cache sweep failed", err, nil)
				continue
			}
			if deleted > 0 {
				s.log.Info("Cache sweep removed expired records", map[string]interface{}{
					"deleted": deleted,
				})
			}
		}
	}
}
