package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/repository"
)

// ErrMissingUser is returned when a scenario operation has no user identity.
var ErrMissingUser = errors.New("user identity is required")

// ScenarioService persists and lists saved scenarios per user.
type ScenarioService interface {
	// Save stores a scenario for a user, assigning its ID and timestamps.
	Save(ctx context.Context, userID string, scenario *models.Scenario) error

	// List returns a user's scenarios, newest first.
	List(ctx context.Context, userID string) ([]models.Scenario, error)
}

// scenarioService is the concrete implementation of ScenarioService.
type scenarioService struct {
	store repository.ScenarioStore
	log   *logger.Logger
}

// NewScenarioService creates a new instance of ScenarioService.
func NewScenarioService(store repository.ScenarioStore, log *logger.Logger) ScenarioService {
	return &scenarioService{
		store: store,
		log:   log,
	}
}

func (s *scenarioService) Save(ctx context.Context, userID string, scenario *models.Scenario) error {
	if userID == "" {
		return ErrMissingUser
	}

	now := time.Now().UTC()
	scenario.ID = uuid.New()
	scenario.UserID = userID
	scenario.CreatedAt = now
	scenario.UpdatedAt = now

	if err := s.store.Save(ctx, scenario); err != nil {
		s.log.Error("Failed to save scenario", err, map[string]interface{}{
			"user_id": userID,
			"name":    scenario.Name,
		})
		return fmt.Errorf("failed to save scenario: %w", err)
	}

	s.log.Info("Scenario saved", map[string]interface{}{
		"user_id":     userID,
		"scenario_id": scenario.ID,
	})
	return nil
}

func (s *scenarioService) List(ctx context.Context, userID string) ([]models.Scenario, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	scenarios, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list scenarios", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, nil
}
