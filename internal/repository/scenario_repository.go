package repository

import (
	"context"
	"fmt"

	"github.com/homeward-labs/homeward/internal/database"
	"github.com/homeward-labs/homeward/internal/models"
)

// ScenarioStore persists saved affordability scenarios.
type ScenarioStore interface {
	Save(ctx context.Context, scenario *models.Scenario) error
	ListByUser(ctx context.Context, userID string) ([]models.Scenario, error)
}

type scenarioStore struct {
	db *database.Database
}

// NewScenarioStore creates a ScenarioStore backed by Postgres.
func NewScenarioStore(db *database.Database) ScenarioStore {
	return &scenarioStore{db: db}
}

func (s *scenarioStore) Save(ctx context.Context, scenario *models.Scenario) error {
	query := `
		INSERT INTO scenarios (
			id, user_id, name,
			home_price, down_payment, loan_term_years, interest_rate,
			annual_income, monthly_debts, state, zip_code, county,
			monthly_payment, annual_property_tax, annual_insurance, monthly_mip,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		scenario.ID, scenario.UserID, scenario.Name,
		scenario.HomePrice, scenario.DownPayment, scenario.LoanTermYears, scenario.InterestRate,
		scenario.AnnualIncome, scenario.MonthlyDebts, scenario.State, scenario.ZipCode, scenario.County,
		scenario.MonthlyPayment, scenario.AnnualPropertyTax, scenario.AnnualInsurance, scenario.MonthlyMIP,
		scenario.CreatedAt, scenario.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", scenario.ID, err)
	}
	return nil
}

func (s *scenarioStore) ListByUser(ctx context.Context, userID string) ([]models.Scenario, error) {
	query := `
		SELECT
			id, user_id, name,
			home_price, down_payment, loan_term_years, interest_rate,
			annual_income, monthly_debts, state, zip_code, county,
			monthly_payment, annual_property_tax, annual_insurance, monthly_mip,
			created_at, updated_at
		FROM scenarios
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios for user %q: %w", userID, err)
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		var sc models.Scenario
		err := rows.Scan(
			&sc.ID, &sc.UserID, &sc.Name,
			&sc.HomePrice, &sc.DownPayment, &sc.LoanTermYears, &sc.InterestRate,
			&sc.AnnualIncome, &sc.MonthlyDebts, &sc.State, &sc.ZipCode, &sc.County,
			&sc.MonthlyPayment, &sc.AnnualPropertyTax, &sc.AnnualInsurance, &sc.MonthlyMIP,
			&sc.CreatedAt, &sc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scenario rows: %w", err)
	}

	return scenarios, nil
}
