package models

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a saved affordability calculation belonging to a user. The user
// identity is resolved by the caller (auth is handled upstream); this model
// only stores the opaque ID it is handed.
type Scenario struct {
	ID                uuid.UUID `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	HomePrice         float64   `json:"home_price"`
	DownPayment       float64   `json:"down_payment"`
	LoanTermYears     int       `json:"loan_term_years"`
	InterestRate      float64   `json:"interest_rate"`
	AnnualIncome      float64   `json:"annual_income"`
	MonthlyDebts      float64   `json:"monthly_debts"`
	State             string    `json:"state"`
	ZipCode           string    `json:"zip_code,omitempty"`
	County            string    `json:"county,omitempty"`
	MonthlyPayment    float64   `json:"monthly_payment"`
	AnnualPropertyTax float64   `json:"annual_property_tax"`
	AnnualInsurance   float64   `json:"annual_insurance"`
	MonthlyMIP        float64   `json:"monthly_mip"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
