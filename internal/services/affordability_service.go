package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/homeward-labs/homeward/internal/insurance"
	"github.com/homeward-labs/homeward/internal/logger"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/mortgage"
)

// ErrInvalidLoan is returned when the requested loan violates basic lending
// constraints, such as an LTV at or above 100%.
var ErrInvalidLoan = errors.New("invalid loan")

// AffordabilityInput captures the borrower and property side of an estimate.
type AffordabilityInput struct {
	HomePrice     float64 `json:"home_price"`
	DownPayment   float64 `json:"down_payment"`
	LoanTermYears int     `json:"loan_term_years"`
	InterestRate  float64 `json:"interest_rate"`
	AnnualIncome  float64 `json:"annual_income"`
	MonthlyDebts  float64 `json:"monthly_debts"`

	State              string `json:"state"`
	ZipCode            string `json:"zip_code"`
	City               string `json:"city"`
	County             string `json:"county"`
	IsPrimaryResidence bool   `json:"is_primary_residence"`
	IsOver65           bool   `json:"is_over_65"`
	IsVeteran          bool   `json:"is_veteran"`
	IsDisabled         bool   `json:"is_disabled"`
}

// AffordabilityEstimate is the composite result: principal and interest,
// mortgage insurance, property tax, homeowners insurance, and how much the
// borrower could finance at the same rate and term.
type AffordabilityEstimate struct {
	LoanAmount     float64 `json:"loan_amount"`
	LoanToValue    float64 `json:"loan_to_value"`
	MonthlyPayment float64 `json:"monthly_payment"`

	UpfrontMIP float64 `json:"upfront_mip"`
	MonthlyMIP float64 `json:"monthly_mip"`

	AnnualPropertyTax float64 `json:"annual_property_tax"`
	TaxConfidence     float64 `json:"tax_confidence"`

	AnnualInsurance float64                   `json:"annual_insurance"`
	RiskFactors     insurance.RiskFactors     `json:"risk_factors"`
	TotalMonthly    float64                   `json:"total_monthly"`
	BorrowingPower  float64                   `json:"borrowing_power"`
	TaxRecord       *models.PropertyTaxRecord `json:"tax_record,omitempty"`
}

// AffordabilityService composes the mortgage, tax, and insurance estimates
// into a single affordability picture.
type AffordabilityService interface {
	// Estimate computes the full affordability breakdown for the input.
	// Returns ErrInvalidLoan for loans the MIP table rejects; external
	// lookup failures degrade individual components instead of failing.
	Estimate(ctx context.Context, input AffordabilityInput) (*AffordabilityEstimate, error)
}

// affordabilityService is the concrete implementation of AffordabilityService.
type affordabilityService struct {
	tax TaxService
	log *logger.Logger
}

// NewAffordabilityService creates a new instance of AffordabilityService.
func NewAffordabilityService(tax TaxService, log *logger.Logger) AffordabilityService {
	return &affordabilityService{
		tax: tax,
		log: log,
	}
}

func (s *affordabilityService) Estimate(ctx context.Context, input AffordabilityInput) (*AffordabilityEstimate, error) {
	loanAmount := input.HomePrice - input.DownPayment

	mip, err := mortgage.MIP(loanAmount, input.HomePrice, input.LoanTermYears)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	payment, err := mortgage.MonthlyPayment(loanAmount, input.InterestRate, input.LoanTermYears)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	power, err := mortgage.BorrowingPower(input.AnnualIncome, input.MonthlyDebts, input.InterestRate, input.LoanTermYears, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	record, err := s.tax.Resolve(ctx, models.LocationQuery{
		State:              input.State,
		ZipCode:            input.ZipCode,
		City:               input.City,
		County:             input.County,
		IsPrimaryResidence: input.IsPrimaryResidence,
		IsOver65:           input.IsOver65,
		IsVeteran:          input.IsVeteran,
		IsDisabled:         input.IsDisabled,
		HomeValue:          input.HomePrice,
	})
	if err != nil {
		return nil, err
	}

	factors := insurance.AssessRisk(input.ZipCode, input.County, input.State)
	premium := insurance.EstimateAnnualPremium(input.HomePrice, factors, input.County, input.State)

	estimate := &AffordabilityEstimate{
		LoanAmount:        loanAmount,
		LoanToValue:       mip.LoanToValue,
		MonthlyPayment:    payment,
		UpfrontMIP:        mip.Upfront,
		MonthlyMIP:        mip.MonthlyPremium,
		AnnualPropertyTax: record.EstimatedAnnualTax,
		TaxConfidence:     record.Confidence,
		AnnualInsurance:   premium,
		RiskFactors:       factors,
		TotalMonthly:      payment + mip.MonthlyPremium + record.EstimatedAnnualTax/12 + premium/12,
		BorrowingPower:    power,
		TaxRecord:         record,
	}

	s.log.Info("Affordability estimate computed", map[string]interface{}{
		"home_price":    input.HomePrice,
		"loan_amount":   loanAmount,
		"total_monthly": estimate.TotalMonthly,
	})

	return estimate, nil
}
