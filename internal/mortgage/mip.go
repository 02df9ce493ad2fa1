// Package mortgage implements the loan-side calculations: FHA mortgage
// insurance premiums, amortized payments, and borrowing power.
package mortgage

import (
	"errors"
	"fmt"
)

// ConformingLoanLimit is the loan-amount threshold that moves a loan into the
// high-balance MIP tiers. The boundary is inclusive on the low side: a loan of
// exactly this amount prices at the base tier.
const ConformingLoanLimit = 726200.0

// UpfrontMIPRate is the flat upfront premium charged on all loans.
const UpfrontMIPRate = 0.0175

// Input validation errors.
var (
	ErrInvalidLoanAmount = errors.New("loan amount must be non-negative")
	ErrInvalidHomePrice  = errors.New("home price must be positive")
	ErrInvalidLTV        = errors.New("loan amount must be less than home price")
)

// MIPResult holds the resolved mortgage insurance premium for a loan.
type MIPResult struct {
	Upfront           float64 `json:"upfront"`
	MonthlyPremium    float64 `json:"monthlyPremium"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	LoanToValue       float64 `json:"loanToValue"`
}

// MIP resolves the mortgage insurance premium for a loan. The annual rate is
// a two-axis decision table on term, loan amount against the conforming
// limit, and loan-to-value.
func MIP(loanAmount, homePrice float64, termYears int) (*MIPResult, error) {
	if loanAmount < 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidLoanAmount, loanAmount)
	}
	if homePrice <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidHomePrice, homePrice)
	}
	if loanAmount >= homePrice {
		return nil, fmt.Errorf("%w: loan %.2f against price %.2f", ErrInvalidLTV, loanAmount, homePrice)
	}

	ltv := loanAmount / homePrice
	annualRate := annualMIPRate(loanAmount, ltv, termYears)

	return &MIPResult{
		Upfront:           loanAmount * UpfrontMIPRate,
		MonthlyPremium:    loanAmount * annualRate / 100 / 12,
		AnnualRatePercent: annualRate,
		LoanToValue:       ltv,
	}, nil
}

// annualMIPRate returns the annual premium rate in percent.
func annualMIPRate(loanAmount, ltv float64, termYears int) float64 {
	highBalance := loanAmount > ConformingLoanLimit

	if termYears > 15 {
		if highBalance {
			if ltv <= 0.95 {
				return 0.70
			}
			return 0.75
		}
		if ltv <= 0.95 {
			return 0.50
		}
		return 0.55
	}

	// Term of 15 years or less
	if highBalance {
		switch {
		case ltv <= 0.78:
			return 0.15
		case ltv <= 0.90:
			return 0.40
		default:
			return 0.65
		}
	}
	if ltv <= 0.90 {
		return 0.15
	}
	return 0.40
}
