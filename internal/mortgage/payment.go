package mortgage

import (
	"fmt"
	"math"
)

// DefaultDTICap is the debt-to-income ceiling used for borrowing power when
// the caller does not supply one.
const DefaultDTICap = 0.43

// MonthlyPayment computes the principal-and-interest payment for a fully
// amortized fixed-rate loan. A zero interest rate degenerates to straight
// division over the term.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) (float64, error) {
	if principal < 0 {
		return 0, fmt.Errorf("%w: got %.2f", ErrInvalidLoanAmount, principal)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("term must be positive, got %d", termYears)
	}

	months := float64(termYears * 12)
	if annualRatePercent == 0 {
		return principal / months, nil
	}

	monthlyRate := annualRatePercent / 100 / 12
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -months)), nil
}

// BorrowingPower estimates the largest principal whose payment fits under the
// DTI cap after existing monthly debts. It is the inverse of MonthlyPayment
// applied to the available monthly budget. Returns 0 when debts already
// exhaust the budget.
func BorrowingPower(annualIncome, monthlyDebts, annualRatePercent float64, termYears int, dtiCap float64) (float64, error) {
	if annualIncome < 0 {
		return 0, fmt.Errorf("annual income must be non-negative, got %.2f", annualIncome)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("term must be positive, got %d", termYears)
	}
	if dtiCap <= 0 {
		dtiCap = DefaultDTICap
	}

	budget := annualIncome/12*dtiCap - monthlyDebts
	if budget <= 0 {
		return 0, nil
	}

	months := float64(termYears * 12)
	if annualRatePercent == 0 {
		return budget * months, nil
	}

	monthlyRate := annualRatePercent / 100 / 12
	return budget * (1 - math.Pow(1+monthlyRate, -months)) / monthlyRate, nil
}
