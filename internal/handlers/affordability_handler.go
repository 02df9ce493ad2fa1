package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/homeward-labs/homeward/internal/errors"
	"github.com/homeward-labs/homeward/internal/middleware"
	"github.com/homeward-labs/homeward/internal/services"
)

// AffordabilityHandler handles affordability estimation requests.
type AffordabilityHandler struct {
	service services.AffordabilityService
}

// NewAffordabilityHandler creates a new AffordabilityHandler instance.
func NewAffordabilityHandler(service services.AffordabilityService) *AffordabilityHandler {
	return &AffordabilityHandler{
		service: service,
	}
}

// AffordabilityRequest represents the body of the affordability endpoint.
type AffordabilityRequest struct {
	HomePrice     float64 `json:"home_price" binding:"required,gt=0"`
	DownPayment   float64 `json:"down_payment" binding:"gte=0"`
	LoanTermYears int     `json:"loan_term_years" binding:"required,gt=0,lte=50"`
	InterestRate  float64 `json:"interest_rate" binding:"gte=0,lte=30"`
	AnnualIncome  float64 `json:"annual_income" binding:"gte=0"`
	MonthlyDebts  float64 `json:"monthly_debts" binding:"gte=0"`

	State              string `json:"state" binding:"required,len=2"`
	ZipCode            string `json:"zip_code" binding:"omitempty,len=5,numeric"`
	City               string `json:"city"`
	County             string `json:"county"`
	IsPrimaryResidence bool   `json:"is_primary_residence"`
	IsOver65           bool   `json:"is_over_65"`
	IsVeteran          bool   `json:"is_veteran"`
	IsDisabled         bool   `json:"is_disabled"`
}

// Estimate handles POST /api/v1/affordability.
func (h *AffordabilityHandler) Estimate(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req AffordabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing affordability request", map[string]interface{}{
			"home_price": req.HomePrice,
			"state":      req.State,
		})
	}

	estimate, err := h.service.Estimate(c.Request.Context(), services.AffordabilityInput{
		HomePrice:          req.HomePrice,
		DownPayment:        req.DownPayment,
		LoanTermYears:      req.LoanTermYears,
		InterestRate:       req.InterestRate,
		AnnualIncome:       req.AnnualIncome,
		MonthlyDebts:       req.MonthlyDebts,
		State:              req.State,
		ZipCode:            req.ZipCode,
		City:               req.City,
		County:             req.County,
		IsPrimaryResidence: req.IsPrimaryResidence,
		IsOver65:           req.IsOver65,
		IsVeteran:          req.IsVeteran,
		IsDisabled:         req.IsDisabled,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidLoan) || errors.Is(err, services.ErrMissingState) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to compute affordability", err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
