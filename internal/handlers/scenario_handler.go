package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/homeward-labs/homeward/internal/errors"
	"github.com/homeward-labs/homeward/internal/middleware"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/services"
)

// UserIDHeader carries the authenticated user identity set by the upstream
// auth proxy. Authentication itself happens outside this service.
const UserIDHeader = "X-User-ID"

// ScenarioHandler handles saved-scenario requests.
type ScenarioHandler struct {
	service services.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler instance.
func NewScenarioHandler(service services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{
		service: service,
	}
}

// ScenarioRequest represents the body of the scenario save endpoint.
type ScenarioRequest struct {
	Name          string  `json:"name" binding:"required,max=120"`
	HomePrice     float64 `json:"home_price" binding:"required,gt=0"`
	DownPayment   float64 `json:"down_payment" binding:"gte=0"`
	LoanTermYears int     `json:"loan_term_years" binding:"required,gt=0,lte=50"`
	InterestRate  float64 `json:"interest_rate" binding:"gte=0,lte=30"`
	AnnualIncome  float64 `json:"annual_income" binding:"gte=0"`
	MonthlyDebts  float64 `json:"monthly_debts" binding:"gte=0"`

	State   string `json:"state" binding:"omitempty,len=2"`
	ZipCode string `json:"zip_code" binding:"omitempty,len=5,numeric"`
	County  string `json:"county"`

	MonthlyPayment    float64 `json:"monthly_payment" binding:"gte=0"`
	AnnualPropertyTax float64 `json:"annual_property_tax" binding:"gte=0"`
	AnnualInsurance   float64 `json:"annual_insurance" binding:"gte=0"`
	MonthlyMIP        float64 `json:"monthly_mip" binding:"gte=0"`
}

// ScenarioListResponse represents the response for the scenario list endpoint.
type ScenarioListResponse struct {
	Scenarios []models.Scenario `json:"scenarios"`
	Count     int               `json:"count"`
}

// Save handles POST /api/v1/scenarios.
func (h *ScenarioHandler) Save(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		apierrors.Unauthorized(c, "User identity is required")
		return
	}

	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Saving scenario", map[string]interface{}{
			"user_id": userID,
			"name":    req.Name,
		})
	}

	scenario := &models.Scenario{
		Name:              req.Name,
		HomePrice:         req.HomePrice,
		DownPayment:       req.DownPayment,
		LoanTermYears:     req.LoanTermYears,
		InterestRate:      req.InterestRate,
		AnnualIncome:      req.AnnualIncome,
		MonthlyDebts:      req.MonthlyDebts,
		State:             req.State,
		ZipCode:           req.ZipCode,
		County:            req.County,
		MonthlyPayment:    req.MonthlyPayment,
		AnnualPropertyTax: req.AnnualPropertyTax,
		AnnualInsurance:   req.AnnualInsurance,
		MonthlyMIP:        req.MonthlyMIP,
	}

	if err := h.service.Save(c.Request.Context(), userID, scenario); err != nil {
		apierrors.InternalServerError(c, "Failed to save scenario", err)
		return
	}

	c.JSON(http.StatusCreated, scenario)
}

// List handles GET /api/v1/scenarios.
func (h *ScenarioHandler) List(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		apierrors.Unauthorized(c, "User identity is required")
		return
	}

	scenarios, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list scenarios", err)
		return
	}

	c.JSON(http.StatusOK, ScenarioListResponse{
		Scenarios: scenarios,
		Count:     len(scenarios),
	})
}
