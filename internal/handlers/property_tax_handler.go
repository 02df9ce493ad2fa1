package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/homeward-labs/homeward/internal/errors"
	"github.com/homeward-labs/homeward/internal/middleware"
	"github.com/homeward-labs/homeward/internal/models"
	"github.com/homeward-labs/homeward/internal/services"
)

// PropertyTaxHandler handles property-tax estimation requests.
type PropertyTaxHandler struct {
	service services.TaxService
}

// NewPropertyTaxHandler creates a new PropertyTaxHandler instance.
func NewPropertyTaxHandler(service services.TaxService) *PropertyTaxHandler {
	return &PropertyTaxHandler{
		service: service,
	}
}

// PropertyTaxRequest represents the body of the property-tax endpoint. Field
// names follow the estimation collaborator's camelCase wire shape, which the
// returned PropertyTaxRecord also uses. A missing homeValue is treated as 0.
type PropertyTaxRequest struct {
	State              string  `json:"state" binding:"required,len=2"`
	ZipCode            string  `json:"zipCode" binding:"omitempty,len=5,numeric"`
	City               string  `json:"city"`
	County             string  `json:"county"`
	IsPrimaryResidence bool    `json:"isPrimaryResidence"`
	IsOver65           bool    `json:"isOver65"`
	IsVeteran          bool    `json:"isVeteran"`
	IsDisabled         bool    `json:"isDisabled"`
	HomeValue          float64 `json:"homeValue" binding:"omitempty,gte=0"`
}

// Estimate handles POST /api/v1/property-tax.
// It resolves an estimate through the cache; external failures degrade to the
// formula fallback and still return 200.
func (h *PropertyTaxHandler) Estimate(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req PropertyTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing property-tax request", map[string]interface{}{
			"state":    req.State,
			"zip_code": req.ZipCode,
		})
	}

	record, err := h.service.Resolve(c.Request.Context(), models.LocationQuery{
		State:              req.State,
		ZipCode:            req.ZipCode,
		City:               req.City,
		County:             req.County,
		IsPrimaryResidence: req.IsPrimaryResidence,
		IsOver65:           req.IsOver65,
		IsVeteran:          req.IsVeteran,
		IsDisabled:         req.IsDisabled,
		HomeValue:          req.HomeValue,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingState) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to resolve property tax", err)
		return
	}

	c.JSON(http.StatusOK, record)
}
