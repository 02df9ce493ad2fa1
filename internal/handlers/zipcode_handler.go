package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/homeward-labs/homeward/internal/errors"
	"github.com/homeward-labs/homeward/internal/middleware"
	"github.com/homeward-labs/homeward/internal/services"
)

// ZipCodeHandler handles ZIP code resolution requests.
type ZipCodeHandler struct {
	service services.LocationService
}

// NewZipCodeHandler creates a new ZipCodeHandler instance.
func NewZipCodeHandler(service services.LocationService) *ZipCodeHandler {
	return &ZipCodeHandler{
		service: service,
	}
}

// Resolve handles GET /api/v1/zipcode?zip=.
// A provider timeout maps to 504, distinct from 404 for an unknown ZIP.
func (h *ZipCodeHandler) Resolve(c *gin.Context) {
	log := middleware.GetLogger(c)

	zip := c.Query("zip")

	if log != nil {
		log.Info("Processing ZIP resolution request", map[string]interface{}{
			"zip_code": zip,
		})
	}

	location, err := h.service.ResolveZip(c.Request.Context(), zip)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidZip):
			apierrors.BadRequest(c, "ZIP code must be exactly 5 digits", nil)
		case errors.Is(err, services.ErrZipNotFound):
			apierrors.NotFound(c, "No location found for this ZIP code")
		case errors.Is(err, services.ErrGeocodeTimeout):
			apierrors.GatewayTimeout(c, "Geocoding providers timed out")
		default:
			apierrors.InternalServerError(c, "Failed to resolve ZIP code", err)
		}
		return
	}

	c.JSON(http.StatusOK, location)
}
