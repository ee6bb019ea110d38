package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offerlens/backend/internal/domain"
	"github.com/offerlens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "offerlens-backend",
		"version":       "1.0.0",
		"sourcesLoaded": h.catalog.SourceCount(),
	})
}

// Suggest returns ranked, categorized suggestions for a query keystroke.
// The no-data and no-matches states travel as flags in the body: every
// keystroke fully supersedes the previous one, so this is a 200 either way
// and the client decides on messaging.
func (h *Handler) Suggest(c *gin.Context) {
	result := h.catalog.Suggest(c.Query("q"))
	c.JSON(http.StatusOK, result)
}

// Instruments returns the full canonical registry grouped by category
func (h *Handler) Instruments(c *gin.Context) {
	groups := h.catalog.Instruments()
	if groups == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Offers returns the deduplicated per-source offer list for a selected
// instrument
func (h *Handler) Offers(c *gin.Context) {
	category, err := domain.ParseCategory(c.DefaultQuery("category", string(domain.CategoryCredit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	wrappers, err := h.catalog.Offers(c.Query("instrument"), category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "instrument is required"})
		case errors.Is(err, domain.ErrNoData):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data available"})
		case errors.Is(err, domain.ErrNoMatch):
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching cards found"})
		case errors.Is(err, domain.ErrNoOffers):
			c.JSON(http.StatusNotFound, gin.H{"error": "no offer available for this card"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": wrappers})
}

// Reload re-fetches all source tables and rebuilds the registry
func (h *Handler) Reload(c *gin.Context) {
	err := h.catalog.Reload(c.Request.Context())

	failures := gin.H{}
	for name, loadErr := range h.catalog.LoadErrors() {
		failures[name] = loadErr.Error()
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":    "no data available",
			"failures": failures,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sourcesLoaded": h.catalog.SourceCount(),
		"failures":      failures,
	})
}
