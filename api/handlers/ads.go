package handlers

import (
	"net/http"

	"admarket-api/internal/listing"
	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdsHandler handles the ad listing endpoints
type AdsHandler struct {
	service listing.ListingService
	logger  *logger.Logger
}

// NewAdsHandler creates a new AdsHandler instance
func NewAdsHandler(service listing.ListingService, logger *logger.Logger) *AdsHandler {
	return &AdsHandler{
		service: service,
		logger:  logger,
	}
}

// List returns all active ads with their authors, newest first
func (h *AdsHandler) List(c *gin.Context) {
	ads, err := h.service.ListAds()
	if err != nil {
		h.logger.Error("Failed to fetch ads", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ads"})
		return
	}

	c.JSON(http.StatusOK, ads)
}

// Create validates and persists a new ad. The author is identified by a
// client-asserted telegram ID; the trust boundary is documented, not
// enforced here.
func (h *AdsHandler) Create(c *gin.Context) {
	var req listing.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ad, err := h.service.CreateAd(req)
	if err != nil {
		if verr, ok := listing.IsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		h.logger.Error("Failed to create ad", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ad"})
		return
	}

	c.JSON(http.StatusCreated, ad)
}
