package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider registration and availability endpoints.
type ProviderHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(svc scheduling.SchedulingService, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Service: svc, Logger: logger}
}

// RegisterProviderHandler creates a new provider with an empty calendar.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var req models.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.RegisterProvider(c.Request.Context(), req.ID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": req.ID})
}

// PutAvailabilityHandler submits availability windows for a provider.
func (h *ProviderHandler) PutAvailabilityHandler(c *gin.Context) {
	var req models.PutAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.PutAvailability(c.Request.Context(), req.ID, req.Availability); err != nil {
		h.Logger.Warn("failed to put availability", zap.String("providerId", req.ID), zap.Error(err))
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully added your availability!"})
}

// GetAvailabilityHandler returns a provider's availability grid.
func (h *ProviderHandler) GetAvailabilityHandler(c *gin.Context) {
	id := c.Param("id")

	grid, err := h.Service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}
