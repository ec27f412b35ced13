package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking and confirmation endpoints.
type AppointmentHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(svc scheduling.SchedulingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// BookAppointmentHandler books an open slot and returns the confirmation
// number the client must use to confirm within the confirmation window.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	confirmationNumber, err := h.Service.Book(c.Request.Context(), input)
	if err != nil {
		h.Logger.Warn("failed to book appointment",
			zap.String("providerId", input.ProviderID), zap.Error(err))
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Appointment request completed! Be sure to confirm your appointment with the confirmation number",
		"confirmationNumber": confirmationNumber,
	})
}

// ConfirmAppointmentHandler finalizes a pending appointment.
func (h *AppointmentHandler) ConfirmAppointmentHandler(c *gin.Context) {
	var input models.ConfirmationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.Confirm(c.Request.Context(), input.ConfirmationNumber); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment confirmed!"})
}
