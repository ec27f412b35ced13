package models

// BookingInput is the request payload for booking a slot.
type BookingInput struct {
	ProviderID string `json:"providerId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	TimeSlot   string `json:"timeSlot" binding:"required"`
	ClientID   string `json:"clientId" binding:"required"`
}

// ConfirmationInput is the request payload for confirming an appointment.
type ConfirmationInput struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
}

// PutAvailabilityRequest is the request payload for submitting availability
// windows for a provider.
type PutAvailabilityRequest struct {
	ID           string               `json:"id" binding:"required"`
	Availability []AvailabilityWindow `json:"availability" binding:"required"`
}

// RegisterProviderRequest is the request payload for creating a provider.
type RegisterProviderRequest struct {
	ID string `json:"id" binding:"required"`
}
