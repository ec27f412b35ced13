package models

// ReminderPayload is the task payload for an appointment reminder queued when
// a booking is confirmed.
type ReminderPayload struct {
	ConfirmationNumber string `json:"confirmationNumber"`
	ClientID           string `json:"clientId"`
	ProviderID         string `json:"providerId"`
	Date               string `json:"date"`
	TimeSlot           string `json:"timeSlot"`
}
