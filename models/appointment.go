package models

import "time"

// Appointment records a client's claim on a provider slot. It is created
// pending; confirmation is terminal, and a pending appointment that outlives
// the confirmation window is deleted and its slot released.
type Appointment struct {
	ConfirmationNumber string    `bson:"confirmationNumber" json:"confirmationNumber"`
	Confirmed          bool      `bson:"confirmed" json:"confirmed"`
	ClientID           string    `bson:"clientId" json:"clientId"`
	ProviderID         string    `bson:"providerId" json:"providerId"`
	Date               string    `bson:"date" json:"date"`
	TimeSlot           string    `bson:"timeSlot" json:"timeSlot"`
	BookingTime        time.Time `bson:"bookingTime" json:"bookingTime"`
}
