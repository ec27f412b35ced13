package scheduling

import (
	"context"
	"time"

	"slotbook/models"
)

// SchedulingService exposes the appointment engine consumed by the transport
// layer.
type SchedulingService interface {
	// RegisterProvider creates an empty provider record.
	RegisterProvider(ctx context.Context, providerID string) error

	// PutAvailability expands the submitted windows into 15-minute slots and
	// merges them into the provider's grid. Existing slots are never altered.
	PutAvailability(ctx context.Context, providerID string, windows []models.AvailabilityWindow) error

	// GetAvailability returns the provider's grid: date -> time slot -> slot.
	GetAvailability(ctx context.Context, providerID string) (map[string]map[string]*models.Slot, error)

	// Book claims an open slot and creates a pending appointment, returning
	// its confirmation number. The appointment expires unless confirmed
	// within the confirmation window.
	Book(ctx context.Context, input models.BookingInput) (string, error)

	// Confirm marks a pending appointment confirmed, a terminal state.
	Confirm(ctx context.Context, confirmationNumber string) error

	// Sweep releases pending appointments whose confirmation window elapsed
	// and re-arms expiry timers for the rest. Run at startup before the
	// server accepts requests.
	Sweep(ctx context.Context) error
}

// ReminderScheduler enqueues a reminder for a confirmed appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment, fireAt time.Time) error
}
