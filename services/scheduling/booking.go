package scheduling

import (
	"context"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book claims an open slot for the client and creates a pending appointment.
// Slot capacity and the appointment record change together in one write.
func (s *DefaultSchedulingService) Book(ctx context.Context, input models.BookingInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return "", err
	}

	provider := doc.Providers[input.ProviderID]
	if provider == nil {
		return "", newNotFoundError("provider %q not found", input.ProviderID)
	}
	day := provider.Availability[input.Date]
	if day == nil {
		return "", newNotFoundError("provider %q has no availability on %s", input.ProviderID, input.Date)
	}
	slot := day[input.TimeSlot]
	if slot == nil {
		return "", newNotFoundError("provider %q has no availability at %s on %s", input.ProviderID, input.TimeSlot, input.Date)
	}
	if slot.Booked {
		return "", newConflictError("provider %q already has an appointment at %s on %s", input.ProviderID, input.TimeSlot, input.Date)
	}

	instant, err := slotInstant(input.Date, input.TimeSlot)
	if err != nil {
		// Slot keys are generated from validated windows, so this only
		// triggers on hand-edited documents.
		return "", newValidationError("malformed slot key %s %s", input.Date, input.TimeSlot)
	}
	if instant.Sub(now) < s.leadTime() {
		return "", newPolicyError("appointments must be booked at least %s in advance", s.leadTime())
	}

	confirmationNumber := uuid.New().String()
	doc.Appointments[confirmationNumber] = &models.Appointment{
		ConfirmationNumber: confirmationNumber,
		ClientID:           input.ClientID,
		ProviderID:         input.ProviderID,
		Date:               input.Date,
		TimeSlot:           input.TimeSlot,
		BookingTime:        now,
	}
	slot.Booked = true

	if err := s.Store.Write(ctx, doc); err != nil {
		return "", err
	}
	s.invalidateAvailability(ctx, input.ProviderID)
	s.expiry.Schedule(confirmationNumber, s.ConfirmationWindow)

	utils.GetLogger().Info("booked appointment",
		zap.String("confirmationNumber", confirmationNumber),
		zap.String("providerId", input.ProviderID),
		zap.String("clientId", input.ClientID),
		zap.String("date", input.Date),
		zap.String("timeSlot", input.TimeSlot))
	return confirmationNumber, nil
}

// Confirm finalizes a pending appointment. Confirmed appointments are
// terminal and are never touched by expiry.
func (s *DefaultSchedulingService) Confirm(ctx context.Context, confirmationNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}
	appt := doc.Appointments[confirmationNumber]
	if appt == nil {
		return newNotFoundError("no appointment found for %q", confirmationNumber)
	}
	if appt.Confirmed {
		return newConflictError("appointment %q already confirmed", confirmationNumber)
	}

	s.expiry.Cancel(confirmationNumber)

	appt.Confirmed = true
	if err := s.Store.Write(ctx, doc); err != nil {
		return err
	}

	s.scheduleReminder(ctx, appt)

	utils.GetLogger().Info("confirmed appointment",
		zap.String("confirmationNumber", confirmationNumber),
		zap.String("providerId", appt.ProviderID))
	return nil
}

// scheduleReminder enqueues a reminder an hour before the appointment. A
// failure to enqueue never fails the confirmation.
func (s *DefaultSchedulingService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	instant, err := slotInstant(appt.Date, appt.TimeSlot)
	if err != nil {
		return
	}
	fireAt := instant.Add(-time.Hour)
	if fireAt.Before(s.now()) {
		fireAt = s.now()
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule appointment reminder",
			zap.String("confirmationNumber", appt.ConfirmationNumber), zap.Error(err))
	}
}
