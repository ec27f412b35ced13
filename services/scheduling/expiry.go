package scheduling

import (
	"context"
	"sync"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// ExpiryScheduler owns the registry of deferred-release timers, keyed by
// confirmation number. Timers are process-local and do not survive a restart;
// the startup sweep rebuilds the registry from the Appointments collection.
type ExpiryScheduler struct {
	release func(confirmationNumber string)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewExpiryScheduler returns a scheduler invoking release when a timer fires.
func NewExpiryScheduler(release func(confirmationNumber string)) *ExpiryScheduler {
	return &ExpiryScheduler{
		release: release,
		timers:  make(map[string]*time.Timer),
	}
}

// Schedule arms a one-shot release for the confirmation number after d,
// replacing any timer already registered for it. A non-positive d fires
// immediately.
func (e *ExpiryScheduler) Schedule(confirmationNumber string, d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if t, ok := e.timers[confirmationNumber]; ok {
		t.Stop()
	}
	e.timers[confirmationNumber] = time.AfterFunc(d, func() {
		e.mu.Lock()
		delete(e.timers, confirmationNumber)
		stopped := e.stopped
		e.mu.Unlock()
		if !stopped {
			e.release(confirmationNumber)
		}
	})
}

// Cancel drops the timer for the confirmation number, if any.
func (e *ExpiryScheduler) Cancel(confirmationNumber string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.timers[confirmationNumber]; ok {
		t.Stop()
		delete(e.timers, confirmationNumber)
	}
}

// Stop cancels every registered timer and rejects further scheduling.
func (e *ExpiryScheduler) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	for number, t := range e.timers {
		t.Stop()
		delete(e.timers, number)
	}
}

// pendingTimers reports how many timers are currently registered.
func (e *ExpiryScheduler) pendingTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// releaseExpired is the deferred-release path, invoked when a timer fires. It
// re-checks the document, so a stale fire after the appointment was confirmed
// or already swept away is a no-op.
func (s *DefaultSchedulingService) releaseExpired(confirmationNumber string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	logger := utils.GetLogger()
	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		logger.Warn("expiry release: failed to fetch document",
			zap.String("confirmationNumber", confirmationNumber), zap.Error(err))
		return
	}
	appt := doc.Appointments[confirmationNumber]
	if appt == nil || appt.Confirmed {
		return
	}

	releaseSlot(doc, appt)
	delete(doc.Appointments, confirmationNumber)
	if err := s.Store.Write(ctx, doc); err != nil {
		logger.Warn("expiry release: failed to write document",
			zap.String("confirmationNumber", confirmationNumber), zap.Error(err))
		return
	}
	s.invalidateAvailability(ctx, appt.ProviderID)

	logger.Info("released unconfirmed appointment",
		zap.String("confirmationNumber", confirmationNumber),
		zap.String("providerId", appt.ProviderID),
		zap.String("date", appt.Date),
		zap.String("timeSlot", appt.TimeSlot))
}

// Sweep releases every pending appointment whose confirmation window has
// elapsed and re-arms timers for the rest, reconstructing the deferred
// releases lost to a restart. Idempotent: repeated runs, or a timer firing
// after the sweep already removed its record, converge to the same state.
func (s *DefaultSchedulingService) Sweep(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}

	var expired []*models.Appointment
	for _, appt := range doc.Appointments {
		if appt.Confirmed {
			continue
		}
		if now.Sub(appt.BookingTime) > s.ConfirmationWindow {
			expired = append(expired, appt)
		}
	}

	for _, appt := range expired {
		releaseSlot(doc, appt)
		delete(doc.Appointments, appt.ConfirmationNumber)
		s.expiry.Cancel(appt.ConfirmationNumber)
	}
	if len(expired) > 0 {
		if err := s.Store.Write(ctx, doc); err != nil {
			return err
		}
		for _, appt := range expired {
			s.invalidateAvailability(ctx, appt.ProviderID)
		}
	}

	// Re-arm a deferred release for every appointment still pending.
	for number, appt := range doc.Appointments {
		if appt.Confirmed {
			continue
		}
		s.expiry.Schedule(number, appt.BookingTime.Add(s.ConfirmationWindow).Sub(now))
	}

	utils.GetLogger().Info("expiry sweep complete",
		zap.Int("released", len(expired)),
		zap.Int("pending", s.expiry.pendingTimers()))
	return nil
}

// releaseSlot frees the slot an appointment was holding. Missing provider or
// slot entries are skipped; the appointment record is the caller's to delete.
func releaseSlot(doc *models.Document, appt *models.Appointment) {
	provider := doc.Providers[appt.ProviderID]
	if provider == nil {
		return
	}
	if slot := provider.Availability[appt.Date][appt.TimeSlot]; slot != nil {
		slot.Booked = false
	}
}
