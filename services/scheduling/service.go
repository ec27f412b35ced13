package scheduling

import (
	"context"
	"sync"
	"time"

	"slotbook/database/store"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

const (
	// SlotInterval is the fixed granularity of the availability grid.
	SlotInterval = 15 * time.Minute

	// DefaultLeadTime is the minimum gap between booking time and the
	// appointment instant.
	DefaultLeadTime = 24 * time.Hour

	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	availabilityCacheTTL = time.Minute
)

// DefaultSchedulingService implements SchedulingService over a whole-document
// Store. The store offers no concurrency control, so every fetch-mutate-write
// cycle serializes on a single mutex; concurrent callers cannot silently
// overwrite each other's updates.
type DefaultSchedulingService struct {
	Store store.Store

	// Cache, when set, serves GetAvailability reads and is invalidated by
	// every mutation of a provider's grid.
	Cache AvailabilityCache

	// Reminders, when set, is handed every confirmed appointment.
	Reminders ReminderScheduler

	// ConfirmationWindow is how long a pending appointment is held before
	// its slot is released. The deferred timers and the sweep share it.
	ConfirmationWindow time.Duration

	// LeadTime overrides DefaultLeadTime; zero means the default.
	LeadTime time.Duration

	// Clock overrides time.Now, for tests.
	Clock func() time.Time

	mu     sync.Mutex
	expiry *ExpiryScheduler
}

// NewDefaultSchedulingService wires a service with its expiry scheduler.
func NewDefaultSchedulingService(st store.Store, confirmationWindow time.Duration) *DefaultSchedulingService {
	s := &DefaultSchedulingService{
		Store:              st,
		ConfirmationWindow: confirmationWindow,
		LeadTime:           DefaultLeadTime,
	}
	s.expiry = NewExpiryScheduler(s.releaseExpired)
	return s
}

// Close stops all outstanding expiry timers.
func (s *DefaultSchedulingService) Close() {
	s.expiry.Stop()
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) leadTime() time.Duration {
	if s.LeadTime > 0 {
		return s.LeadTime
	}
	return DefaultLeadTime
}

// slotInstant combines a date key and a time-slot key into the appointment
// instant, in server-local time.
func slotInstant(date, timeSlot string) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeSlot, time.Local)
}

// RegisterProvider creates an empty provider record.
func (s *DefaultSchedulingService) RegisterProvider(ctx context.Context, providerID string) error {
	if providerID == "" {
		return newValidationError("provider id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}
	if _, exists := doc.Providers[providerID]; exists {
		return newConflictError("provider %q already registered", providerID)
	}
	doc.Providers[providerID] = &models.Provider{
		ID:           providerID,
		Availability: make(map[string]map[string]*models.Slot),
	}
	if err := s.Store.Write(ctx, doc); err != nil {
		return err
	}

	utils.GetLogger().Info("registered provider", zap.String("providerId", providerID))
	return nil
}

// GetAvailability returns the provider's grid, serving from the cache when
// possible.
func (s *DefaultSchedulingService) GetAvailability(ctx context.Context, providerID string) (map[string]map[string]*models.Slot, error) {
	if grid, ok := s.cachedAvailability(ctx, providerID); ok {
		return grid, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	provider := doc.Providers[providerID]
	if provider == nil {
		return nil, newNotFoundError("provider %q not found", providerID)
	}
	grid := provider.Availability
	if grid == nil {
		grid = make(map[string]map[string]*models.Slot)
	}
	s.cacheAvailability(ctx, providerID, grid)
	return grid, nil
}
