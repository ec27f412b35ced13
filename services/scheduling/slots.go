package scheduling

import (
	"context"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// slotWindow is a validated availability window: a half-open [start, end)
// range within a single calendar day.
type slotWindow struct {
	date  string
	start time.Time
	end   time.Time
}

// parseWindow validates one submitted window. End must be strictly after
// start, which also rejects windows that would span midnight; multi-day
// windows cannot be expressed in this shape at all.
func parseWindow(w models.AvailabilityWindow) (slotWindow, error) {
	day, err := time.ParseInLocation(dateLayout, w.Date, time.Local)
	if err != nil {
		return slotWindow{}, newValidationError("invalid date %q: expected %s", w.Date, dateLayout)
	}
	start, err := time.Parse(timeLayout, w.StartTime)
	if err != nil {
		return slotWindow{}, newValidationError("invalid start time %q: expected %s", w.StartTime, timeLayout)
	}
	end, err := time.Parse(timeLayout, w.EndTime)
	if err != nil {
		return slotWindow{}, newValidationError("invalid end time %q: expected %s", w.EndTime, timeLayout)
	}
	if !end.After(start) {
		return slotWindow{}, newValidationError("window end %q must be after start %q", w.EndTime, w.StartTime)
	}
	return slotWindow{
		date:  w.Date,
		start: day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
		end:   day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute),
	}, nil
}

// mergeSlots expands the window into consecutive 15-minute keys and inserts
// each as an unbooked slot, skipping keys that already exist. Re-submitting an
// overlapping window therefore never clobbers an existing booking.
func mergeSlots(provider *models.Provider, w slotWindow) int {
	if provider.Availability == nil {
		provider.Availability = make(map[string]map[string]*models.Slot)
	}
	day := provider.Availability[w.date]
	if day == nil {
		day = make(map[string]*models.Slot)
		provider.Availability[w.date] = day
	}

	added := 0
	for t := w.start; t.Before(w.end); t = t.Add(SlotInterval) {
		key := t.Format(timeLayout)
		if _, exists := day[key]; exists {
			continue
		}
		day[key] = &models.Slot{}
		added++
	}
	return added
}

// PutAvailability validates every window before touching the document, so a
// bad window in the list leaves the grid untouched.
func (s *DefaultSchedulingService) PutAvailability(ctx context.Context, providerID string, windows []models.AvailabilityWindow) error {
	parsed := make([]slotWindow, 0, len(windows))
	for _, w := range windows {
		sw, err := parseWindow(w)
		if err != nil {
			return err
		}
		parsed = append(parsed, sw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}
	provider := doc.Providers[providerID]
	if provider == nil {
		return newNotFoundError("provider %q not found", providerID)
	}

	added := 0
	for _, sw := range parsed {
		added += mergeSlots(provider, sw)
	}
	if err := s.Store.Write(ctx, doc); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, providerID)

	utils.GetLogger().Info("updated provider availability",
		zap.String("providerId", providerID),
		zap.Int("windows", len(parsed)),
		zap.Int("slotsAdded", added))
	return nil
}
