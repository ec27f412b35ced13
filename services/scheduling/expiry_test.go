package scheduling

import (
	"context"
	"testing"
	"time"

	"slotbook/database/store"
	"slotbook/models"

	"github.com/stretchr/testify/require"
)

// realClockService returns a service on the real clock with availability far
// enough out to clear the lead-time policy. Returns the slot's date key.
func realClockService(t *testing.T, window time.Duration) (*DefaultSchedulingService, string) {
	t.Helper()
	s := newTestService(t, window, nil)
	mustRegister(t, s, "P1")
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	mustPutAvailability(t, s, "P1", models.AvailabilityWindow{
		Date: date, StartTime: "08:00", EndTime: "08:30",
	})
	return s, date
}

func TestDeferredReleaseFreesSlot(t *testing.T) {
	s, date := realClockService(t, 25*time.Millisecond)

	number, err := s.Book(context.Background(), models.BookingInput{
		ProviderID: "P1", Date: date, TimeSlot: "08:00", ClientID: "C1",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		doc, err := s.Store.Fetch(context.Background())
		if err != nil {
			return false
		}
		_, exists := doc.Appointments[number]
		return !exists && !doc.Providers["P1"].Availability[date]["08:00"].Booked
	}, 2*time.Second, 10*time.Millisecond, "unconfirmed appointment must be released after the window")

	// The freed slot is bookable again.
	_, err = s.Book(context.Background(), models.BookingInput{
		ProviderID: "P1", Date: date, TimeSlot: "08:00", ClientID: "C2",
	})
	require.NoError(t, err)
}

func TestDeferredReleaseSkipsConfirmed(t *testing.T) {
	s, date := realClockService(t, time.Hour)

	number, err := s.Book(context.Background(), models.BookingInput{
		ProviderID: "P1", Date: date, TimeSlot: "08:00", ClientID: "C1",
	})
	require.NoError(t, err)
	require.NoError(t, s.Confirm(context.Background(), number))

	// A stale fire after confirmation must not touch the record.
	s.releaseExpired(number)

	doc, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Appointments[number])
	require.True(t, doc.Appointments[number].Confirmed)
	require.True(t, doc.Providers["P1"].Availability[date]["08:00"].Booked)
}

func TestReleaseUnknownNumberIsNoop(t *testing.T) {
	s, date := realClockService(t, time.Hour)

	_, err := s.Book(context.Background(), models.BookingInput{
		ProviderID: "P1", Date: date, TimeSlot: "08:00", ClientID: "C1",
	})
	require.NoError(t, err)

	before, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)

	s.releaseExpired("never-issued")

	after, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestSweepReleasesStalePending(t *testing.T) {
	clk := newFakeClock(time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local))
	s := newTestService(t, 30*time.Minute, clk)
	mustRegister(t, s, "P1")
	mustPutAvailability(t, s, "P1", models.AvailabilityWindow{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "08:30",
	})

	number, err := s.Book(context.Background(), bookingFor("08:15"))
	require.NoError(t, err)

	clk.Advance(31 * time.Minute)
	require.NoError(t, s.Sweep(context.Background()))

	doc, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)
	require.NotContains(t, doc.Appointments, number)
	require.False(t, doc.Providers["P1"].Availability["2024-01-01"]["08:15"].Booked)

	// The slot is open for booking again.
	_, err = s.Book(context.Background(), bookingFor("08:15"))
	require.NoError(t, err)
}

func TestSweepBoundary(t *testing.T) {
	clk := newFakeClock(time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local))
	s := newTestService(t, 30*time.Minute, clk)
	mustRegister(t, s, "P1")
	mustPutAvailability(t, s, "P1", models.AvailabilityWindow{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "08:30",
	})

	number, err := s.Book(context.Background(), bookingFor("08:15"))
	require.NoError(t, err)

	// Exactly at the window the appointment is still held.
	clk.Advance(30 * time.Minute)
	require.NoError(t, s.Sweep(context.Background()))

	doc, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)
	require.Contains(t, doc.Appointments, number)
}

func TestSweepIdempotent(t *testing.T) {
	clk := newFakeClock(time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local))
	s := newTestService(t, 30*time.Minute, clk)
	mustRegister(t, s, "P1")
	mustPutAvailability(t, s, "P1", models.AvailabilityWindow{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "09:00",
	})

	// One stale pending, one confirmed, one fresh pending.
	stale, err := s.Book(context.Background(), bookingFor("08:00"))
	require.NoError(t, err)
	confirmed, err := s.Book(context.Background(), bookingFor("08:15"))
	require.NoError(t, err)
	require.NoError(t, s.Confirm(context.Background(), confirmed))

	clk.Advance(31 * time.Minute)
	fresh, err := s.Book(context.Background(), bookingFor("08:30"))
	require.NoError(t, err)

	require.NoError(t, s.Sweep(context.Background()))
	first, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Sweep(context.Background()))
	second, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second, "running the sweep twice must change nothing")
	require.NotContains(t, second.Appointments, stale)
	require.Contains(t, second.Appointments, confirmed)
	require.Contains(t, second.Appointments, fresh)
	require.True(t, second.Appointments[confirmed].Confirmed)
	require.True(t, second.Providers["P1"].Availability["2024-01-01"]["08:15"].Booked)
	require.True(t, second.Providers["P1"].Availability["2024-01-01"]["08:30"].Booked)
	require.False(t, second.Providers["P1"].Availability["2024-01-01"]["08:00"].Booked)
}

func TestSweepRearmsTimersAfterRestart(t *testing.T) {
	shared := store.NewMemoryStore()
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	// First process books and dies without releasing.
	first := NewDefaultSchedulingService(shared, time.Hour)
	require.NoError(t, first.RegisterProvider(context.Background(), "P1"))
	require.NoError(t, first.PutAvailability(context.Background(), "P1", []models.AvailabilityWindow{
		{Date: date, StartTime: "08:00", EndTime: "08:30"},
	}))
	number, err := first.Book(context.Background(), models.BookingInput{
		ProviderID: "P1", Date: date, TimeSlot: "08:00", ClientID: "C1",
	})
	require.NoError(t, err)
	first.Close()

	// Second process sweeps at startup with a short window; the pending
	// appointment is within the window, so it gets a rebuilt timer.
	second := NewDefaultSchedulingService(shared, 50*time.Millisecond)
	t.Cleanup(second.Close)
	require.NoError(t, second.Sweep(context.Background()))
	require.Equal(t, 1, second.expiry.pendingTimers())

	require.Eventually(t, func() bool {
		doc, err := second.Store.Fetch(context.Background())
		if err != nil {
			return false
		}
		_, exists := doc.Appointments[number]
		return !exists && !doc.Providers["P1"].Availability[date]["08:00"].Booked
	}, 2*time.Second, 10*time.Millisecond, "rebuilt timer must release the appointment")
}

func TestStaleTimerAfterSweepIsNoop(t *testing.T) {
	clk := newFakeClock(time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local))
	s := newTestService(t, 30*time.Minute, clk)
	mustRegister(t, s, "P1")
	mustPutAvailability(t, s, "P1", models.AvailabilityWindow{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "08:30",
	})

	number, err := s.Book(context.Background(), bookingFor("08:15"))
	require.NoError(t, err)

	clk.Advance(31 * time.Minute)
	require.NoError(t, s.Sweep(context.Background()))

	after, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)

	// The deferred task firing after the sweep already removed the record
	// must not error or double-free.
	s.releaseExpired(number)

	final, err := s.Store.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, after, final)
}
