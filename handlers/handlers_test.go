package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"slotbook/database/store"
	"slotbook/handlers"
	"slotbook/routes"
	"slotbook/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type testAPI struct {
	router *gin.Engine
	clock  *fakeClock
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := &fakeClock{t: time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local)}
	svc := scheduling.NewDefaultSchedulingService(store.NewMemoryStore(), time.Hour)
	svc.Clock = clk.Now
	t.Cleanup(svc.Close)

	logger := zap.NewNop()
	router := gin.New()
	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Provider:    handlers.NewProviderHandler(svc, logger),
		Appointment: handlers.NewAppointmentHandler(svc, logger),
	})
	return &testAPI{router: router, clock: clk}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *testAPI) registerProvider(t *testing.T, id string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/providers", gin.H{"id": id})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (a *testAPI) putAvailability(t *testing.T, id, date, start, end string) {
	t.Helper()
	w := a.do(t, http.MethodPut, "/api/providers/availability", gin.H{
		"id": id,
		"availability": []gin.H{{"date": date, "startTime": start, "endTime": end}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBookingLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.registerProvider(t, "P1")
	api.putAvailability(t, "P1", "2024-01-01", "08:00", "08:30")

	// The grid has exactly the two generated slots, both free.
	w := api.do(t, http.MethodGet, "/api/providers/availability/P1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grid map[string]map[string]struct {
		Booked bool `json:"booked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	require.Len(t, grid["2024-01-01"], 2)
	require.False(t, grid["2024-01-01"]["08:15"].Booked)

	// Book 08:15 more than 24h out.
	w = api.do(t, http.MethodPost, "/api/appointments", gin.H{
		"providerId": "P1", "date": "2024-01-01", "timeSlot": "08:15", "clientId": "C1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	number, _ := decodeBody(t, w)["confirmationNumber"].(string)
	require.NotEmpty(t, number)

	w = api.do(t, http.MethodGet, "/api/providers/availability/P1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	require.True(t, grid["2024-01-01"]["08:15"].Booked)

	// Double-booking the slot conflicts.
	w = api.do(t, http.MethodPost, "/api/appointments", gin.H{
		"providerId": "P1", "date": "2024-01-01", "timeSlot": "08:15", "clientId": "C2",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Confirm, then confirm again.
	w = api.do(t, http.MethodPost, "/api/appointments/confirm", gin.H{"confirmationNumber": number})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(t, http.MethodPost, "/api/appointments/confirm", gin.H{"confirmationNumber": number})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingFailureStatuses(t *testing.T) {
	api := newTestAPI(t)
	api.registerProvider(t, "P1")
	api.putAvailability(t, "P1", "2024-01-01", "08:00", "08:30")

	// Unknown provider.
	w := api.do(t, http.MethodPost, "/api/appointments", gin.H{
		"providerId": "ghost", "date": "2024-01-01", "timeSlot": "08:15", "clientId": "C1",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Slot never generated.
	w = api.do(t, http.MethodPost, "/api/appointments", gin.H{
		"providerId": "P1", "date": "2024-01-01", "timeSlot": "12:00", "clientId": "C1",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Lead-time violation.
	api.clock.Set(time.Date(2024, 1, 1, 7, 0, 0, 0, time.Local))
	w = api.do(t, http.MethodPost, "/api/appointments", gin.H{
		"providerId": "P1", "date": "2024-01-01", "timeSlot": "08:15", "clientId": "C1",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown confirmation number.
	w = api.do(t, http.MethodPost, "/api/appointments/confirm", gin.H{"confirmationNumber": "nope"})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Missing payload fields.
	w = api.do(t, http.MethodPost, "/api/appointments", gin.H{"providerId": "P1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityFailureStatuses(t *testing.T) {
	api := newTestAPI(t)
	api.registerProvider(t, "P1")

	// Unknown provider grid.
	w := api.do(t, http.MethodGet, "/api/providers/availability/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Window spanning midnight is rejected.
	w = api.do(t, http.MethodPut, "/api/providers/availability", gin.H{
		"id": "P1",
		"availability": []gin.H{{"date": "2024-01-01", "startTime": "23:00", "endTime": "01:00"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown provider submission.
	w = api.do(t, http.MethodPut, "/api/providers/availability", gin.H{
		"id": "ghost",
		"availability": []gin.H{{"date": "2024-01-01", "startTime": "08:00", "endTime": "09:00"}},
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Duplicate registration conflicts.
	w = api.do(t, http.MethodPost, "/api/providers", gin.H{"id": "P1"})
	require.Equal(t, http.StatusConflict, w.Code)
}
