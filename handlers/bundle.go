package handlers

// HandlerBundle aggregates the handlers consumed during route registration.
type HandlerBundle struct {
	Provider    *ProviderHandler
	Appointment *AppointmentHandler
}
