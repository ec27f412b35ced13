package routes

import (
	"time"

	"slotbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers provider management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("", hb.Provider.RegisterProviderHandler)
		api.PUT("/availability", hb.Provider.PutAvailabilityHandler)
		api.GET("/availability/:id", hb.Provider.GetAvailabilityHandler)
	}
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("", hb.Appointment.BookAppointmentHandler)
		api.POST("/confirm", hb.Appointment.ConfirmAppointmentHandler)
	}
}

// RegisterHealthRoute registers the health snapshot endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
