package handlers

import (
	"net/http"

	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Store || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
