package handlers

import (
	"net/http"

	"slotbook/services/scheduling"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// respondDomainError maps a scheduling error to its HTTP status. Errors that
// are not domain failures are transient store problems and surface as 500s.
func respondDomainError(c *gin.Context, err error) {
	kind, ok := scheduling.KindOf(err)
	if !ok {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case scheduling.KindValidation:
		status = http.StatusBadRequest
	case scheduling.KindNotFound:
		status = http.StatusNotFound
	case scheduling.KindConflict:
		status = http.StatusConflict
	case scheduling.KindPolicy:
		status = http.StatusUnprocessableEntity
	}
	utils.JSONError(c, status, err.Error(), "")
}
