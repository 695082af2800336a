package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CampCoding/elmezan-backend/internal/pos"
)

// fail writes the error envelope with the status the taxonomy maps to.
func fail(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pos.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pos.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pos.ErrInsufficientStock), errors.Is(err, pos.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, pos.ErrLocked), errors.Is(err, pos.ErrLockedPrinted):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"success": false, "message": message, "error": err.Error()})
}

func pathUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}
