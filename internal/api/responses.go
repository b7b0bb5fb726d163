package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gymcore/internal/apperr"
	"gymcore/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
	Code  string `json:"code,omitempty" example:"room_class_conflict"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// StatusFor maps a business failure kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidWindow:
		return http.StatusBadRequest
	case apperr.KindAvailabilityViolation:
		return http.StatusUnprocessableEntity
	case apperr.KindResourceConflict, apperr.KindCapacityExceeded, apperr.KindDuplicateRegistration:
		return http.StatusConflict
	case apperr.KindOwnershipViolation:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as JSON. Business failures are surfaced verbatim;
// anything else is logged and hidden behind fallback.
func RespondError(c *gin.Context, err error, fallback string) {
	if e, ok := apperr.As(err); ok {
		c.JSON(StatusFor(e.Kind), ErrorResponse{Error: e.Error(), Code: e.Code()})
		return
	}
	logger.Error(fallback, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

func IntParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}

// NowParam reads the optional RFC3339 "now" query parameter. The wall clock
// is only consulted here, at the HTTP edge.
func NowParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("now")
	if raw == "" {
		return time.Now().UTC(), true
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid now format, use RFC3339"})
		return time.Time{}, false
	}
	return now, true
}
