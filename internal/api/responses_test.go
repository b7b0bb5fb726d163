package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gymcore/internal/apperr"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindInvalidWindow, http.StatusBadRequest},
		{apperr.KindAvailabilityViolation, http.StatusUnprocessableEntity},
		{apperr.KindResourceConflict, http.StatusConflict},
		{apperr.KindCapacityExceeded, http.StatusConflict},
		{apperr.KindDuplicateRegistration, http.StatusConflict},
		{apperr.KindOwnershipViolation, http.StatusForbidden},
		{apperr.Kind("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.kind))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/conflict", func(c *gin.Context) {
		RespondError(c, apperr.Conflict(apperr.ResourceRoom, apperr.EntityClass, 3), "failed")
	})
	router.GET("/internal", func(c *gin.Context) {
		RespondError(c, errors.New("db down"), "Failed to book session")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "room_class_conflict")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to book session")
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestNowParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		now, ok := NowParam(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, now.Format("2006-01-02T15"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?now=2025-12-01T09:00:00Z", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-12-01T09", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?now=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
