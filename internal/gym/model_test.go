package gym

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bindRouter[T any]() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)
	return w
}

func TestCreateMemberRequest_Validation(t *testing.T) {
	router := bindRouter[CreateMemberRequest]()

	w := post(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name")
	assert.Contains(t, w.Body.String(), "required")

	w = post(router, `{"name":"Alice","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email")

	w = post(router, `{"name":"Alice","email":"alice@example.com","target_weight":"70.5"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateRoomRequest_Validation(t *testing.T) {
	router := bindRouter[CreateRoomRequest]()

	w := post(router, `{"name":"Spin","capacity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Capacity")

	w = post(router, `{"name":"Spin","capacity":20}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogHealthMetricRequest_Validation(t *testing.T) {
	router := bindRouter[LogHealthMetricRequest]()

	w := post(router, `{"recorded_at":"2025-12-01T07:00:00Z","heart_rate":400}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "HeartRate")

	w = post(router, `{"recorded_at":"2025-12-01T07:00:00Z","heart_rate":60}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
