package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddlewareHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid, _ := GenerateAccessToken(3, RoleMember, "secret")

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"Empty header", "", http.StatusUnauthorized},
		{"Invalid format", "Token abc", http.StatusUnauthorized},
		{"Empty token", "Bearer ", http.StatusUnauthorized},
		{"Garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"Valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", AuthMiddleware("secret"), func(c *gin.Context) {
				id, _ := GetSubjectID(c)
				c.JSON(http.StatusOK, gin.H{"subject": id, "role": GetRole(c)})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"subject":3,"role":"member"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userRole       any
		allowed        []string
		expectedStatus int
	}{
		{"Correct role", RoleAdmin, []string{RoleAdmin}, http.StatusOK},
		{"One of several", RoleTrainer, []string{RoleTrainer, RoleAdmin}, http.StatusOK},
		{"Missing role", nil, []string{RoleAdmin}, http.StatusUnauthorized},
		{"Wrong role type", 123, []string{RoleAdmin}, http.StatusUnauthorized},
		{"Insufficient role", RoleMember, []string{RoleTrainer, RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			if tt.userRole != nil {
				c.Set(ctxRole, tt.userRole)
			}
			c.Request = httptest.NewRequest("GET", "/", nil)

			handler := RequireRole(tt.allowed...)
			handler(c)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetSubjectID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		subject  any
		expected int
		ok       bool
	}{
		{"Valid ID", 42, 42, true},
		{"Missing ID", nil, 0, false},
		{"Wrong type", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			if tt.subject != nil {
				c.Set(ctxSubjectID, tt.subject)
			}
			c.Request = httptest.NewRequest("GET", "/", nil)

			id, ok := GetSubjectID(c)
			assert.Equal(t, tt.expected, id)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestActsFor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name                string
		role                string
		subject             int
		memberID, trainerID int
		want                bool
	}{
		{"admin acts for anyone", RoleAdmin, 0, 5, 6, true},
		{"member for self", RoleMember, 5, 5, 6, true},
		{"member for someone else", RoleMember, 5, 9, 6, false},
		{"member on trainer op", RoleMember, 5, 0, 6, false},
		{"trainer for self", RoleTrainer, 6, 5, 6, true},
		{"trainer for colleague", RoleTrainer, 6, 5, 7, false},
		{"no auth context", "", 0, 5, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.role != "" {
				c.Set(ctxRole, tt.role)
				c.Set(ctxSubjectID, tt.subject)
			}
			assert.Equal(t, tt.want, ActsFor(c, tt.memberID, tt.trainerID))
		})
	}
}
