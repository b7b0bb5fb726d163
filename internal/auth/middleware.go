package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
)

const (
	ctxSubjectID = "subject_id"
	ctxRole      = "user_role"
)

func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid authorization header format"})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token is empty"})
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token expired"})
			case errors.Is(err, ErrUnknownRole):
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unknown role"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or malformed token"})
			}
			return
		}

		if claims.TokenType != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Access token required"})
			return
		}

		c.Set(ctxSubjectID, claims.SubjectID)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through when the caller holds any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User role not found"})
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid role type"})
			return
		}

		if !slices.Contains(roles, roleStr) {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

func GetSubjectID(c *gin.Context) (int, bool) {
	subjectID, exists := c.Get(ctxSubjectID)
	if !exists {
		return 0, false
	}

	id, ok := subjectID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetRole(c *gin.Context) string {
	role, _ := c.Get(ctxRole)
	s, _ := role.(string)
	return s
}

// ActsFor reports whether the caller may act on behalf of the given member
// and trainer. Admins may act for anyone; a member only for their own
// member id and a trainer only for their own trainer id. A zero id is not
// claimed by anyone but admins.
//
// Requests without auth context are allowed; routes that need a caller are
// wrapped in AuthMiddleware.
func ActsFor(c *gin.Context, memberID, trainerID int) bool {
	role := GetRole(c)
	if role == "" || role == RoleAdmin {
		return true
	}

	subject, ok := GetSubjectID(c)
	if !ok {
		return false
	}

	switch role {
	case RoleMember:
		return memberID != 0 && subject == memberID
	case RoleTrainer:
		return trainerID != 0 && subject == trainerID
	}
	return false
}
