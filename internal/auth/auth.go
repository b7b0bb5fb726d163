package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer   = "gymcore-api"
	jwtAudience = "gymcore-clients"

	AccessTokenTTL = 15 * time.Minute
)

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
	ErrUnknownRole      = errors.New("unknown role")
)

// JWTClaims identifies the caller. SubjectID is a member id for members and
// a trainer id for trainers; admins carry 0.
type JWTClaims struct {
	SubjectID int    `json:"sub_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

func generateToken(subjectID int, role, tokenType, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptyJWTSecret
	}
	if !ValidRole(role) {
		return "", ErrUnknownRole
	}

	now := time.Now()
	expirationTime := now.Add(ttl)

	claims := &JWTClaims{
		SubjectID: subjectID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAccessToken signs a short-lived access token. Tokens are normally
// minted by the identity provider; this is used by tooling and tests.
func GenerateAccessToken(subjectID int, role, secret string) (string, error) {
	return generateToken(subjectID, role, "access", secret, AccessTokenTTL)
}

func ValidateToken(tokenString, secret string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !ValidRole(claims.Role) {
		return nil, ErrUnknownRole
	}

	return claims, nil
}
