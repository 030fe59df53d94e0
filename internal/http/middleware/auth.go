package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"

	sessionTTL = 24 * time.Hour
)

// SessionClaims is the payload of the session cookie issued after a
// successful OTP verification.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a session JWT for the given identity.
func NewSessionToken(secret, email, role string) (string, error) {
	claims := SessionClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session JWT and returns its claims.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return SessionClaims{}, err
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid session cookie and puts
// the identity on the context for downstream handlers.
func RequireAuth(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authentication required",
			})
			return
		}

		claims, err := ParseSessionToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "session expired or invalid",
			})
			return
		}

		c.Set(userEmailKey, claims.Email)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// UserEmail returns the authenticated email, empty when unauthenticated.
func UserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// UserRole returns the authenticated role, empty when unauthenticated.
func UserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}
