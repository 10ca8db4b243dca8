package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/core/service"
)

const (
	AuthHeaderKey    = "Authorization"
	UserIDContextKey = "user_id"
)

// TokenAuthenticator resolves a bearer token to a user id.
type TokenAuthenticator interface {
	Authenticate(token string) (int64, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's user id in the context.
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'")
			return
		}

		userID, err := auth.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Invalid or expired token"
			if !service.IsKind(err, service.KindAuth) {
				message = "Could not validate token"
			}
			abortUnauthorized(c, message)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user id from context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(UserIDContextKey)
	if !exists {
		return 0, false
	}

	userID, ok := value.(int64)
	return userID, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
		Code:    http.StatusUnauthorized,
	})
}
