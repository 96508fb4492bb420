package middleware

import (
	"errors"
	"net/http"
	"strings"

	"canteen_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// Authenticate resolves the Bearer token into an Identity and injects it
// into the request context. Handlers never read the token themselves.
func Authenticate(users domain.UserUseCase, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			log.Warn("Middleware: Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header format"})
			return
		}

		identity, err := users.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
				return
			}
			log.Errorf("Middleware: Failed to authenticate token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authentication failed"})
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity injected by Authenticate.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

// SetIdentity injects an identity directly, bypassing token resolution.
// Used by handler tests.
func SetIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}
