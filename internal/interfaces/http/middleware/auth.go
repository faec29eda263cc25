package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"stream-ledger.backend/internal/domain/entities"
	"stream-ledger.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountIDKey is the context key for the account ID
	AccountIDKey = "accountId"
	// AccountRoleKey is the context key for the account role
	AccountRoleKey = "accountRole"
)

// AuthMiddleware validates the bearer token issued by the identity
// provider and exposes (accountId, role) to downstream handlers.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(AccountRoleKey, entities.Role(claims.Role))

		c.Next()
	}
}

// RequireCapability aborts unless the authenticated role grants the
// capability. Role checks live here once instead of being scattered
// through handlers.
func RequireCapability(capability entities.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAccountRole(c)
		if !ok || !role.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// GetAccountID gets the account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := accountID.(uuid.UUID)
	return id, ok
}

// GetAccountRole gets the account role from context
func GetAccountRole(c *gin.Context) (entities.Role, bool) {
	role, exists := c.Get(AccountRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(entities.Role)
	return r, ok
}
