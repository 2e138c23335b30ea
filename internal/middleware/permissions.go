package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
)

// currentUserKey is the Gin context key holding the resolved user.
const currentUserKey = "currentUser"

// RequirePermission loads the authenticated user and rejects the request when
// the user's role does not grant the permission. The resolved user is cached
// in the Gin context for handlers.
func RequirePermission(userSvc portssvc.UserReaderSvc, permission domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to resolve authenticated user", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		if !user.Role.HasPermission(permission) {
			logger.Warn("Permission denied", "permission", string(permission), "role", string(user.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the user resolved by RequirePermission.
func GetCurrentUser(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
