package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkasso/backend/internal/domain/identity"
)

// ActorKey is the context key holding the authenticated user aggregate
const ActorKey = "actor"

// ActorMiddleware resolves the authenticated user behind the JWT claims.
// Scope resolution works on the live user record, not the token, so role
// or assignment changes take effect without waiting for token expiry.
func ActorMiddleware(userRepo identity.UserRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if log != nil {
				log.Warn("Actor lookup failed",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			}
			abortUnauthorized(c, "Account no longer exists")
			return
		}

		if !user.CanLogin() {
			abortUnauthorized(c, "Account is not active")
			return
		}

		c.Set(ActorKey, user)
		c.Next()
	}
}

// GetActor retrieves the authenticated user aggregate from gin.Context
func GetActor(c *gin.Context) *identity.User {
	if actor, exists := c.Get(ActorKey); exists {
		if user, ok := actor.(*identity.User); ok {
			return user
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
