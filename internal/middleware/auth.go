package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/utils"
)

const actorContextKey = "actor"

// Authenticate verifies the Bearer token and stores the resolved actor in
// the request context. Requests without a valid token are rejected.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c, "Authorization header is required")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			utils.UnauthorizedResponse(c, "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		actor, err := authService.ActorFromToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the actor stored by Authenticate. The zero actor
// is returned for unauthenticated requests.
func ActorFromContext(c *gin.Context) authz.Actor {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return authz.Actor{}
	}
	actor, ok := value.(authz.Actor)
	if !ok {
		return authz.Actor{}
	}
	return actor
}
