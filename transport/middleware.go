package transport

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"debate-arena/auth"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity in the request context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "detail": "missing bearer token"})
			return
		}
		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "detail": "invalid token"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// bearerToken pulls the token from the Authorization header, falling back to
// the access_token query parameter for websocket clients that cannot set
// headers.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("access_token")
}
