package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// callerIDHeader names the request header carrying the acting user's id.
// The API trusts the reverse proxy / gateway to authenticate callers and
// forward their identity; absent the header, changes are attributed to
// "system".
const callerIDHeader = "X-User-ID"

const defaultCallerID = "system"

// callerIDKey carries the id resolved by CallerIdentityMiddleware. The typed
// key keeps it apart from handler-set string keys.
const callerIDKey = contextKey("caller_id")

// CallerIdentityMiddleware resolves the acting user for audit stamping and
// stores it in both the Gin context and the request context.
func CallerIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(callerIDHeader)
		if userID == "" {
			userID = defaultCallerID
		}

		c.Set(string(callerIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), callerIDKey, userID))

		c.Next()
	}
}

// GetCallerID returns the acting user's id, reading the request context as
// well so code running off the Gin chain still resolves it.
func GetCallerID(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(callerIDKey)); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	if v := c.Request.Context().Value(callerIDKey); v != nil {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	return "", false
}
