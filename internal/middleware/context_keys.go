package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID on the request context. The
// custom type keeps it from colliding with keys other packages might set.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the user ID placed on the context by
// AuthMiddleware. Handlers use it to attribute bookings, session actions and
// audit entries to the caller.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	// Tests and a few middlewares set the ID on the Gin context directly.
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	return "", false
}
