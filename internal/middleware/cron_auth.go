package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"chatquestbot/internal/errors"
)

// RequireCronSecret guards the trigger endpoints. Requests must carry the
// configured secret in X-Cron-Secret; an empty configured secret disables
// the endpoints entirely rather than leaving them open.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			errors.Unauthorized(c, "Trigger endpoints are disabled")
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			errors.Unauthorized(c, "Invalid cron secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
