package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is where the middleware stores the request id for the
// envelope builder and the access log.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with an id. A caller-supplied
// X-Request-ID is honored so ids stay stable across the gateway; otherwise a
// fresh UUID is minted. The id is echoed back in the response header either
// way.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
