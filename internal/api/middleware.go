// internal/api/middleware.go
package api

import (
	"strings"
	"time"

	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/lead/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader   = "X-Session-ID"
	SessionQuery    = "session_id"
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "requestId"
)

// sessionID picks the session key from the header, then the query string,
// then falls back to the shared default session.
func sessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query(SessionQuery)); id != "" {
		return id
	}
	return store.DefaultSessionID
}

// requestID keeps a caller-supplied X-Request-ID or assigns a new one, and
// echoes it on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Debug("request handled", map[string]interface{}{
			"requestId": c.GetString(requestIDKey),
			"method":    c.Request.Method,
			"route":     route,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
		})
	}
}
