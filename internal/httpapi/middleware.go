package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"workclock/internal/auth"
	"workclock/internal/errors"
)

// Context keys.
const (
	requestIDKey = "request_id"
	identityKey  = "identity"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// LoggingMiddleware logs one line per request once it completes.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

// AuthMiddleware verifies bearer tokens with provider. A nil provider turns
// authentication off. Without required, requests lacking a token pass
// through anonymously; an invalid token is always rejected.
func AuthMiddleware(provider auth.Provider, required bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := auth.BearerToken(header)
		if !ok {
			if required || header != "" {
				abortWithError(c, logger, errors.NewUnauthorizedError("missing bearer token"))
				return
			}
			c.Next()
			return
		}

		identity, err := provider.Verify(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// identityFrom returns the verified identity of the request, if any.
func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}
