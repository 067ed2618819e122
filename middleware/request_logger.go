package middleware

import (
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger attaches a request-scoped logger to the context so handlers
// log with the method, route, and client IP already bound.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("clientIp", getClientIP(c)),
		))
		c.Next()
	}
}
