package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
)

const corsMaxAge = 12 * time.Hour

func requestLogger(logger logr.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.V(1).Info("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote", c.RemoteIP(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware translates the policy into gin-contrib/cors settings. Returns no handlers
// when no origin is allowed, in which case cross-origin headers are never emitted.
func corsMiddleware(policy CORSConfig) []gin.HandlerFunc {
	if len(policy.AllowOrigins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowHeaders:     policy.AllowHeaders,
		AllowCredentials: policy.AllowCredentials,
		MaxAge:           corsMaxAge,
	}

	// Reflect the request origin instead of answering "*", browsers reject a wildcard
	// origin on credentialed requests
	if slices.Contains(policy.AllowOrigins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = policy.AllowOrigins
	}

	if len(policy.AllowMethods) == 0 || slices.Contains(policy.AllowMethods, "*") {
		cfg.AllowMethods = allMethods
	} else {
		cfg.AllowMethods = policy.AllowMethods
	}

	var handlers []gin.HandlerFunc

	// A wildcard header list is a literal header name on credentialed requests, so the
	// requested headers are echoed back instead
	if policy.AllowCredentials && slices.Contains(policy.AllowHeaders, "*") {
		cfg.AllowHeaders = nil
		handlers = append(handlers, reflectRequestHeaders())
	}

	return append(handlers, cors.New(cfg))
}

// reflectRequestHeaders answers a preflight with the headers the browser asked for. Must run
// before cors.New, which aborts preflight requests.
func reflectRequestHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions && c.GetHeader("Origin") != "" {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
			}
		}

		c.Next()
	}
}
