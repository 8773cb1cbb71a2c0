package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys handlers may set for the request log line.
const (
	KeyFrames  = "id3.frames"
	KeyVersion = "id3.version"
)

func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// RequestLogger writes one line per request. Decode handlers report the
// frame count and tag version through KeyFrames and KeyVersion.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event = event.
			Str("method", c.Request.Method).
			Str("route", routeOf(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size())
		if n, ok := c.Get(KeyFrames); ok {
			event = event.Interface("frames", n)
		}
		if v, ok := c.Get(KeyVersion); ok {
			event = event.Interface("version", v)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("http_request")
	}
}

// RequestMetrics labels by route template so unmatched paths share one series.
func RequestMetrics(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(service, c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
