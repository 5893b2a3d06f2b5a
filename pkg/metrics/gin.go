package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

func GinMiddleware(h *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.infl.Inc()
		start := time.Now()

		c.Next()

		h.observe(c.Request.Method, h.pathLabeler(c.Request), c.Writer.Status(), time.Since(start))
		h.infl.Dec()
	}
}
