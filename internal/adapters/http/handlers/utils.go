package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"assistant/pkg/httpx"
)

func ReqLog(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if rl, ok := c.Get(httpx.CtxKeyLogger); ok {
		if l, ok := rl.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return fallback
}

func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}
