package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"assistant/internal/book"
)

const readyPingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandlers struct {
	log  *slog.Logger
	book *book.Book
	ping Pinger
}

func NewHealthHandlers(log *slog.Logger, b *book.Book, ping Pinger) *HealthHandlers {
	return &HealthHandlers{log: log, book: b, ping: ping}
}

func (h *HealthHandlers) Live(c *gin.Context) {
	noCache(c)
	c.String(http.StatusOK, "ok")
}

// Ready reports serving readiness: the book must be loaded and the
// store, when it exposes a ping, must answer one.
func (h *HealthHandlers) Ready(c *gin.Context) {
	noCache(c)

	if h.book == nil {
		ReqLog(c, h.log).Error("readiness failed: book is nil", slog.String("path", c.FullPath()))
		c.String(http.StatusServiceUnavailable, "book not ready")
		return
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
		defer cancel()
		if err := h.ping.Ping(ctx); err != nil {
			ReqLog(c, h.log).Error("readiness failed: store ping", slog.Any("err", err))
			c.String(http.StatusServiceUnavailable, "store not ready")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "contacts": h.book.Len()})
}
