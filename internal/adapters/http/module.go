package httpadp

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"assistant/internal/adapters/http/handlers"
	"assistant/internal/book"
	"assistant/pkg/httpx"
	"assistant/pkg/jwtauth"
)

// Pinger is re-exported so callers can wire the store into readiness
// without importing the handlers package.
type Pinger = handlers.Pinger

type Module struct {
	log            *slog.Logger
	book           *book.Book
	jwtm           *jwtauth.Manager
	passphraseHash string
	ping           Pinger
}

type Option func(*Module)

// WithReadyPing makes /ready ping the backing store.
func WithReadyPing(p Pinger) Option {
	return func(m *Module) { m.ping = p }
}

// NewModule wires the contacts API. A nil jwtm (or empty passphrase
// hash) leaves every route open, for loopback-only deployments.
func NewModule(log *slog.Logger, b *book.Book, jwtm *jwtauth.Manager, passphraseHash string, opts ...Option) *Module {
	m := &Module{
		log:            log,
		book:           b,
		jwtm:           jwtm,
		passphraseHash: passphraseHash,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) Name() string { return "contacts.http" }

func (m *Module) Mount(r *gin.Engine) error {
	hh := handlers.NewHealthHandlers(m.log, m.book, m.ping)
	r.GET("/live", hh.Live)
	r.GET("/ready", hh.Ready)

	v1 := r.Group("/v1")

	authEnabled := m.jwtm != nil && m.passphraseHash != ""
	if authEnabled {
		ah := handlers.NewAuthHandlers(m.log, m.jwtm, m.passphraseHash)
		v1.POST("/auth/login", ah.Login)
	}

	ch := handlers.NewContactsHandlers(m.log, m.book)

	contacts := v1.Group("/contacts")
	{
		// reads are always open
		contacts.GET("", ch.Search)
		contacts.GET("/upcoming", ch.Upcoming)
		contacts.GET("/:name", ch.Get)

		mut := contacts.Group("")
		if authEnabled {
			mut.Use(httpx.AuthJWT(m.log, m.jwtm))
		}
		mut.POST("", ch.Add)
		mut.PATCH("/:name", ch.Edit)
		mut.DELETE("/:name", ch.Delete)
	}

	return nil
}
