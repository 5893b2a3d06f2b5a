package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	httpadp "assistant/internal/adapters/http"
	"assistant/internal/book"
)

type pingStorage struct {
	memStorage
	pingErr error
}

func (p *pingStorage) Ping(context.Context) error { return p.pingErr }

func newHealthRouter(t *testing.T, st *pingStorage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := newTestLogger()
	b, err := book.New(context.Background(), log, st)
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}

	r := gin.New()
	mod := httpadp.NewModule(log, b, nil, "", httpadp.WithReadyPing(st))
	if err := mod.Mount(r); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return r
}

func TestLive(t *testing.T) {
	t.Parallel()

	r := newHealthRouter(t, &pingStorage{})
	if w := doJSON(t, r, http.MethodGet, "/live", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /live = %d, want 200", w.Code)
	}
}

func TestReadyPingsStore(t *testing.T) {
	t.Parallel()

	st := &pingStorage{}
	r := newHealthRouter(t, st)

	if w := doJSON(t, r, http.MethodGet, "/ready", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /ready = %d, want 200, body %s", w.Code, w.Body)
	}

	st.pingErr = errors.New("connection refused")
	if w := doJSON(t, r, http.MethodGet, "/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /ready with failing store = %d, want 503", w.Code)
	}
}
