package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	httpadp "assistant/internal/adapters/http"
	"assistant/internal/book"
	"assistant/pkg/jwtauth"
)

func newAuthRouter(t *testing.T, passphrase string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	log := newTestLogger()
	b, err := book.New(context.Background(), log, &memStorage{})
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}

	jwtm := jwtauth.New(jwtauth.Config{
		Secret:   "test-secret",
		Issuer:   "assistant-test",
		TokenTTL: time.Minute,
	})

	r := gin.New()
	if err := httpadp.NewModule(log, b, jwtm, string(hash)).Mount(r); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return r
}

func TestMutationsRequireToken(t *testing.T) {
	t.Parallel()

	r := newAuthRouter(t, "open sesame")

	// reads stay open
	w := doJSON(t, r, http.MethodGet, "/v1/contacts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search without token: %d", w.Code)
	}

	// mutations do not
	w = doJSON(t, r, http.MethodPost, "/v1/contacts", gin.H{"name": "John"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("add without token: %d, want 401", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	r := newAuthRouter(t, "open sesame")

	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", gin.H{"passphrase": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong passphrase: %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/v1/auth/login", gin.H{"passphrase": "open sesame"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d, body %s", w.Code, w.Body)
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("resp = %+v", resp)
	}

	raw, _ := json.Marshal(gin.H{"name": "John", "phones": []string{"123456789"}})
	req := httptest.NewRequest(http.MethodPost, "/v1/contacts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add with token: %d, body %s", rec.Code, rec.Body)
	}
}
