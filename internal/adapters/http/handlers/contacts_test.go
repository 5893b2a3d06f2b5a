package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpadp "assistant/internal/adapters/http"
	"assistant/internal/book"
	"assistant/internal/domain/contact"
)

type memStorage struct {
	records map[string]contact.Record
}

func (m *memStorage) Load(context.Context) (map[string]contact.Record, error) {
	if m.records == nil {
		return map[string]contact.Record{}, nil
	}
	return m.records, nil
}

func (m *memStorage) Save(_ context.Context, records map[string]contact.Record) error {
	m.records = records
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestRouter(t *testing.T, st book.Storage) (*gin.Engine, *book.Book) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := newTestLogger()
	b, err := book.New(context.Background(), log, st)
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}

	r := gin.New()
	if err := httpadp.NewModule(log, b, nil, "").Mount(r); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return r, b
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddContact(t *testing.T) {
	t.Parallel()

	st := &memStorage{}
	r, b := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodPost, "/v1/contacts", gin.H{
		"name":     "  John Doe ",
		"address":  "Main St 1",
		"phones":   []string{"123456789"},
		"email":    "j@d.com",
		"birthday": "1990-05-12",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "John Doe" {
		t.Fatalf("name = %q, want trimmed", resp.Name)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d", b.Len())
	}
	if _, ok := st.records["John Doe"]; !ok {
		t.Fatalf("persisted blob = %v", st.records)
	}
}

func TestAddContactValidation(t *testing.T) {
	t.Parallel()

	r, b := newTestRouter(t, &memStorage{})

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"phones": []string{"123456789"}}},
		{"bad phone", gin.H{"name": "X", "phones": []string{"abc"}}},
		{"bad email", gin.H{"name": "X", "email": "nonsense"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/v1/contacts", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body)
			}
		})
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
}

func TestGetContact(t *testing.T) {
	t.Parallel()

	st := &memStorage{records: map[string]contact.Record{
		"John Doe": {Name: "John Doe", Phones: []string{"123456789"}},
	}}
	r, _ := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodGet, "/v1/contacts/John%20Doe", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodGet, "/v1/contacts/ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestSearchContacts(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &memStorage{})

	for _, name := range []string{"Anna", "Carl", "Barbara"} {
		w := doJSON(t, r, http.MethodPost, "/v1/contacts", gin.H{"name": name})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", name, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/v1/contacts?q=ar", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Contacts []struct {
			Name string `json:"name"`
		} `json:"contacts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Contacts) != 2 || resp.Contacts[0].Name != "Carl" || resp.Contacts[1].Name != "Barbara" {
		t.Fatalf("contacts = %+v, want [Carl Barbara] in insertion order", resp.Contacts)
	}
}

func TestUpcomingDaysValidation(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &memStorage{})

	for _, q := range []string{"days=-1", "days=abc"} {
		w := doJSON(t, r, http.MethodGet, "/v1/contacts/upcoming?"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", q, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/v1/contacts/upcoming?days=365", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestEditContact(t *testing.T) {
	t.Parallel()

	st := &memStorage{records: map[string]contact.Record{
		"John": {Name: "John", Phones: []string{"999888777666"}},
	}}
	r, b := newTestRouter(t, st)

	// happy path
	w := doJSON(t, r, http.MethodPatch, "/v1/contacts/john", gin.H{
		"field": "phones",
		"value": "123456789, +111222333444",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	c, _ := b.Get("john")
	if len(c.Phones) != 2 {
		t.Fatalf("phones = %v", c.Phones)
	}

	// invalid phone leaves the list untouched
	w = doJSON(t, r, http.MethodPatch, "/v1/contacts/john", gin.H{
		"field": "phones",
		"value": "abc",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	c, _ = b.Get("john")
	if len(c.Phones) != 2 || c.Phones[0] != "123456789" {
		t.Fatalf("phones mutated: %v", c.Phones)
	}

	// unknown field
	w = doJSON(t, r, http.MethodPatch, "/v1/contacts/john", gin.H{
		"field": "nickname",
		"value": "JD",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// absent contact
	w = doJSON(t, r, http.MethodPatch, "/v1/contacts/ghost", gin.H{
		"field": "address",
		"value": "x",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestEditRename(t *testing.T) {
	t.Parallel()

	st := &memStorage{records: map[string]contact.Record{
		"John": {Name: "John", Phones: []string{}},
	}}
	r, _ := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodPatch, "/v1/contacts/john", gin.H{
		"field": "name",
		"value": "Jane",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "Jane" {
		t.Fatalf("name = %q, want Jane", resp.Name)
	}

	if w := doJSON(t, r, http.MethodGet, "/v1/contacts/jane", nil); w.Code != http.StatusOK {
		t.Fatalf("get renamed: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/contacts/john", nil); w.Code != http.StatusNotFound {
		t.Fatalf("old name still resolves: %d", w.Code)
	}
}

func TestDeleteContact(t *testing.T) {
	t.Parallel()

	st := &memStorage{records: map[string]contact.Record{
		"John": {Name: "John", Phones: []string{}},
	}}
	r, b := newTestRouter(t, st)

	w := doJSON(t, r, http.MethodDelete, "/v1/contacts/JOHN", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d", b.Len())
	}

	w = doJSON(t, r, http.MethodDelete, "/v1/contacts/JOHN", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: status = %d, want 404", w.Code)
	}
}
