package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"assistant/internal/book"
	"assistant/internal/domain/contact"
)

const defaultUpcomingDays = 7

// ContactsHandlers serializes access to the book with a mutex: the book
// itself is single-caller by contract, while gin serves concurrently.
type ContactsHandlers struct {
	log  *slog.Logger
	mu   sync.Mutex
	book *book.Book
}

func NewContactsHandlers(log *slog.Logger, b *book.Book) *ContactsHandlers {
	return &ContactsHandlers{log: log, book: b}
}

type contactReq struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phones   []string `json:"phones"`
	Email    string   `json:"email"`
	Birthday string   `json:"birthday"`
}

type contactResp struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Phones         []string `json:"phones"`
	Email          string   `json:"email"`
	Birthday       *string  `json:"birthday"`
	DaysToBirthday *int     `json:"days_to_birthday,omitempty"`
}

type editReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func toResp(c *contact.Contact) contactResp {
	r := c.Record()
	return contactResp{
		Name:     r.Name,
		Address:  r.Address,
		Phones:   r.Phones,
		Email:    r.Email,
		Birthday: r.Birthday,
	}
}

func (h *ContactsHandlers) Add(c *gin.Context) {
	noCache(c)

	l := ReqLog(c, h.log)

	var in contactReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ct := contact.New(in.Name, in.Address, in.Phones, in.Email, in.Birthday)

	h.mu.Lock()
	err := h.book.Add(c.Request.Context(), ct)
	h.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrInvalidEmail), errors.Is(err, contact.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			l.Error("contacts.add: failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, toResp(ct))
}

func (h *ContactsHandlers) Search(c *gin.Context) {
	noCache(c)

	h.mu.Lock()
	matches := h.book.Search(c.Query("q"))
	h.mu.Unlock()

	out := make([]contactResp, 0, len(matches))
	for _, ct := range matches {
		out = append(out, toResp(ct))
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

func (h *ContactsHandlers) Upcoming(c *gin.Context) {
	noCache(c)

	days := defaultUpcomingDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = n
	}

	now := time.Now()
	h.mu.Lock()
	matches := h.book.UpcomingBirthdays(days)
	h.mu.Unlock()

	out := make([]contactResp, 0, len(matches))
	for _, ct := range matches {
		resp := toResp(ct)
		if d, ok := ct.DaysToBirthday(now); ok {
			resp.DaysToBirthday = &d
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

func (h *ContactsHandlers) Get(c *gin.Context) {
	noCache(c)

	h.mu.Lock()
	ct, ok := h.book.Get(c.Param("name"))
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	c.JSON(http.StatusOK, toResp(ct))
}

func (h *ContactsHandlers) Delete(c *gin.Context) {
	noCache(c)

	l := ReqLog(c, h.log)

	h.mu.Lock()
	err := h.book.Delete(c.Request.Context(), c.Param("name"))
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		l.Error("contacts.delete: failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContactsHandlers) Edit(c *gin.Context) {
	noCache(c)

	l := ReqLog(c, h.log)

	var in editReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	op, err := contact.ParseEdit(in.Field, in.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	h.mu.Lock()
	err = h.book.Edit(c.Request.Context(), name, op)
	var ct *contact.Contact
	var ok bool
	if err == nil {
		if op2, isRename := op.(contact.SetName); isRename {
			ct, ok = h.book.Get(op2.Name)
		} else {
			ct, ok = h.book.Get(name)
		}
	}
	h.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		case errors.Is(err, contact.ErrInvalidEmail), errors.Is(err, contact.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			l.Error("contacts.edit: failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	if !ok {
		l.Error("contacts.edit: contact vanished after edit", slog.String("name", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toResp(ct))
}
