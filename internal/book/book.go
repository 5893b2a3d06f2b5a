// Package book implements the contact index: CRUD and reminder queries
// over contacts, backed by a blob-store adapter. The whole book is
// loaded once at construction and rewritten to storage after every
// mutation; there are no incremental writes.
//
// The book itself is single-caller: it holds no locks, and two
// processes sharing one backing store race with last-writer-wins.
// Callers that need concurrent access serialize at their own boundary.
package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"assistant/internal/domain/contact"
)

var ErrNotFound = errors.New("book: contact not found")

// Storage is the blob-store contract: the whole record mapping in one
// read, the whole mapping back in one write.
type Storage interface {
	Load(ctx context.Context) (map[string]contact.Record, error)
	Save(ctx context.Context, records map[string]contact.Record) error
}

// Notifier receives change events after a mutation has been persisted.
type Notifier interface {
	ContactChanged(ctx context.Context, op, key string)
}

const (
	OpAdded   = "added"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

type Book struct {
	log      *slog.Logger
	storage  Storage
	notifier Notifier
	now      func() time.Time

	contacts map[string]*contact.Contact
	order    []string // insertion order of keys; search and scans follow it
}

type Option func(*Book)

func WithNotifier(n Notifier) Option {
	return func(b *Book) { b.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// New loads every stored record and indexes it by the normalized
// (trimmed, lower-cased) contact name.
func New(ctx context.Context, log *slog.Logger, storage Storage, opts ...Option) (*Book, error) {
	b := &Book{
		log:      log,
		storage:  storage,
		now:      time.Now,
		contacts: make(map[string]*contact.Contact),
	}
	for _, o := range opts {
		o(b)
	}

	records, err := b.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("book: load: %w", err)
	}
	for _, r := range records {
		c := contact.FromRecord(r)
		b.insert(c.Key(), c)
	}

	log.Info("book: loaded", slog.Int("contacts", len(b.contacts)))
	return b, nil
}

// save rewrites the whole book, each record keyed by its display name.
func (b *Book) save(ctx context.Context) error {
	records := make(map[string]contact.Record, len(b.contacts))
	for _, c := range b.contacts {
		records[c.Name] = c.Record()
	}
	if err := b.storage.Save(ctx, records); err != nil {
		return fmt.Errorf("book: save: %w", err)
	}
	return nil
}

func (b *Book) insert(key string, c *contact.Contact) {
	if _, ok := b.contacts[key]; !ok {
		b.order = append(b.order, key)
	}
	b.contacts[key] = c
}

func (b *Book) remove(key string) {
	delete(b.contacts, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Add validates the contact and stores it under its normalized key.
// A contact whose name differs only in case or whitespace from an
// existing one silently replaces it.
func (b *Book) Add(ctx context.Context, c *contact.Contact) error {
	if err := c.ValidateEmail(); err != nil {
		return err
	}
	for _, p := range c.Phones {
		if err := contact.ValidatePhone(p); err != nil {
			return err
		}
	}

	key := c.Key()
	_, existed := b.contacts[key]
	b.insert(key, c)
	if err := b.save(ctx); err != nil {
		return err
	}

	op := OpAdded
	if existed {
		op = OpUpdated
	}
	b.log.Info("book: contact added", slog.String("name", c.Name))
	b.notify(ctx, op, key)
	return nil
}

// Get looks a contact up by normalized name.
func (b *Book) Get(name string) (*contact.Contact, bool) {
	c, ok := b.contacts[contact.NormalizeName(name)]
	return c, ok
}

// Search returns contacts whose name contains the trimmed query,
// case-insensitively, in the book's insertion order.
func (b *Book) Search(query string) []*contact.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []*contact.Contact
	for _, key := range b.order {
		c := b.contacts[key]
		if strings.Contains(strings.ToLower(c.Name), q) {
			results = append(results, c)
		}
	}
	return results
}

// UpcomingBirthdays returns contacts whose birthday falls within the
// next days days, inclusive; days==0 means today only. Contacts with
// absent or unparseable birthdays are excluded.
func (b *Book) UpcomingBirthdays(days int) []*contact.Contact {
	now := b.now()
	var upcoming []*contact.Contact
	for _, key := range b.order {
		c := b.contacts[key]
		if d, ok := c.DaysToBirthday(now); ok && d <= days {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming
}

// Contacts returns every contact in insertion order.
func (b *Book) Contacts() []*contact.Contact {
	out := make([]*contact.Contact, 0, len(b.contacts))
	for _, key := range b.order {
		out = append(out, b.contacts[key])
	}
	return out
}

func (b *Book) Len() int { return len(b.contacts) }

// Delete removes a contact by normalized name. A missing name returns
// ErrNotFound without touching storage; repeating a delete is a
// reported no-op, not a failure.
func (b *Book) Delete(ctx context.Context, name string) error {
	key := contact.NormalizeName(name)
	if _, ok := b.contacts[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(name))
	}
	b.remove(key)
	if err := b.save(ctx); err != nil {
		return err
	}
	b.log.Info("book: contact deleted", slog.String("name", strings.TrimSpace(name)))
	b.notify(ctx, OpDeleted, key)
	return nil
}

// Edit applies one edit operation to the named contact. Validation runs
// before anything is mutated, so a failed edit leaves the contact
// exactly as it was; SetPhones in particular is all-or-nothing over the
// full list. Renaming re-keys the index to the new normalized name.
func (b *Book) Edit(ctx context.Context, name string, op contact.Edit) error {
	key := contact.NormalizeName(name)
	c, ok := b.contacts[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(name))
	}

	switch e := op.(type) {
	case contact.SetName:
		newName := strings.TrimSpace(e.Name)
		newKey := contact.NormalizeName(newName)
		if newKey != key {
			// A rename onto an existing entry replaces it, same as Add.
			if _, taken := b.contacts[newKey]; taken {
				b.remove(newKey)
			}
			b.rekey(key, newKey)
		}
		c.Name = newName
	case contact.SetAddress:
		c.Address = strings.TrimSpace(e.Address)
	case contact.SetEmail:
		candidate := *c
		candidate.Email = strings.TrimSpace(e.Email)
		if err := candidate.ValidateEmail(); err != nil {
			return err
		}
		c.Email = candidate.Email
	case contact.SetBirthday:
		// Deliberately unvalidated: an unparseable birthday just drops
		// the contact out of reminder queries.
		c.Birthday = strings.TrimSpace(e.Birthday)
	case contact.SetPhones:
		for _, p := range e.Phones {
			if err := contact.ValidatePhone(p); err != nil {
				return err
			}
		}
		c.Phones = append([]string(nil), e.Phones...)
	default:
		return fmt.Errorf("%w: %T", contact.ErrUnknownField, op)
	}

	if err := b.save(ctx); err != nil {
		return err
	}
	b.log.Info("book: contact updated", slog.String("name", c.Name))
	b.notify(ctx, OpUpdated, c.Key())
	return nil
}

func (b *Book) rekey(oldKey, newKey string) {
	c := b.contacts[oldKey]
	delete(b.contacts, oldKey)
	b.contacts[newKey] = c
	for i, k := range b.order {
		if k == oldKey {
			b.order[i] = newKey
			break
		}
	}
}

func (b *Book) notify(ctx context.Context, op, key string) {
	if b.notifier == nil {
		return
	}
	b.notifier.ContactChanged(ctx, op, key)
}
