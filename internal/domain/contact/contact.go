// Package contact holds the contact entity: its validation rules, the
// normalized lookup key, and the birthday-distance arithmetic.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidEmail = errors.New("invalid email address")
)

var (
	// Optional leading +, then 9 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+?\d{9,15}$`)
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Contact is one person's details. Construction trims every field but
// performs no validation; validation is explicit and caller-invoked so
// that records loaded from old data files always round-trip.
type Contact struct {
	Name    string
	Address string
	Phones  []string
	Email   string

	// Birthday is kept textual; empty means not set. It is parsed
	// lazily by DaysToBirthday and never validated on write.
	Birthday string
}

func New(name, address string, phones []string, email, birthday string) *Contact {
	trimmed := make([]string, 0, len(phones))
	for _, p := range phones {
		trimmed = append(trimmed, strings.TrimSpace(p))
	}
	return &Contact{
		Name:     strings.TrimSpace(name),
		Address:  strings.TrimSpace(address),
		Phones:   trimmed,
		Email:    strings.TrimSpace(email),
		Birthday: strings.TrimSpace(birthday),
	}
}

// NormalizeName derives the book's lookup key from a display name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key is the contact's normalized lookup key.
func (c *Contact) Key() string { return NormalizeName(c.Name) }

// ValidatePhone accepts an optional leading + followed by 9-15 digits.
// Pure function of its argument.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return nil
}

// ValidateEmail treats an empty email as "not set", which is valid.
func (c *Contact) ValidateEmail() error {
	if c.Email == "" {
		return nil
	}
	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, c.Email)
	}
	return nil
}

// DaysToBirthday returns the number of days from now until the next
// occurrence of the contact's birthday: 0 when today is the birthday,
// never negative. The second return is false when the birthday is
// absent or unparseable. The date is parsed flexibly, so data entered
// as "1990-05-12", "12.05.1990" or "May 12, 1990" all work.
//
// A Feb 29 birthday in a non-leap target year normalizes to Mar 1.
func (c *Contact) DaysToBirthday(now time.Time) (int, bool) {
	if c.Birthday == "" {
		return 0, false
	}
	bday, err := dateparse.ParseAny(c.Birthday)
	if err != nil {
		return 0, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(today.Year(), bday.Month(), bday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, bday.Month(), bday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24), true
}
