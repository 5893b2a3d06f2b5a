package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by ParseEdit for an unrecognized field
// name. It is a reported no-op at the boundaries, never a fatal error.
var ErrUnknownField = errors.New("unknown field")

// Edit is a closed set of contact edit operations. The field-name
// strings users type survive only in ParseEdit; everything past that
// boundary switches exhaustively on these types.
type Edit interface {
	isEdit()
}

type SetName struct{ Name string }
type SetAddress struct{ Address string }
type SetEmail struct{ Email string }
type SetBirthday struct{ Birthday string }
type SetPhones struct{ Phones []string }

func (SetName) isEdit()     {}
func (SetAddress) isEdit()  {}
func (SetEmail) isEdit()    {}
func (SetBirthday) isEdit() {}
func (SetPhones) isEdit()   {}

// ParseEdit maps a textual field/value pair to an edit operation. The
// phones value is comma-separated; each part is trimmed here and
// validated later by the book, all-or-nothing.
func ParseEdit(field, value string) (Edit, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		return SetName{Name: strings.TrimSpace(value)}, nil
	case "address":
		return SetAddress{Address: strings.TrimSpace(value)}, nil
	case "email":
		return SetEmail{Email: strings.TrimSpace(value)}, nil
	case "birthday":
		return SetBirthday{Birthday: strings.TrimSpace(value)}, nil
	case "phones":
		parts := strings.Split(value, ",")
		phones := make([]string, 0, len(parts))
		for _, p := range parts {
			phones = append(phones, strings.TrimSpace(p))
		}
		return SetPhones{Phones: phones}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
