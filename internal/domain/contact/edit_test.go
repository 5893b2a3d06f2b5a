package contact_test

import (
	"errors"
	"testing"

	"assistant/internal/domain/contact"
)

func TestParseEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		value string
		want  contact.Edit
	}{
		{"name", "  Jane Doe ", contact.SetName{Name: "Jane Doe"}},
		{"address", " Oak Ave 5 ", contact.SetAddress{Address: "Oak Ave 5"}},
		{"email", " jane@d.com ", contact.SetEmail{Email: "jane@d.com"}},
		{"birthday", " 1991-01-01 ", contact.SetBirthday{Birthday: "1991-01-01"}},
		{"EMAIL", "x@y.zz", contact.SetEmail{Email: "x@y.zz"}},
	}
	for _, tt := range tests {
		got, err := contact.ParseEdit(tt.field, tt.value)
		if err != nil {
			t.Errorf("ParseEdit(%q) error: %v", tt.field, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEdit(%q, %q) = %#v, want %#v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestParseEditPhones(t *testing.T) {
	t.Parallel()

	op, err := contact.ParseEdit("phones", "123456789, +111222333444")
	if err != nil {
		t.Fatalf("ParseEdit: %v", err)
	}
	sp, ok := op.(contact.SetPhones)
	if !ok {
		t.Fatalf("ParseEdit returned %T, want SetPhones", op)
	}
	if len(sp.Phones) != 2 || sp.Phones[0] != "123456789" || sp.Phones[1] != "+111222333444" {
		t.Fatalf("Phones = %v", sp.Phones)
	}
}

func TestParseEditUnknownField(t *testing.T) {
	t.Parallel()

	_, err := contact.ParseEdit("nickname", "JD")
	if !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("ParseEdit(nickname) = %v, want ErrUnknownField", err)
	}
}
