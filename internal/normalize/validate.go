package normalize

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ValidationError reports a field-level rule violation. These are resolved
// locally and never reach the gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const (
	nameMinLen  = 2
	nameMaxLen  = 50
	notesMaxLen = 500

	phoneMinDigits = 9
	phoneMaxDigits = 13

	guestCountMax = 20
)

// Name checks the guest name: 2–50 characters, letters (any script),
// spaces, hyphens and apostrophes only. Digits are rejected.
func Name(name string) error {
	n := utf8.RuneCountInString(name)
	if n < nameMinLen || n > nameMaxLen {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("length must be %d-%d characters", nameMinLen, nameMaxLen)}
	}
	for _, r := range name {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("character %q not allowed", r)}
	}
	return nil
}

// PhoneNumber checks an optional phone value: empty is fine, otherwise the
// digit-only form must look like a dialable number.
func PhoneNumber(s string) error {
	n := DigitCount(s)
	if n == 0 {
		return nil
	}
	if n < phoneMinDigits || n > phoneMaxDigits {
		return &ValidationError{Field: "phoneNumber", Reason: fmt.Sprintf("expected %d-%d digits, got %d", phoneMinDigits, phoneMaxDigits, n)}
	}
	return nil
}

// Notes limits free text to 500 characters.
func Notes(s string) error {
	if utf8.RuneCountInString(s) > notesMaxLen {
		return &ValidationError{Field: "notes", Reason: fmt.Sprintf("longer than %d characters", notesMaxLen)}
	}
	return nil
}

// GuestCountAtCreate enforces the form-level bound of 1-20 party members.
func GuestCountAtCreate(n int) error {
	if n < 1 || n > guestCountMax {
		return &ValidationError{Field: "numberOfGuests", Reason: fmt.Sprintf("must be 1-%d", guestCountMax)}
	}
	return nil
}

// GuestCountAtEdit tolerates 0 as a valid "removed" state. The differing
// lower bound between create and edit mirrors the product's behavior.
func GuestCountAtEdit(n int) error {
	if n < 0 {
		return &ValidationError{Field: "numberOfGuests", Reason: "must not be negative"}
	}
	return nil
}
