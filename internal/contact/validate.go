// Package contact implements the contact book: name and phone validation,
// the name-keyed contact store, and the pending-edit session that routes a
// form submit to add or update.
package contact

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PhoneLen is the exact number of digits in a valid phone number.
const PhoneLen = 10

// IsValidName reports whether name has any non-whitespace content.
func IsValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// IsValidPhone reports whether number is exactly PhoneLen ASCII digits.
func IsValidPhone(number string) bool {
	if len(number) != PhoneLen {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeName uppercases the first character of name and leaves the rest unchanged.
func NormalizeName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Validate checks name and phone together. Name emptiness (or an empty phone)
// is reported before phone format.
func Validate(name, phone string) error {
	if !IsValidName(name) || phone == "" {
		return ErrEmptyField
	}
	if !IsValidPhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}
