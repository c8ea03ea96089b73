package contact

import "errors"

// Errors returned by Book and Session. None of them are fatal; front-ends
// surface them with Message.
var (
	ErrEmptyField   = errors.New("contact: name and number are required")
	ErrInvalidPhone = errors.New("contact: phone number must be 10 digits")
	ErrNotFound     = errors.New("contact: not found")
	ErrNoSelection  = errors.New("contact: no contact selected for update")
)

// Message returns the short notification text for err, or "" if err is not
// one of the contact errors.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrEmptyField):
		return "Add contact name and number"
	case errors.Is(err, ErrInvalidPhone):
		return "Must be 10-digit number"
	case errors.Is(err, ErrNotFound):
		return "No existing contact"
	case errors.Is(err, ErrNoSelection):
		return "Select a contact to update"
	default:
		return ""
	}
}

// IsUserError reports whether err is a recoverable input error rather than a
// storage failure.
func IsUserError(err error) bool {
	return Message(err) != ""
}
