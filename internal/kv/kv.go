// Package kv provides the flat string-to-string persistence layer that backs
// the contact book. Every backend is a direct passthrough: no validation is
// applied to keys or values on read or write.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultName is the store identifier used when none is configured.
const DefaultName = "Contacts"

// Store is a flat namespace of string key-value pairs.
type Store interface {
	// Get returns the value for key. The bool is false if the key is absent.
	Get(key string) (string, bool, error)
	// Set writes key=value, replacing any existing value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// GetAll returns a copy of every pair in the store.
	GetAll() (map[string]string, error)
	// Contains reports whether key is present.
	Contains(key string) (bool, error)
	// Rename removes oldKey and writes newKey=value as one atomic change.
	// If the write fails, oldKey is left in place. Renaming onto an
	// existing key replaces its value.
	Rename(oldKey, newKey, value string) error
}

// ErrInvalidName indicates a store identifier is empty or contains path components.
var ErrInvalidName = errors.New("kv: invalid store name")

// checkName rejects identifiers that are empty, dot-segments, or contain path separators.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
