package kv

import (
	"errors"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend indicates a backend name Open does not recognize.
var ErrUnknownBackend = errors.New("kv: unknown backend")

// Open returns the Store for backend, rooted at dir and namespaced by name.
// The returned close func releases backend resources and is never nil.
func Open(backend, dir, name string) (Store, func() error, error) {
	nop := func() error { return nil }

	switch backend {
	case BackendJSON, "":
		s, err := NewFileStore(dir, name)
		if err != nil {
			return nil, nil, err
		}
		return s, nop, nil
	case BackendSQLite:
		s, err := OpenSQLiteStore(dir, name)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendMemory:
		if err := checkName(name); err != nil {
			return nil, nil, err
		}
		return NewMemStore(nil), nop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
