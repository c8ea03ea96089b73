package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the whole namespace as a single JSON object in
// <baseDir>/<name>.json. Every mutation rewrites the file atomically.
type FileStore struct {
	mu      sync.Mutex
	baseDir string
	name    string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore for the named namespace under baseDir.
// The directory is created on first write.
func NewFileStore(baseDir, name string) (*FileStore, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir, name: name}, nil
}

// Path returns the JSON file backing the store.
func (s *FileStore) Path() string {
	return filepath.Join(s.baseDir, s.name+".json")
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// Rename applies the removal and the write to one loaded copy and saves it
// once, so a failed save leaves the previous file untouched.
func (s *FileStore) Rename(oldKey, newKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	delete(m, oldKey)
	m[newKey] = value
	return s.save(m)
}

func (s *FileStore) GetAll() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Contains(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := m[key]
	return ok, nil
}

// load reads the backing file. A missing or empty file is an empty namespace.
func (s *FileStore) load() (map[string]string, error) {
	p := s.Path()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("kv: reading %s: %w", p, err)
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("kv: parsing %s: %w", p, err)
	}
	// A literal null decodes to a nil map.
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// save writes m to a temp file in the same directory and renames it into place.
func (s *FileStore) save(m map[string]string) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("kv: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("kv: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(s.baseDir, s.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("kv: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("kv: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv: closing %s: %w", tmp.Name(), err)
	}

	p := s.Path()
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("kv: replacing %s: %w", p, err)
	}
	return nil
}
