package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	// Given a value written by one FileStore
	dir := t.TempDir()
	first, err := NewFileStore(dir, DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("Alice", "5551234567"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// When a second FileStore opens the same namespace
	second, err := NewFileStore(dir, DefaultName)
	if err != nil {
		t.Fatal(err)
	}

	// Then it reads the value back
	v, ok, err := second.Get("Alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || v != "5551234567" {
		t.Errorf("Get(Alice) = (%q, %v), want (5551234567, true)", v, ok)
	}
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "data"), "Contacts")
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "data", "Contacts.json")
	if s.Path() != want {
		t.Errorf("Path() = %q, want %q", s.Path(), want)
	}

	// The directory is created lazily on first write.
	if err := s.Set("Alice", "5551234567"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"A", "B", "C"} {
		if err := s.Set(k, "5551234567"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("dir entries = %v, want only %s.json", names, DefaultName)
	}
}

func TestFileStore_EmptyFile(t *testing.T) {
	// Given an empty backing file
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Contacts.json"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir, "Contacts")

	// When GetAll is called
	all, err := s.GetAll()

	// Then it reads as an empty namespace
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("GetAll() = %v, want empty", all)
	}
}

func TestFileStore_NullFile(t *testing.T) {
	// Given a backing file holding a JSON null
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Contacts.json"), []byte("null\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir, "Contacts")

	// When it is read
	all, err := s.GetAll()

	// Then it is an empty, non-nil namespace
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("GetAll() = %#v, want empty map", all)
	}

	// When keys are written
	if err := s.Set("Alice", "5551234567"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Rename("Alice", "Alicia", "5551234567"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	// Then the file becomes a normal object
	got, _, err := s.Get("Alicia")
	if err != nil || got != "5551234567" {
		t.Errorf("Get(Alicia) = (%q, %v), want 5551234567", got, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	// Given a backing file that is not a JSON object
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Contacts.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir, "Contacts")

	// When the store is read or written
	_, err := s.GetAll()

	// Then a parse error surfaces and the file is left alone
	if err == nil {
		t.Fatal("GetAll() on corrupt file should return error")
	}
	if err := s.Set("Alice", "5551234567"); err == nil {
		t.Error("Set() on corrupt file should return error")
	}
	data, _ := os.ReadFile(filepath.Join(dir, "Contacts.json"))
	if string(data) != "{not json" {
		t.Errorf("corrupt file was overwritten: %q", data)
	}
}

func TestFileStore_InvalidName(t *testing.T) {
	tests := []struct {
		name  string
		store string
	}{
		{name: "parent traversal", store: "../../etc/passwd"},
		{name: "slash in name", store: "foo/bar"},
		{name: "empty name", store: ""},
		{name: "dot dot", store: ".."},
		{name: "current dir", store: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When a FileStore is created with an invalid identifier
			_, err := NewFileStore(t.TempDir(), tt.store)

			// Then it returns ErrInvalidName
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("NewFileStore(%q) error = %v, want ErrInvalidName", tt.store, err)
			}
		})
	}
}
