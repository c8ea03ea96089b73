package kv

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	// Given a value written and the database closed
	dir := t.TempDir()
	s, err := OpenSQLiteStore(dir, DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("Alice", "5551234567"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// When the database is reopened
	s, err = OpenSQLiteStore(dir, DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Then the value is still there
	v, ok, err := s.Get("Alice")
	if err != nil || !ok || v != "5551234567" {
		t.Errorf("Get(Alice) = (%q, %v, %v), want (5551234567, true, nil)", v, ok, err)
	}
	if s.Path() != filepath.Join(dir, "contactbook.db") {
		t.Errorf("Path() = %q", s.Path())
	}
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	// Given two namespaces in one database
	dir := t.TempDir()
	work, err := OpenSQLiteStore(dir, "Work")
	if err != nil {
		t.Fatal(err)
	}
	defer work.Close()
	home, err := OpenSQLiteStore(dir, "Home")
	if err != nil {
		t.Fatal(err)
	}
	defer home.Close()

	// When each namespace gets a different value for the same key
	if err := work.Set("Alice", "5551111111"); err != nil {
		t.Fatal(err)
	}
	if err := home.Set("Alice", "5552222222"); err != nil {
		t.Fatal(err)
	}
	if err := home.Set("Bob", "5553333333"); err != nil {
		t.Fatal(err)
	}

	// Then neither sees the other's pairs
	got, err := work.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"Alice": "5551111111"}, got); diff != "" {
		t.Errorf("work.GetAll() mismatch (-want +got):\n%s", diff)
	}
	if err := work.Remove("Bob"); err != nil {
		t.Fatal(err)
	}
	has, _ := home.Contains("Bob")
	if !has {
		t.Error("removing from one namespace affected another")
	}
}
