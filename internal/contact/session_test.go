package contact

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/contactbook/internal/kv"
)

func TestSession_SubmitWhileIdleAdds(t *testing.T) {
	// Given an idle session
	store := kv.NewMemStore(nil)
	s := NewSession(NewBook(store))

	// When a contact is submitted
	c, outcome, err := s.Submit("alice", "5551234567")

	// Then it is added and the session stays idle
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if outcome != OutcomeAdded {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeAdded)
	}
	if c.Name != "Alice" {
		t.Errorf("contact name = %q, want Alice", c.Name)
	}
	if _, editing := s.Selected(); editing {
		t.Error("session should remain idle after add")
	}
}

func TestSession_SelectThenSubmitUpdates(t *testing.T) {
	// Given a session editing Alice
	store := kv.NewMemStore(map[string]string{"Alice": "5551234567"})
	s := NewSession(NewBook(store))
	s.Select("Alice")

	key, editing := s.Selected()
	if !editing || key != "Alice" {
		t.Fatalf("Selected() = (%q, %v), want (Alice, true)", key, editing)
	}

	// When the form is submitted with new values
	_, outcome, err := s.Submit("alicia", "5550000000")

	// Then the contact is replaced and the session returns to idle
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeUpdated)
	}
	all, _ := store.GetAll()
	if diff := cmp.Diff(map[string]string{"Alicia": "5550000000"}, all); diff != "" {
		t.Errorf("store mismatch (-want +got):\n%s", diff)
	}
	if _, editing := s.Selected(); editing {
		t.Error("session should be idle after a successful update")
	}
}

func TestSession_FailedUpdateKeepsSelection(t *testing.T) {
	// Given a session editing Alice
	store := kv.NewMemStore(map[string]string{"Alice": "5551234567"})
	s := NewSession(NewBook(store))
	s.Select("Alice")

	// When an invalid update is submitted
	_, _, err := s.Submit("alice", "123")

	// Then the error is returned and the selection is kept
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("Submit() error = %v, want ErrInvalidPhone", err)
	}
	if key, editing := s.Selected(); !editing || key != "Alice" {
		t.Errorf("Selected() = (%q, %v), want (Alice, true)", key, editing)
	}
}

func TestSession_SelectReplacesSelection(t *testing.T) {
	s := NewSession(NewBook(kv.NewMemStore(nil)))
	s.Select("Alice")
	s.Select("Bob")

	if key, _ := s.Selected(); key != "Bob" {
		t.Errorf("Selected() = %q, want Bob", key)
	}
}

func TestSession_CancelAndForget(t *testing.T) {
	s := NewSession(NewBook(kv.NewMemStore(nil)))

	s.Select("Alice")
	s.Cancel()
	if _, editing := s.Selected(); editing {
		t.Error("Cancel() should return to idle")
	}

	s.Select("Alice")
	s.Forget("Bob")
	if _, editing := s.Selected(); !editing {
		t.Error("Forget() of another key should keep the selection")
	}
	s.Forget("Alice")
	if _, editing := s.Selected(); editing {
		t.Error("Forget() of the selected key should return to idle")
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeAdded.String() != "added" || OutcomeUpdated.String() != "updated" {
		t.Errorf("Outcome strings = %q, %q", OutcomeAdded, OutcomeUpdated)
	}
	if Outcome(99).String() != "unknown" {
		t.Errorf("Outcome(99) = %q", Outcome(99))
	}
}
