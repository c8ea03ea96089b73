package contact

// Outcome reports which path a Session submit took.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Session tracks the pending edit: either idle, or editing a selected
// contact. A submit while editing updates the selection; a submit while idle
// adds a new contact.
type Session struct {
	book     *Book
	selected string
	editing  bool
}

// NewSession creates an idle Session over book.
func NewSession(book *Book) *Session {
	return &Session{book: book}
}

// Select marks the contact stored under key as the pending edit, replacing
// any previous selection.
func (s *Session) Select(key string) {
	s.selected = key
	s.editing = true
}

// Selected returns the key being edited and whether an edit is pending.
func (s *Session) Selected() (string, bool) {
	return s.selected, s.editing
}

// Cancel drops the pending edit without touching the store.
func (s *Session) Cancel() {
	s.selected = ""
	s.editing = false
}

// Submit adds or updates depending on the pending edit. A successful update
// returns the session to idle; any failure leaves the state unchanged.
func (s *Session) Submit(name, phone string) (Contact, Outcome, error) {
	if !s.editing {
		c, err := s.book.Add(name, phone)
		return c, OutcomeAdded, err
	}

	c, err := s.book.Update(s.selected, name, phone)
	if err != nil {
		return Contact{}, OutcomeUpdated, err
	}
	s.Cancel()
	return c, OutcomeUpdated, nil
}

// Forget clears the pending edit if it refers to key. Front-ends call it
// after deleting a contact so a later submit does not resurrect a stale key.
func (s *Session) Forget(key string) {
	if s.editing && s.selected == key {
		s.Cancel()
	}
}
