package contact

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/kv"
)

// Contact is a name and phone number pair. Name is the storage key.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Book stores contacts in a kv.Store keyed by normalized name.
type Book struct {
	store  kv.Store
	logger *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger used for store mutations. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBook creates a Book backed by store.
func NewBook(store kv.Store, opts ...Option) *Book {
	b := &Book{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add stores phone under the normalized name. An existing contact with the
// same name is overwritten. Invalid input leaves the store untouched.
func (b *Book) Add(name, phone string) (Contact, error) {
	if err := Validate(name, phone); err != nil {
		return Contact{}, err
	}

	c := Contact{Name: NormalizeName(name), Phone: phone}
	if err := b.store.Set(c.Name, c.Phone); err != nil {
		return Contact{}, err
	}
	b.logger.Debug("contact added", zap.String("name", c.Name))
	return c, nil
}

// Update replaces the contact stored under oldKey with the normalized newName
// and newPhone in one store write. If newName matches another existing
// contact, that contact is overwritten. A failed write leaves oldKey intact.
func (b *Book) Update(oldKey, newName, newPhone string) (Contact, error) {
	if oldKey == "" {
		return Contact{}, ErrNoSelection
	}
	if err := Validate(newName, newPhone); err != nil {
		return Contact{}, err
	}

	c := Contact{Name: NormalizeName(newName), Phone: newPhone}
	var err error
	if c.Name == oldKey {
		err = b.store.Set(c.Name, c.Phone)
	} else {
		err = b.store.Rename(oldKey, c.Name, c.Phone)
	}
	if err != nil {
		return Contact{}, err
	}
	b.logger.Debug("contact updated", zap.String("old", oldKey), zap.String("name", c.Name))
	return c, nil
}

// Delete removes the contact stored under name, or under its normalized form
// when name itself is not a key. Returns ErrNotFound if neither is present.
func (b *Book) Delete(name string) error {
	key, err := b.resolve(name)
	if err != nil {
		return err
	}
	if err := b.store.Remove(key); err != nil {
		return err
	}
	b.logger.Debug("contact deleted", zap.String("name", key))
	return nil
}

// Get returns the contact stored under name, or under its normalized form
// when name itself is not a key. Returns ErrNotFound if neither is present.
func (b *Book) Get(name string) (Contact, error) {
	key, err := b.resolve(name)
	if err != nil {
		return Contact{}, err
	}
	phone, ok, err := b.store.Get(key)
	if err != nil {
		return Contact{}, err
	}
	if !ok {
		return Contact{}, ErrNotFound
	}
	return Contact{Name: key, Phone: phone}, nil
}

// resolve returns the stored key for name. The exact key wins over the
// normalized one, so keys written by other tools stay reachable.
func (b *Book) resolve(name string) (string, error) {
	candidates := []string{name}
	if n := NormalizeName(name); n != name {
		candidates = append(candidates, n)
	}
	for _, key := range candidates {
		ok, err := b.store.Contains(key)
		if err != nil {
			return "", err
		}
		if ok {
			return key, nil
		}
	}
	return "", ErrNotFound
}

// List returns every stored contact in the store's enumeration order.
func (b *Book) List() ([]Contact, error) {
	all, err := b.store.GetAll()
	if err != nil {
		return nil, err
	}
	contacts := make([]Contact, 0, len(all))
	for name, phone := range all {
		contacts = append(contacts, Contact{Name: name, Phone: phone})
	}
	return contacts, nil
}

// SortByName orders contacts by name for display. List itself makes no
// ordering promise.
func SortByName(contacts []Contact) {
	slices.SortFunc(contacts, func(a, b Contact) int {
		return cmp.Compare(a.Name, b.Name)
	})
}
