package store

import (
	"context"
	"strings"
	"sync"

	"contact-importer/internal/contact"
)

// MemStore is an in-memory ContactStore used in tests and local runs.
// It enforces the same per-owner email uniqueness as the Postgres
// schema.
type MemStore struct {
	mu       sync.Mutex
	nextID   int64
	Contacts []contact.Contact
	byKey    map[string]struct{}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{byKey: make(map[string]struct{})}
}

// CreateContact stores a copy of c, rejecting duplicate
// (email, owner) pairs with a conflict field error.
func (s *MemStore) CreateContact(_ context.Context, c *contact.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(c.Email) + "|" + c.OwnerID.String()
	if _, exists := s.byKey[key]; exists {
		return contact.Conflict(contact.FieldEmail)
	}

	s.nextID++
	c.ID = s.nextID
	s.byKey[key] = struct{}{}
	s.Contacts = append(s.Contacts, *c)
	return nil
}

// MemErrorLog collects rejection entries in memory.
type MemErrorLog struct {
	mu      sync.Mutex
	Entries []MemErrorEntry
}

// MemErrorEntry is one captured rejection.
type MemErrorEntry struct {
	Data    map[string]string
	Message string
}

// NewMemErrorLog creates an empty in-memory error log.
func NewMemErrorLog() *MemErrorLog {
	return &MemErrorLog{}
}

// Append records one rejected row.
func (l *MemErrorLog) Append(_ context.Context, data map[string]string, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	l.Entries = append(l.Entries, MemErrorEntry{Data: copied, Message: message})
	return nil
}
