package contact

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]Contact
}

// NewMemoryRepository builds an in-memory contact store for tests and for
// running without a database in development.
func NewMemoryRepository() Repository {
	return &memoryRepository{contacts: make(map[string]Contact)}
}

func (r *memoryRepository) Create(_ context.Context, c Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[c.ID] = c
	return nil
}

func (r *memoryRepository) FindOwned(_ context.Context, id, ownerID string) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return Contact{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contacts := []Contact{}
	for _, c := range r.contacts {
		if c.OwnerID == ownerID {
			contacts = append(contacts, c)
		}
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].CreatedAt.Before(contacts[j].CreatedAt) })
	return contacts, nil
}

func (r *memoryRepository) Update(_ context.Context, c Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.contacts[c.ID]
	if !ok || existing.OwnerID != c.OwnerID {
		return ErrNotFound
	}
	r.contacts[c.ID] = c
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}
