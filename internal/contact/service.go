package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/contactvault/contactvault/internal/apperr"
)

// Service implements the owner-scoped contact operations. Every lookup
// filters by both record id and the caller's identity, so another user's
// contact is indistinguishable from a missing one.
type Service struct {
	repo Repository
}

// NewService creates a contact service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields a caller may set on a new contact.
type CreateInput struct {
	Name     Name
	Address  *Address
	Phone    string
	Email    string
	Notes    string
	Favorite bool
}

// Create validates the input and persists a contact owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Contact, error) {
	now := time.Now().UTC()
	c := Contact{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Notes:     in.Notes,
		Favorite:  in.Favorite,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// List returns the caller's contacts.
func (s *Service) List(ctx context.Context, ownerID string) ([]Contact, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update confirms ownership, overlays the patch and persists the result.
func (s *Service) Update(ctx context.Context, id, ownerID string, patch Patch) (Contact, error) {
	c, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Contact{}, apperr.NotFound("Contact not found")
		}
		return Contact{}, err
	}

	patch.Apply(&c)
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Contact{}, apperr.NotFound("Contact not found")
		}
		return Contact{}, err
	}
	return c, nil
}

// Delete confirms ownership and removes the contact.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Contact not found")
		}
		return err
	}
	return nil
}
