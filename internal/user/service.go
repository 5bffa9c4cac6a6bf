package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/contactvault/contactvault/internal/apperr"
)

// Service manages account lifecycle: registration, credential checks and
// lookups. Hashing happens here on the write path, never as a store hook.
type Service struct {
	repo Repository
}

// NewService creates a user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the input, rejects duplicate identifiers, hashes the
// password and persists the account.
func (s *Service) Register(ctx context.Context, in NewUserInput) (User, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	if in.Password == "" {
		return User{}, apperr.Validation("Password is required")
	}

	// Duplicate check before insert; the unique indexes behind Create catch
	// the race, so both paths report the same conflict.
	if _, err := s.repo.FindByIdentifier(ctx, in.Email, in.Phone); err == nil {
		return User{}, apperr.Conflict("User already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	u := User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return User{}, apperr.Conflict("User already exists")
		}
		return User{}, err
	}

	return u, nil
}

// Authenticate looks a user up by email or phone and verifies the password.
func (s *Service) Authenticate(ctx context.Context, in NewUserInput) (User, error) {
	in.Normalize()
	if in.Email == "" && in.Phone == "" {
		return User{}, apperr.Validation("Phone or Email is required")
	}

	u, err := s.repo.FindByIdentifier(ctx, in.Email, in.Phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("User not found")
		}
		return User{}, err
	}

	if !CheckPassword(in.Password, u.PasswordHash) {
		return User{}, apperr.Auth("Invalid password")
	}

	return u, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("User not found")
		}
		return User{}, err
	}
	return u, nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
