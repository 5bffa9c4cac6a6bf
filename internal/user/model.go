package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/contactvault/contactvault/internal/apperr"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// User is a registered account. The password hash never serializes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUserInput carries registration fields before normalization.
type NewUserInput struct {
	Email    string
	Phone    string
	Password string
}

// Normalize trims both identifiers and lowercases the email.
func (in *NewUserInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

// Validate enforces the account invariants: at least one identifier must be
// present, and each present identifier must be well formed. Callers normalize
// first.
func (in NewUserInput) Validate() error {
	if in.Email == "" && in.Phone == "" {
		return apperr.Validation("Phone or Email is required")
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return apperr.Validation("Invalid email address")
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		return apperr.Validation("Invalid phone number")
	}
	return nil
}
