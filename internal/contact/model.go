package contact

import (
	"regexp"
	"strings"
	"time"

	"github.com/contactvault/contactvault/internal/apperr"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
)

// Name is a contact's structured name; only the first name is required.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last,omitempty"`
}

// Address is an optional structured postal address.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Contact is a record owned by exactly one user. OwnerID is set at creation
// and immutable; every store operation filters by it.
type Contact struct {
	ID        string    `json:"id"`
	Name      Name      `json:"name"`
	Address   *Address  `json:"address,omitempty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Favorite  bool      `json:"favorite"`
	OwnerID   string    `json:"belongsTo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims free-form fields and lowercases the email.
func (c *Contact) Normalize() {
	c.Name.First = strings.TrimSpace(c.Name.First)
	c.Name.Last = strings.TrimSpace(c.Name.Last)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
}

// Validate enforces the contact invariants on the write path.
func (c Contact) Validate() error {
	if c.Name.First == "" || c.Phone == "" || c.Email == "" {
		return apperr.Validation("Name, Phone or Email is required")
	}
	if !phonePattern.MatchString(c.Phone) {
		return apperr.Validation("Invalid phone number")
	}
	if !emailPattern.MatchString(c.Email) {
		return apperr.Validation("Invalid email address")
	}
	return nil
}

// Patch carries a partial update; nil fields stay untouched.
type Patch struct {
	Name     *Name    `json:"name"`
	Address  *Address `json:"address"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	Notes    *string  `json:"notes"`
	Favorite *bool    `json:"favorite"`
}

// Apply overlays the patch onto the contact. Ownership is never patchable.
func (p Patch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Address != nil {
		c.Address = p.Address
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Favorite != nil {
		c.Favorite = *p.Favorite
	}
}
