package contact

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/apperr"
	"github.com/contactvault/contactvault/internal/auth"
)

// Handler exposes the contact CRUD endpoints. All of them run behind the
// identity middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a contact HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name     Name     `json:"name"`
	Address  *Address `json:"address"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Notes    string   `json:"notes"`
	Favorite bool     `json:"favorite"`
}

// Create adds a contact owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return apperr.Auth("Unauthorized")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), identity.UserID, CreateInput{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
		Favorite: req.Favorite,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "contact": created})
}

// List returns the caller's contacts.
func (h *Handler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return apperr.Auth("Unauthorized")
	}

	contacts, err := h.service.List(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(contacts)
}

// Update applies a partial update to a contact the caller owns.
func (h *Handler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return apperr.Auth("Unauthorized")
	}

	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return apperr.Validation("Invalid request body")
	}

	updated, err := h.service.Update(c.UserContext(), c.Params("id"), identity.UserID, patch)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "contact": updated})
}

// Delete removes a contact the caller owns.
func (h *Handler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return apperr.Auth("Unauthorized")
	}

	if err := h.service.Delete(c.UserContext(), c.Params("id"), identity.UserID); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Contact deleted successfully"})
}
