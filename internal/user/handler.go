package user

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/apperr"
	"github.com/contactvault/contactvault/internal/auth"
)

// Handler exposes the account endpoints and owns session cookie handling.
type Handler struct {
	service *Service
	tokens  *auth.Tokens
	ttl     time.Duration
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service, tokens *auth.Tokens, ttl time.Duration) *Handler {
	return &Handler{service: service, tokens: tokens, ttl: ttl}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates an account, signs the caller in and sets the session cookie.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	u, err := h.service.Register(c.UserContext(), NewUserInput{Email: req.Email, Phone: req.Phone, Password: req.Password})
	if err != nil {
		return err
	}

	if err := h.setSessionCookie(c, u.ID); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "user": u})
}

// Login verifies credentials and sets the session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	u, err := h.service.Authenticate(c.UserContext(), NewUserInput{Email: req.Email, Phone: req.Phone, Password: req.Password})
	if err != nil {
		return err
	}

	if err := h.setSessionCookie(c, u.ID); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "user": u})
}

// Me returns the authenticated caller's account.
func (h *Handler) Me(c *fiber.Ctx) error {
	id, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return apperr.Auth("Unauthorized")
	}

	u, err := h.service.Get(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"user": u})
}

// Logout clears the session cookie. It always succeeds.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

// List returns every account. Password hashes never serialize.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(users)
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, userID string) error {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
