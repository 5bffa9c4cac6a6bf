package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/user"
)

// RegisterUserRoutes wires the account endpoints. Listing and the
// register/login pair are public; me and logout sit behind the identity
// middleware.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, identity fiber.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/users")
	group.Get("/", h.List)
	group.Post("/register", h.Register)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Get("/me", identity, h.Me)
	group.Post("/logout", identity, h.Logout)
}
