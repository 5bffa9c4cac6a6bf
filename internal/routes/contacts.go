package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/contact"
)

// RegisterContactRoutes wires the contact CRUD endpoints onto an already
// authenticated router group.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
