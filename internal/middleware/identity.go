package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/auth"
)

// Identity reads the session cookie, verifies the token and attaches the
// decoded identity to the request context. Missing and invalid tokens both
// terminate the request with 401; a near-expiry token passes until the
// instant it expires.
func Identity(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.CookieName)
		if token == "" {
			return fiber.NewError(http.StatusUnauthorized, "No token provided")
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}

		c.SetUserContext(auth.WithIdentity(c.UserContext(), auth.Identity{UserID: userID}))
		return c.Next()
	}
}
