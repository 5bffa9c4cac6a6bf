package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contactvault/contactvault/internal/auth"
)

func identityApp(tokens *auth.Tokens) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Identity(tokens), func(c *fiber.Ctx) error {
		id, ok := auth.IdentityFromContext(c.UserContext())
		if !ok {
			return fiber.NewError(http.StatusInternalServerError, "identity missing from context")
		}
		return c.SendString(id.UserID)
	})
	return app
}

func TestIdentityRejectsMissingCookie(t *testing.T) {
	app := identityApp(auth.NewTokens("secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestIdentityRejectsInvalidToken(t *testing.T) {
	app := identityApp(auth.NewTokens("secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestIdentityRejectsExpiredToken(t *testing.T) {
	expired := auth.NewTokens("secret", -time.Minute)
	tok, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := identityApp(auth.NewTokens("secret", time.Hour))
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestIdentityAttachesUser(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	tok, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := identityApp(tokens)
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "user-42" {
		t.Fatalf("expected user-42 in context, got %q", body)
	}
}
