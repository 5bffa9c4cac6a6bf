package routes_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/contactvault/contactvault/internal/config"
	"github.com/contactvault/contactvault/internal/logging"
	"github.com/contactvault/contactvault/internal/server"
)

func testConfig() config.Config {
	return config.Config{
		AppName:     "ContactVault",
		AppEnv:      "development",
		Port:        "0",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		FrontendURL: "http://localhost:5173",
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv, err := server.New(testConfig(), nil, nil, logging.Discard())
	require.NoError(t, err)
	return srv.App()
}

type session struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func (s *session) do(method, path, body string) (*http.Response, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	resp, err := s.app.Test(req)
	require.NoError(s.t, err)

	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			s.cookie = c
		}
	}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestRegisterLoginAndContactFlow(t *testing.T) {
	app := newTestApp(t)
	alice := &session{t: t, app: app}

	resp, body := alice.do(fiber.MethodPost, "/api/users/register",
		`{"email":"a@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])
	u := body["user"].(map[string]any)
	require.Equal(t, "a@x.com", u["email"])
	_, hashExposed := u["passwordHash"]
	require.False(t, hashExposed, "password hash must not serialize")
	require.NotNil(t, alice.cookie, "register must set the session cookie")
	require.True(t, alice.cookie.HttpOnly)

	// A fresh session can log in with the same credentials.
	alice = &session{t: t, app: app}
	resp, _ = alice.do(fiber.MethodPost, "/api/users/login",
		`{"email":"a@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, alice.cookie)

	resp, body = alice.do(fiber.MethodGet, "/api/users/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "a@x.com", body["user"].(map[string]any)["email"])

	resp, body = alice.do(fiber.MethodPost, "/api/contacts",
		`{"name":{"first":"Jo"},"phone":"+1234567","email":"jo@x.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := body["contact"].(map[string]any)
	contactID := created["id"].(string)
	require.Equal(t, "Jo", created["name"].(map[string]any)["first"])

	resp, _ = alice.do(fiber.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second user sees none of alice's contacts and cannot touch them.
	bob := &session{t: t, app: app}
	resp, _ = bob.do(fiber.MethodPost, "/api/users/register",
		`{"phone":"+2345678","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/api/contacts", nil)
	req.AddCookie(bob.cookie)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(listResp.Body)
	listResp.Body.Close()
	var bobContacts []any
	require.NoError(t, json.Unmarshal(raw, &bobContacts))
	require.Empty(t, bobContacts)

	resp, _ = bob.do(fiber.MethodPatch, "/api/contacts/"+contactID, `{"favorite":true}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = bob.do(fiber.MethodDelete, "/api/contacts/"+contactID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner can patch and delete.
	resp, body = alice.do(fiber.MethodPatch, "/api/contacts/"+contactID, `{"favorite":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["contact"].(map[string]any)["favorite"])

	resp, body = alice.do(fiber.MethodDelete, "/api/contacts/"+contactID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Contact deleted successfully", body["message"])

	resp, _ = alice.do(fiber.MethodDelete, "/api/contacts/"+contactID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, body := s.do(fiber.MethodPost, "/api/users/register", `{"password":"secret123"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Phone or Email is required", body["error"])

	resp, _ = s.do(fiber.MethodPost, "/api/users/register", `{"email":"dup@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = s.do(fiber.MethodPost, "/api/users/register", `{"email":"dup@x.com","password":"other456"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "User already exists", body["error"])
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, _ := s.do(fiber.MethodPost, "/api/users/login", `{"email":"ghost@x.com","password":"pw"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(fiber.MethodPost, "/api/users/register", `{"email":"real@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	s.cookie = nil
	resp, body := s.do(fiber.MethodPost, "/api/users/login", `{"email":"real@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid password", body["error"])
}

func TestContactsRequireAuth(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, body := s.do(fiber.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "No token provided", body["error"])
}

func TestContactMissingFields(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, _ := s.do(fiber.MethodPost, "/api/users/register", `{"email":"c@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(fiber.MethodPost, "/api/contacts", `{"name":{"first":"Jo"},"email":"jo@x.com"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Name, Phone or Email is required", body["error"])

	// No record was created by the rejected request.
	req := httptest.NewRequest(fiber.MethodGet, "/api/contacts", nil)
	req.AddCookie(s.cookie)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(listResp.Body)
	listResp.Body.Close()
	var contacts []any
	require.NoError(t, json.Unmarshal(raw, &contacts))
	require.Empty(t, contacts)
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, _ := s.do(fiber.MethodPost, "/api/users/register", `{"email":"l@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(fiber.MethodPost, "/api/users/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Logged out successfully", body["message"])
	require.Empty(t, s.cookie.Value, "logout must clear the cookie value")
	require.True(t, s.cookie.Expires.Before(time.Now()), "cleared cookie must already be expired")
}

func TestUserListingOmitsHashes(t *testing.T) {
	app := newTestApp(t)
	s := &session{t: t, app: app}

	resp, _ := s.do(fiber.MethodPost, "/api/users/register", `{"email":"list@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/api/users/", nil)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(listResp.Body)
	listResp.Body.Close()

	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
	require.NotContains(t, string(raw), "secret123")
	require.NotContains(t, string(raw), "$2a$") // bcrypt prefix
}

func TestHealthzWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	srv, err := server.New(testConfig(), nil, cache, logging.Discard())
	require.NoError(t, err)
	app := srv.App()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mr.Close()
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
