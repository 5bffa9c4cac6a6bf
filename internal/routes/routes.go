package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/contactvault/contactvault/internal/auth"
	"github.com/contactvault/contactvault/internal/config"
	"github.com/contactvault/contactvault/internal/contact"
	"github.com/contactvault/contactvault/internal/middleware"
	"github.com/contactvault/contactvault/internal/user"
)

const idempotencyTTL = 24 * time.Hour

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the repositories fall back to in-memory implementations; that mode is
// rejected outside development.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Cfg.FrontendURL,
		AllowCredentials: true,
	}))

	// Health
	RegisterHealthRoutes(app, d)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})

	// Stores, services and handlers
	var userRepo user.Repository
	var contactRepo contact.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		contactRepo = contact.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
	}

	tokens := auth.NewTokens(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	userHandler := user.NewHandler(user.NewService(userRepo), tokens, d.Cfg.TokenTTL)
	contactHandler := contact.NewHandler(contact.NewService(contactRepo))

	identity := middleware.Identity(tokens)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)

	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterUserRoutes(api, userHandler, identity, rateLimiter)

	contactsGroup := api.Group("/contacts", identity)
	if d.Cache != nil {
		contactsGroup.Use(middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger))
	}
	RegisterContactRoutes(contactsGroup, contactHandler)

	return nil
}
