package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/swiftpay/swiftpay/internal/auth"
	"github.com/swiftpay/swiftpay/internal/config"
	"github.com/swiftpay/swiftpay/internal/identity"
	"github.com/swiftpay/swiftpay/internal/middleware"
	"github.com/swiftpay/swiftpay/internal/notification"
	"github.com/swiftpay/swiftpay/internal/payment"
	"github.com/swiftpay/swiftpay/internal/ratelimit"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Notifier notification.Notifier
	Logger   *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.HPP())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Stores: Postgres in deployed environments, in-memory for dev runs.
	var userRepo identity.Repository
	var paymentRepo payment.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		paymentRepo = payment.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		paymentRepo = payment.NewMemoryRepository()
	}

	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	// Services and handlers
	identitySvc := identity.NewService(userRepo)
	tokens := auth.NewTokenManager(d.Cfg.JWTSecret, d.Cfg.JWTIssuer, d.Cfg.JWTAudience, d.Cfg.TokenTTL)
	authSvc := auth.NewService(identitySvc, tokens)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	paymentSvc := payment.NewService(paymentRepo, notifier)
	paymentHandler := payment.NewHandler(paymentSvc)

	if d.Cfg.AdminEmail != "" {
		if err := identitySvc.EnsureAdmin(context.Background(), d.Cfg.AdminEmail, d.Cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin account: %w", err)
		}
	}

	// Fixed-window limiters: login 5/5min, register 3/10min by default.
	var loginLimiter, registerLimiter ratelimit.Limiter
	if d.Cache != nil {
		loginLimiter = ratelimit.NewRedisLimiter(d.Cache, d.Cfg.LoginLimit, d.Cfg.LoginWindow)
		registerLimiter = ratelimit.NewRedisLimiter(d.Cache, d.Cfg.RegisterLimit, d.Cfg.RegisterWindow)
	} else {
		loginLimiter = ratelimit.NewMemoryLimiter(d.Cfg.LoginLimit, d.Cfg.LoginWindow)
		registerLimiter = ratelimit.NewMemoryLimiter(d.Cfg.RegisterLimit, d.Cfg.RegisterWindow)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler, RateLimiters{
		Login:    middleware.RateLimit("login", loginLimiter, d.Logger),
		Register: middleware.RateLimit("register", registerLimiter, d.Logger),
	})

	// Protected routes
	authed := api.Group("", middleware.Auth(tokens))
	RegisterPaymentRoutes(authed, paymentHandler)
	RegisterAdminRoutes(authed, paymentHandler)

	return nil
}
