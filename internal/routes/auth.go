package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/auth"
)

// RateLimiters carries the per-operation limiter handlers for auth routes.
type RateLimiters struct {
	Login    fiber.Handler
	Register fiber.Handler
}

// RegisterAuthRoutes wires registration and login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, limiters RateLimiters) {
	group := r.Group("/auth")
	group.Post("/register", limiters.Register, h.Register)
	group.Post("/login", limiters.Login, h.Login)
}
