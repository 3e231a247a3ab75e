package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/ratelimit"
)

// RateLimit rejects over-quota requests before any handler work happens.
// The window key combines the operation name with the client identity: the
// request's email field when present, otherwise the peer IP.
func RateLimit(op string, limiter ratelimit.Limiter, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		var req struct {
			Email string `json:"email"`
		}
		_ = c.BodyParser(&req)
		client := strings.TrimSpace(req.Email)
		if client == "" {
			client = c.IP()
		}

		allowed, err := limiter.Allow(c.UserContext(), op+":"+client)
		if err != nil {
			// fail-open on limiter backend errors
			logger.Warn("rate limiter unavailable", "op", op, "error", err)
			return c.Next()
		}
		if !allowed {
			return fiber.NewError(http.StatusTooManyRequests, "rate_limited")
		}
		return c.Next()
	}
}
