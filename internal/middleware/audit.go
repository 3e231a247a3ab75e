package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit emits a structured log line per request. Responses that indicate a
// rejected credential or role check (401/403) are escalated to warnings, as
// are suspiciously fast non-GET requests; DELETE and PUT are always noted.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		duration := time.Since(start)
		requestID, _ := c.Locals(requestIDHeader).(string)

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}
		if requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		switch {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			logger.Warn("suspicious request", attrs...)
		case duration < 10*time.Millisecond && c.Method() != fiber.MethodGet && status < http.StatusBadRequest:
			logger.Warn("suspiciously fast request", attrs...)
		case c.Method() == fiber.MethodDelete || c.Method() == fiber.MethodPut:
			logger.Info("high-risk method used", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}

		return err
	}
}
