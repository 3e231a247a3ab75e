package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/logging"
	"github.com/swiftpay/swiftpay/internal/ratelimit"
)

func TestRateLimitRejectsBeforeHandler(t *testing.T) {
	var handlerCalls atomic.Int64

	limiter := ratelimit.NewMemoryLimiter(5, 5*time.Minute)
	app := fiber.New()
	app.Post("/login", RateLimit("login", limiter, logging.Discard()), func(c *fiber.Ctx) error {
		handlerCalls.Add(1)
		return c.SendStatus(http.StatusUnauthorized)
	})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		return resp.StatusCode
	}

	for i := 0; i < 5; i++ {
		if code := post(); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, code)
		}
	}

	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("6th attempt: expected 429, got %d", code)
	}
	// The rejected request never reached the handler.
	if got := handlerCalls.Load(); got != 5 {
		t.Fatalf("expected 5 handler invocations, got %d", got)
	}
}

func TestRateLimitKeysPerClient(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute)
	app := fiber.New()
	app.Post("/login", RateLimit("login", limiter, logging.Discard()), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	post := func(email string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"`+email+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		return resp.StatusCode
	}

	if code := post("a@example.com"); code != http.StatusOK {
		t.Fatalf("first client: expected 200, got %d", code)
	}
	if code := post("a@example.com"); code != http.StatusTooManyRequests {
		t.Fatalf("first client repeat: expected 429, got %d", code)
	}
	if code := post("b@example.com"); code != http.StatusOK {
		t.Fatalf("second client: expected 200, got %d", code)
	}
}
