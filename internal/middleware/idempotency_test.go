package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/swiftpay/swiftpay/internal/logging"
)

func idempotentApp(t *testing.T, calls *atomic.Int64) *fiber.App {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	app := fiber.New()
	app.Use(Idempotency(client, time.Hour, logging.Discard()))
	app.Post("/payments", func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.Status(http.StatusCreated).JSON(fiber.Map{"id": uuid.NewString()})
	})
	return app
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls atomic.Int64
	app := idempotentApp(t, &calls)

	post := func() (int, string) {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		req.Header.Set(idempotencyKeyHeader, "retry-123")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	status1, body1 := post()
	status2, body2 := post()

	if status1 != http.StatusCreated || status2 != http.StatusCreated {
		t.Fatalf("expected 201 on both attempts, got %d and %d", status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("replayed body differs: %q vs %q", body1, body2)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls.Load())
	}
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	var calls atomic.Int64
	app := idempotentApp(t, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		if _, err := app.Test(req); err != nil {
			t.Fatalf("test request: %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected handler to run twice without keys, ran %d times", calls.Load())
	}
}
