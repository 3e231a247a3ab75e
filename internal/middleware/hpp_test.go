package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHPPKeepsFirstValue(t *testing.T) {
	app := fiber.New()
	app.Use(HPP())
	app.Get("/search", func(c *fiber.Ctx) error {
		if got := len(c.Context().QueryArgs().PeekMulti("q")); got != 1 {
			t.Errorf("expected single value for q, got %d", got)
		}
		return c.SendString(c.Query("q"))
	})

	req := httptest.NewRequest(http.MethodGet, "/search?q=first&q=second&page=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "first" {
		t.Fatalf("expected first value to win, got %q", body)
	}
}
