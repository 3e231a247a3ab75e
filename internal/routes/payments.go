package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/payment"
)

// RegisterPaymentRoutes wires customer payment endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payment.Handler) {
	r.Post("/payments", h.Submit)
	r.Get("/payments", h.ListOwn)
}
