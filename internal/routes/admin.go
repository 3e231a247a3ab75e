package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/identity"
	"github.com/swiftpay/swiftpay/internal/middleware"
	"github.com/swiftpay/swiftpay/internal/payment"
)

// RegisterAdminRoutes wires the admin payment queue. Every route requires
// the Admin role; Employee and User tokens are rejected with 403.
func RegisterAdminRoutes(r fiber.Router, h *payment.Handler) {
	admin := r.Group("/admin", middleware.RequireRole(identity.RoleAdmin))
	admin.Get("/payments", h.ListAll)
	admin.Get("/payments/:id", h.Get)
	admin.Patch("/payments/:id/verify", h.Verify)
	admin.Patch("/payments/:id/process", h.Process)
}
