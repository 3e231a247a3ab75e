package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/auth"
)

// Handler exposes customer and admin payment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	SwiftCode     string  `json:"swift_code"`
	AccountNumber string  `json:"account_number"`
	Reference     string  `json:"reference"`
}

type paymentResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	SwiftCode     string    `json:"swift_code"`
	AccountNumber string    `json:"account_number"`
	Reference     string    `json:"reference,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toResponse(p Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Amount:        float64(p.AmountCents) / 100,
		Currency:      p.Currency,
		SwiftCode:     p.SwiftCode,
		AccountNumber: p.BeneficiaryAccount,
		Reference:     p.Reference,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toResponseList(payments []Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toResponse(p))
	}
	return out
}

// Submit records a new Pending payment for the authenticated caller.
func (h *Handler) Submit(c *fiber.Ctx) error {
	principal, ok := c.Locals("principal").(auth.Principal)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	p, err := h.service.Submit(c.UserContext(), principal.UserID, SubmitInput{
		Amount:             req.Amount,
		Currency:           req.Currency,
		SwiftCode:          req.SwiftCode,
		BeneficiaryAccount: req.AccountNumber,
		Reference:          req.Reference,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(http.StatusBadRequest, "validation_error")
		}
		return fiber.NewError(http.StatusInternalServerError, "payment submission failed")
	}

	return c.Status(http.StatusCreated).JSON(toResponse(p))
}

// ListOwn returns the authenticated caller's payment history.
func (h *Handler) ListOwn(c *fiber.Ctx) error {
	principal, ok := c.Locals("principal").(auth.Principal)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
	}
	payments, err := h.service.ListOwn(c.UserContext(), principal.UserID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "payment lookup failed")
	}
	return c.Status(http.StatusOK).JSON(toResponseList(payments))
}

// ListAll returns every payment for the admin review queue.
func (h *Handler) ListAll(c *fiber.Ctx) error {
	payments, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "payment lookup failed")
	}
	return c.Status(http.StatusOK).JSON(toResponseList(payments))
}

// Get returns one payment by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not_found")
		}
		return fiber.NewError(http.StatusInternalServerError, "payment lookup failed")
	}
	return c.Status(http.StatusOK).JSON(toResponse(p))
}

// Verify transitions a Pending payment to Verified.
func (h *Handler) Verify(c *fiber.Ctx) error {
	return h.patchStatus(c, h.service.Verify)
}

// Process transitions a Verified payment to Processed.
func (h *Handler) Process(c *fiber.Ctx) error {
	return h.patchStatus(c, h.service.Process)
}

func (h *Handler) patchStatus(c *fiber.Ctx, apply func(ctx context.Context, id string) (Payment, error)) error {
	p, err := apply(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "not_found")
		case errors.Is(err, ErrInvalidTransition):
			return fiber.NewError(http.StatusConflict, "invalid_transition")
		default:
			return fiber.NewError(http.StatusInternalServerError, "status update failed")
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(p))
}
