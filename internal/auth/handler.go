package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/identity"
)

// Handler exposes registration and login endpoints.
type Handler struct {
	ids *identity.Service
	svc *Service
}

// NewHandler builds the auth HTTP handler.
func NewHandler(ids *identity.Service, svc *Service) *Handler {
	return &Handler{ids: ids, svc: svc}
}

type registerRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

type registerResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
}

// Register creates a new account holder with the User role.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	user, err := h.ids.Register(c.UserContext(), identity.RegisterInput{
		Email:         req.Email,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrValidation):
			return fiber.NewError(http.StatusBadRequest, "validation_error")
		case errors.Is(err, identity.ErrEmailTaken):
			return fiber.NewError(http.StatusConflict, "email_taken")
		default:
			return fiber.NewError(http.StatusInternalServerError, "registration failed")
		}
	}

	return c.Status(http.StatusCreated).JSON(registerResponse{ID: user.ID, AccountNumber: user.AccountNumber})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a signed access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	result, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "invalid_credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, "login failed")
	}

	return c.Status(http.StatusOK).JSON(result)
}
