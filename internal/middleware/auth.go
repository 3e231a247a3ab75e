package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftpay/swiftpay/internal/auth"
	"github.com/swiftpay/swiftpay/internal/identity"
)

// PrincipalKey is the Locals key under which the authenticated principal is
// stored for downstream handlers.
const PrincipalKey = "principal"

// Auth validates the bearer token and stores the resolved principal in
// request locals. Missing, malformed or expired tokens are 401.
func Auth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		principal, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// RequireRole gates a route to an explicit allow-list of roles. There is no
// role hierarchy; each route names exactly the roles it accepts.
func RequireRole(roles ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(PrincipalKey).(auth.Principal)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "forbidden")
	}
}
