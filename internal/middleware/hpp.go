package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// HPP mitigates HTTP parameter pollution: when a query parameter appears
// more than once, only its first value survives.
func HPP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := c.Request().URI().QueryArgs()

		seen := make(map[string]string)
		order := []string{}
		args.VisitAll(func(key, value []byte) {
			k := string(key)
			if _, dup := seen[k]; dup {
				return
			}
			seen[k] = string(value)
			order = append(order, k)
		})

		args.Reset()
		for _, k := range order {
			args.Set(k, seen[k])
		}

		return c.Next()
	}
}
