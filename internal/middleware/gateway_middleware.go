package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayKey admits service gateway calls that carry the shared key as a bearer
// token. An empty key rejects every call.
func GatewayKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if key == "" || subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid gateway key",
			})
		}
		return c.Next()
	}
}
