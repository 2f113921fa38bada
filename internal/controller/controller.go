// Package controller holds the Fiber handlers of the public site and the admin panel.
package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/utils/validation"
)

// fail writes err as {"error": message} with the status of its code. Unknown
// errors are logged and reported with a generic message.
func fail(c *fiber.Ctx, err error, fallback string) error {
	status := apperror.HTTPStatus(err)
	if apperror.CodeOf(err) == apperror.CodeUnknown {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": fallback,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseBody decodes the JSON body into v and validates it.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return apperror.Validation("Invalid input")
	}
	return validation.Struct(v)
}

func listResponse[T any](c *fiber.Ctx, data []T) error {
	if data == nil {
		data = []T{}
	}
	return c.JSON(fiber.Map{
		"data":  data,
		"total": len(data),
	})
}

// boolQuery reads an optional boolean query parameter; absent or malformed
// values mean no constraint.
func boolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
