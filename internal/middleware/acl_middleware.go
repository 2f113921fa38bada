package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/utils/jwt"
)

const (
	LoginRoute = "/admin/login"

	LocalClaims  = "claims"
	LocalProfile = "profile"
)

// AuthMiddleware requires a valid bearer token and resolves its profile.
func AuthMiddleware(tokens *jwt.Manager, profiles *repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := authenticate(c, tokens, profiles); !ok {
			return err
		}
		return c.Next()
	}
}

// AdminGuard lets through only profiles whose role is admin. The role is read
// from the stored profile, not from the token.
func AdminGuard(tokens *jwt.Manager, profiles *repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := authenticate(c, tokens, profiles); !ok {
			return err
		}
		if profile := CurrentProfile(c); profile == nil || !profile.IsAdmin() {
			return denied(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// CurrentProfile returns the profile resolved by AuthMiddleware.
func CurrentProfile(c *fiber.Ctx) *model.Profile {
	profile, _ := c.Locals(LocalProfile).(*model.Profile)
	return profile
}

// authenticate stores claims and profile in locals. When it returns false the
// response has already been written.
func authenticate(c *fiber.Ctx, tokens *jwt.Manager, profiles *repository.ProfileRepository) (bool, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return false, denied(c, fiber.StatusUnauthorized, "Authentication required")
	}

	claims, err := tokens.ValidateToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		return false, denied(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	profile, err := profiles.Get(c.UserContext(), claims.ProfileID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, denied(c, fiber.StatusUnauthorized, "Profile not found")
		}
		return false, c.Status(apperror.HTTPStatus(err)).JSON(fiber.Map{
			"error": "Could not verify profile",
		})
	}

	c.Locals(LocalClaims, claims)
	c.Locals(LocalProfile, profile)
	return true, nil
}

func denied(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":    msg,
		"redirect": LoginRoute,
	})
}
