package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/middleware"
	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/utils/jwt"
	"tripnest_backend/pkg/utils/validation"
)

type AuthController struct {
	profiles *repository.ProfileRepository
	tokens   *jwt.Manager
}

func NewAuthController(profiles *repository.ProfileRepository, tokens *jwt.Manager) *AuthController {
	return &AuthController{profiles: profiles, tokens: tokens}
}

// Login exchanges email and password for a session token.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	input := new(model.LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	input.Email = model.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return fail(c, err, "Invalid input")
	}

	profile, err := ctl.profiles.GetByEmail(c.UserContext(), input.Email)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return fail(c, err, "Could not sign in")
	}

	if !profile.CheckPassword(input.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := ctl.tokens.GenerateToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  profile.GetPublicProfile(),
	})
}

// GetMe returns the profile of the signed-in user.
func (ctl *AuthController) GetMe(c *fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	return c.JSON(fiber.Map{
		"user": profile.GetPublicProfile(),
	})
}
