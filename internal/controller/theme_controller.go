package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
)

type ThemeController struct {
	themes *repository.ThemeRepository
}

func NewThemeController(themes *repository.ThemeRepository) *ThemeController {
	return &ThemeController{themes: themes}
}

func (ctl *ThemeController) ListThemes(c *fiber.Ctx) error {
	return listResponse(c, ctl.themes.List(c.UserContext(), boolQuery(c, "featured")))
}

// GetThemeBySlug returns the theme with its destinations and activities.
func (ctl *ThemeController) GetThemeBySlug(c *fiber.Ctx) error {
	theme, err := ctl.themes.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err, "Could not fetch theme")
	}
	return ctl.detail(c, theme)
}

func (ctl *ThemeController) GetTheme(c *fiber.Ctx) error {
	theme, err := ctl.themes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch theme")
	}
	return ctl.detail(c, theme)
}

func (ctl *ThemeController) CreateTheme(c *fiber.Ctx) error {
	input := new(model.ThemeInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	theme, err := input.ToModel()
	if err != nil {
		return fail(c, err, "Invalid input")
	}

	ctx := c.UserContext()
	if err := ctl.themes.Create(ctx, theme); err != nil {
		return fail(c, err, "Could not create theme")
	}
	if err := ctl.themes.SetDestinations(ctx, theme.ID, input.DestinationIDs); err != nil {
		return fail(c, err, "Could not save theme destinations")
	}
	if err := ctl.themes.SetActivities(ctx, theme.ID, input.ActivityIDs); err != nil {
		return fail(c, err, "Could not save theme activities")
	}

	c.Status(fiber.StatusCreated)
	return ctl.detail(c, theme)
}

// UpdateTheme changes the supplied fields. Link lists are replaced only when
// present in the body.
func (ctl *ThemeController) UpdateTheme(c *fiber.Ctx) error {
	patch := new(model.ThemePatch)
	if err := parseBody(c, patch); err != nil {
		return fail(c, err, "Invalid input")
	}

	ctx := c.UserContext()
	id := c.Params("id")
	theme, err := ctl.themes.Update(ctx, id, model.Columns(patch))
	if err != nil {
		return fail(c, err, "Could not update theme")
	}
	if patch.DestinationIDs != nil {
		if err := ctl.themes.SetDestinations(ctx, id, *patch.DestinationIDs); err != nil {
			return fail(c, err, "Could not save theme destinations")
		}
	}
	if patch.ActivityIDs != nil {
		if err := ctl.themes.SetActivities(ctx, id, *patch.ActivityIDs); err != nil {
			return fail(c, err, "Could not save theme activities")
		}
	}
	return ctl.detail(c, theme)
}

func (ctl *ThemeController) DeleteTheme(c *fiber.Ctx) error {
	if err := ctl.themes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete theme")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ctl *ThemeController) detail(c *fiber.Ctx, theme *model.TravelTheme) error {
	detail, err := ctl.themes.Detail(c.UserContext(), theme)
	if err != nil {
		return fail(c, err, "Could not fetch theme")
	}
	return c.JSON(detail)
}
