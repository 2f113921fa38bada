package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/inquiry"
	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
)

// CatalogController serves destinations, hotels and activities to the public site
// and their CRUD to the admin panel.
type CatalogController struct {
	repos     repository.Repositories
	inquiries *inquiry.Service
}

func NewCatalogController(repos repository.Repositories, inquiries *inquiry.Service) *CatalogController {
	return &CatalogController{repos: repos, inquiries: inquiries}
}

// Destinations

func (ctl *CatalogController) ListDestinations(c *fiber.Ctx) error {
	filter := repository.DestinationFilter{
		Category: c.Query("category"),
		Featured: boolQuery(c, "featured"),
	}
	if q := c.Query("q"); q != "" {
		return listResponse(c, ctl.repos.Destinations.Search(c.UserContext(), q, filter))
	}
	return listResponse(c, ctl.repos.Destinations.List(c.UserContext(), filter))
}

func (ctl *CatalogController) GetDestination(c *fiber.Ctx) error {
	destination, err := ctl.repos.Destinations.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch destination")
	}
	return c.JSON(destination)
}

// GetPackage returns a destination with the hotels and activities it can be
// combined with.
func (ctl *CatalogController) GetPackage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	destination, err := ctl.repos.Destinations.Get(ctx, c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch package")
	}
	return c.JSON(fiber.Map{
		"destination": destination,
		"hotels":      ctl.repos.Hotels.List(ctx, repository.HotelFilter{DestinationID: destination.ID}),
		"activities":  ctl.repos.Activities.List(ctx, repository.ActivityFilter{DestinationID: destination.ID}),
		"total":       destination.Price,
	})
}

// QuotePackage prices a selection without recording it.
func (ctl *CatalogController) QuotePackage(c *fiber.Ctx) error {
	input := new(model.QuoteInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	composer, err := ctl.inquiries.Compose(c.UserContext(), c.Params("id"), input.HotelIDs, input.ActivityIDs)
	if err != nil {
		return fail(c, err, "Could not price package")
	}
	return c.JSON(fiber.Map{
		"total":          composer.Total(),
		"selected_items": composer.SelectedItems(),
		"hotel_ids":      composer.HotelIDs(),
		"activity_ids":   composer.ActivityIDs(),
	})
}

func (ctl *CatalogController) CreateDestination(c *fiber.Ctx) error {
	input := new(model.DestinationInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	destination, err := input.ToModel()
	if err != nil {
		return fail(c, err, "Invalid input")
	}
	if err := ctl.repos.Destinations.Create(c.UserContext(), destination); err != nil {
		return fail(c, err, "Could not create destination")
	}
	return c.Status(fiber.StatusCreated).JSON(destination)
}

func (ctl *CatalogController) UpdateDestination(c *fiber.Ctx) error {
	patch := new(model.DestinationPatch)
	if err := parseBody(c, patch); err != nil {
		return fail(c, err, "Invalid input")
	}
	destination, err := ctl.repos.Destinations.Update(c.UserContext(), c.Params("id"), model.Columns(patch))
	if err != nil {
		return fail(c, err, "Could not update destination")
	}
	return c.JSON(destination)
}

func (ctl *CatalogController) DeleteDestination(c *fiber.Ctx) error {
	if err := ctl.repos.Destinations.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete destination")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Hotels

func (ctl *CatalogController) ListHotels(c *fiber.Ctx) error {
	ctx := c.UserContext()
	hotels := ctl.repos.Hotels.List(ctx, repository.HotelFilter{
		DestinationID: c.Query("destination_id"),
		Featured:      boolQuery(c, "featured"),
	})
	return listResponse(c, ctl.repos.Hotels.WithDestinationNames(hotels, ctl.repos.Destinations.ByID(ctx)))
}

func (ctl *CatalogController) GetHotel(c *fiber.Ctx) error {
	hotel, err := ctl.repos.Hotels.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch hotel")
	}
	return c.JSON(hotel)
}

func (ctl *CatalogController) CreateHotel(c *fiber.Ctx) error {
	input := new(model.HotelInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	hotel, err := input.ToModel()
	if err != nil {
		return fail(c, err, "Invalid input")
	}
	if err := ctl.repos.Hotels.Create(c.UserContext(), hotel); err != nil {
		return fail(c, err, "Could not create hotel")
	}
	return c.Status(fiber.StatusCreated).JSON(hotel)
}

func (ctl *CatalogController) UpdateHotel(c *fiber.Ctx) error {
	patch := new(model.HotelPatch)
	if err := parseBody(c, patch); err != nil {
		return fail(c, err, "Invalid input")
	}
	hotel, err := ctl.repos.Hotels.Update(c.UserContext(), c.Params("id"), model.Columns(patch))
	if err != nil {
		return fail(c, err, "Could not update hotel")
	}
	return c.JSON(hotel)
}

func (ctl *CatalogController) DeleteHotel(c *fiber.Ctx) error {
	if err := ctl.repos.Hotels.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete hotel")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activities

func (ctl *CatalogController) ListActivities(c *fiber.Ctx) error {
	filter := repository.ActivityFilter{
		DestinationID: c.Query("destination_id"),
		Category:      c.Query("category"),
	}
	if q := c.Query("q"); q != "" {
		return listResponse(c, ctl.repos.Activities.Search(c.UserContext(), q, filter))
	}
	return listResponse(c, ctl.repos.Activities.List(c.UserContext(), filter))
}

func (ctl *CatalogController) GetActivity(c *fiber.Ctx) error {
	activity, err := ctl.repos.Activities.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch activity")
	}
	return c.JSON(activity)
}

func (ctl *CatalogController) CreateActivity(c *fiber.Ctx) error {
	input := new(model.ActivityInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	activity, err := input.ToModel()
	if err != nil {
		return fail(c, err, "Invalid input")
	}
	if err := ctl.repos.Activities.Create(c.UserContext(), activity); err != nil {
		return fail(c, err, "Could not create activity")
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (ctl *CatalogController) UpdateActivity(c *fiber.Ctx) error {
	patch := new(model.ActivityPatch)
	if err := parseBody(c, patch); err != nil {
		return fail(c, err, "Invalid input")
	}
	activity, err := ctl.repos.Activities.Update(c.UserContext(), c.Params("id"), model.Columns(patch))
	if err != nil {
		return fail(c, err, "Could not update activity")
	}
	return c.JSON(activity)
}

func (ctl *CatalogController) DeleteActivity(c *fiber.Ctx) error {
	if err := ctl.repos.Activities.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete activity")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
