package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/objectstore"
	"tripnest_backend/pkg/utils/validation"
)

// uploadFolders are the folders admins may upload into; anything else lands in
// "uploads".
var uploadFolders = map[string]bool{
	"destinations":  true,
	"hotels":        true,
	"activities":    true,
	"travel_themes": true,
}

type UploadController struct {
	store objectstore.Store
}

// NewUploadController takes the configured object store; nil disables uploads.
func NewUploadController(store objectstore.Store) *UploadController {
	return &UploadController{store: store}
}

// UploadImage stores the multipart "image" file and returns its public URL.
func (ctl *UploadController) UploadImage(c *fiber.Ctx) error {
	if ctl.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image uploads are not configured",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	if err := validation.ValidateImage(validation.MetaFromHeader(file)); err != nil {
		return fail(c, err, "Invalid image")
	}

	folder := c.FormValue("folder")
	if !uploadFolders[folder] {
		folder = "uploads"
	}

	body, err := file.Open()
	if err != nil {
		return fail(c, err, "Could not read file")
	}
	defer body.Close()

	result, err := ctl.store.Upload(c.UserContext(), objectstore.Object{
		Body:        body,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Folder:      folder,
		Entity:      c.FormValue("entity"),
	})
	if err != nil {
		return fail(c, err, "Could not upload image")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     result.URL,
		"key":     result.Key,
	})
}

// DeleteImage removes an object by key or public URL.
func (ctl *UploadController) DeleteImage(c *fiber.Ctx) error {
	if ctl.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image uploads are not configured",
		})
	}

	input := struct {
		Key string `json:"key"`
	}{}
	if err := c.BodyParser(&input); err != nil || input.Key == "" {
		return fail(c, apperror.Validation("key is required"), "Invalid input")
	}

	if err := ctl.store.Delete(c.UserContext(), input.Key); err != nil {
		return fail(c, err, "Could not delete image")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateURL checks an external image URL that will be stored as is.
func (ctl *UploadController) ValidateURL(c *fiber.Ctx) error {
	input := struct {
		URL string `json:"url"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return fail(c, apperror.Validation("Invalid input"), "Invalid input")
	}
	if err := validation.ValidateImageURL(input.URL); err != nil {
		return fail(c, err, "Invalid image URL")
	}
	return c.JSON(fiber.Map{
		"valid": true,
		"url":   input.URL,
	})
}
