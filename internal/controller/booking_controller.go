package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
)

type BookingController struct {
	bookings *repository.BookingRepository
}

func NewBookingController(bookings *repository.BookingRepository) *BookingController {
	return &BookingController{bookings: bookings}
}

func (ctl *BookingController) ListBookings(c *fiber.Ctx) error {
	return listResponse(c, ctl.bookings.List(c.UserContext(), repository.BookingFilter{
		Status:   model.BookingStatus(c.Query("status")),
		ItemType: model.ItemType(c.Query("item_type")),
	}))
}

func (ctl *BookingController) GetBooking(c *fiber.Ctx) error {
	booking, err := ctl.bookings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch booking")
	}
	return c.JSON(booking)
}

func (ctl *BookingController) CreateBooking(c *fiber.Ctx) error {
	input := new(model.BookingInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}
	booking, err := input.ToModel()
	if err != nil {
		return fail(c, err, "Invalid input")
	}
	if err := ctl.bookings.Create(c.UserContext(), booking); err != nil {
		return fail(c, err, "Could not create booking")
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (ctl *BookingController) UpdateBookingStatus(c *fiber.Ctx) error {
	input := new(model.BookingStatusInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid status value")
	}
	booking, err := ctl.bookings.UpdateStatus(c.UserContext(), c.Params("id"), input.Status)
	if err != nil {
		return fail(c, err, "Could not update booking status")
	}
	return c.JSON(fiber.Map{
		"message": "Booking status updated successfully",
		"booking": booking,
	})
}

func (ctl *BookingController) DeleteBooking(c *fiber.Ctx) error {
	if err := ctl.bookings.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete booking")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
