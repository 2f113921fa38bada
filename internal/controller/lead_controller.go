package controller

import (
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/inquiry"
	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
)

type LeadController struct {
	leads     *repository.LeadRepository
	inquiries *inquiry.Service
}

func NewLeadController(leads *repository.LeadRepository, inquiries *inquiry.Service) *LeadController {
	return &LeadController{leads: leads, inquiries: inquiries}
}

// CreateInquiry records a booking inquiry from the public site.
func (ctl *LeadController) CreateInquiry(c *fiber.Ctx) error {
	input := new(model.InquiryInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}

	lead, err := ctl.inquiries.Submit(c.UserContext(), *input)
	if err != nil {
		return fail(c, err, "Could not send your inquiry")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully. Our team will contact you soon.",
		"lead":    lead,
	})
}

// CreateContact records a message from the contact page.
func (ctl *LeadController) CreateContact(c *fiber.Ctx) error {
	input := new(model.ContactInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid input")
	}

	lead, err := ctl.inquiries.Contact(c.UserContext(), *input)
	if err != nil {
		return fail(c, err, "Could not send your message")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent. We'll get back to you within 24 hours.",
		"lead":    lead,
	})
}

func (ctl *LeadController) ListLeads(c *fiber.Ctx) error {
	return listResponse(c, ctl.leads.List(c.UserContext(), repository.LeadFilter{
		Status:   model.LeadStatus(c.Query("status")),
		Category: c.Query("category"),
	}))
}

func (ctl *LeadController) GetLead(c *fiber.Ctx) error {
	lead, err := ctl.leads.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Could not fetch lead")
	}
	return c.JSON(lead)
}

func (ctl *LeadController) UpdateLeadStatus(c *fiber.Ctx) error {
	input := new(model.LeadStatusInput)
	if err := parseBody(c, input); err != nil {
		return fail(c, err, "Invalid status value")
	}

	lead, err := ctl.leads.UpdateStatus(c.UserContext(), c.Params("id"), input.Status)
	if err != nil {
		return fail(c, err, "Could not update lead status")
	}

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    lead,
	})
}

func (ctl *LeadController) DeleteLead(c *fiber.Ctx) error {
	if err := ctl.leads.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err, "Could not delete lead")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
