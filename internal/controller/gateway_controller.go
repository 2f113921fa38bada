package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
)

// GatewayController answers the envelopes that RemoteStore sends.
type GatewayController struct {
	gateway store.Gateway
}

func NewGatewayController(gateway store.Gateway) *GatewayController {
	return &GatewayController{gateway: gateway}
}

func (ctl *GatewayController) Handle(c *fiber.Ctx) error {
	var req store.GatewayRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperror.Validation("Invalid envelope"), "Invalid envelope")
	}

	result, err := ctl.gateway.Handle(c.UserContext(), store.Collection(c.Params("collection")), req)
	if err != nil {
		return fail(c, err, "Gateway call failed")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fail(c, err, "Could not encode result")
	}
	return c.JSON(store.GatewayResponse{Data: data})
}
