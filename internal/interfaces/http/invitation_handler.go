package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/wedding_card/internal/application"
)

type InvitationHandler struct {
	service *application.InvitationService
}

func NewInvitationHandler(service *application.InvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

func (h *InvitationHandler) GetInvitation(c *fiber.Ctx) error {
	return c.JSON(h.service.Get())
}
