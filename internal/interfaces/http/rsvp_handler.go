package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/domain"
)

// HeaderRateLimitRemaining informa cuántas confirmaciones quedan en la ventana
const HeaderRateLimitRemaining = "X-RateLimit-Remaining"

type RSVPHandler struct {
	service *application.RSVPService
}

func NewRSVPHandler(service *application.RSVPService) *RSVPHandler {
	return &RSVPHandler{service: service}
}

// Submit acepta JSON o el formulario HTML. Al formulario se le responde con
// una redirección al borrador de Gmail.
func (h *RSVPHandler) Submit(c *fiber.Ctx) error {
	var req domain.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := h.service.Submit(c.IP(), req, printerFrom(c))
	if remaining := h.service.Remaining(c.IP()); remaining >= 0 {
		c.Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))
	}
	if err != nil {
		return errorJSON(c, err)
	}

	if !c.Is("json") {
		return c.Redirect(res.GmailURL, fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
