package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/gallery"
	"github.com/Maxito7/wedding_card/internal/i18n"
)

// sseHeartbeat también renueva la sesión mientras el stream siga abierto
var sseHeartbeat = 15 * time.Second

type GalleryHandler struct {
	service *application.GalleryService
}

func NewGalleryHandler(service *application.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) view(c *fiber.Ctx, ctrl *gallery.Controller) gallery.View {
	p := printerFrom(c)
	return h.service.View(ctrl, func(position int) string {
		return p.Sprintf(i18n.KeyGalleryAlt, position)
	})
}

func (h *GalleryHandler) respond(c *fiber.Ctx, err error) error {
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(h.view(c, sessionFrom(c).Gallery))
}

func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	return h.respond(c, nil)
}

func (h *GalleryHandler) Next(c *fiber.Ctx) error {
	return h.respond(c, sessionFrom(c).Gallery.Advance(domain.Next))
}

func (h *GalleryHandler) Prev(c *fiber.Ctx) error {
	return h.respond(c, sessionFrom(c).Gallery.Advance(domain.Prev))
}

func (h *GalleryHandler) Select(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid index"})
	}
	return h.respond(c, sessionFrom(c).Gallery.SelectIndex(index))
}

func (h *GalleryHandler) OpenFullscreen(c *fiber.Ctx) error {
	return h.respond(c, sessionFrom(c).Gallery.OpenFullscreen())
}

func (h *GalleryHandler) CloseFullscreen(c *fiber.Ctx) error {
	return h.respond(c, sessionFrom(c).Gallery.CloseFullscreen())
}

func (h *GalleryHandler) ResumeAutoplay(c *fiber.Ctx) error {
	return h.respond(c, sessionFrom(c).Gallery.ResumeAutoplay())
}

// Events emite la vista del carrusel por Server-Sent Events en cada cambio.
// El stream termina cuando el cliente se desconecta o la sesión se desmonta.
func (h *GalleryHandler) Events(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	ctrl := sess.Gallery
	p := printerFrom(c)
	alt := func(position int) string { return p.Sprintf(i18n.KeyGalleryAlt, position) }
	images := ctrl.Images()

	updates, cancel := ctrl.Subscribe()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sess.Touch()
		defer cancel()

		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				data, err := json.Marshal(gallery.BuildView(images, snap, alt))
				if err != nil {
					return
				}
				fmt.Fprintf(w, "event: gallery\ndata: %s\n\n", data)
			case <-heartbeat.C:
				sess.Touch()
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
