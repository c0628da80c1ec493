package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/domain"
)

// Routes agrupa los handlers que se montan sobre la app
type Routes struct {
	Sessions    *application.SessionStore
	SessionTTL  time.Duration
	DefaultLang language.Tag
	PublicDir   string

	Gallery    *GalleryHandler
	RSVP       *RSVPHandler
	Invitation *InvitationHandler
	Page       *PageHandler
	Images     *ImageHandler
}

func (r Routes) Register(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/images/:name", r.Images.Serve)
	app.Get(PlaceholderPath, r.Images.Placeholder)

	app.Use(LanguageMiddleware(r.DefaultLang))

	api := app.Group("/api")
	api.Get("/invitation", r.Invitation.GetInvitation)
	api.Post("/rsvp", r.RSVP.Submit)

	// Todo lo que toca el carrusel necesita sesión
	withSession := SessionMiddleware(r.Sessions, r.SessionTTL)

	// La página sólo monta un carrusel cuando se pide la pestaña del álbum
	app.Get("/", func(c *fiber.Ctx) error {
		if domain.ParseSection(c.Query("section")) == domain.SectionGallery {
			return withSession(c)
		}
		return c.Next()
	}, r.Page.Index)

	galeria := api.Group("/gallery", withSession)
	galeria.Get("/", r.Gallery.GetGallery)
	galeria.Get("/events", r.Gallery.Events)
	galeria.Post("/next", r.Gallery.Next)
	galeria.Post("/prev", r.Gallery.Prev)
	galeria.Post("/select/:index", r.Gallery.Select)
	galeria.Post("/fullscreen", r.Gallery.OpenFullscreen)
	galeria.Delete("/fullscreen", r.Gallery.CloseFullscreen)
	galeria.Post("/autoplay", r.Gallery.ResumeAutoplay)

	if r.PublicDir != "" {
		app.Static("/", r.PublicDir)
	}
}
