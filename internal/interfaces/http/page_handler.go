package http

import (
	"embed"
	htmltemplate "html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/i18n"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewViewEngine carga las plantillas embebidas
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("tel", func(phone string) htmltemplate.URL {
		return htmltemplate.URL(application.TelURL(phone))
	})
	return engine
}

type navItem struct {
	Section domain.Section
	Label   string
	Active  bool
}

type PageHandler struct {
	invitation *application.InvitationService
	gallery    *GalleryHandler
}

func NewPageHandler(invitation *application.InvitationService, gallery *GalleryHandler) *PageHandler {
	return &PageHandler{invitation: invitation, gallery: gallery}
}

// Index renderiza la invitación con la pestaña pedida en ?section
func (h *PageHandler) Index(c *fiber.Ctx) error {
	p := printerFrom(c)
	section := domain.ParseSection(c.Query("section"))

	labels := map[domain.Section]string{
		domain.SectionInvitation: i18n.KeySectionInvitation,
		domain.SectionDetails:    i18n.KeySectionDetails,
		domain.SectionGallery:    i18n.KeySectionGallery,
		domain.SectionRSVP:       i18n.KeySectionRSVP,
	}
	var nav []navItem
	for _, s := range domain.Sections() {
		nav = append(nav, navItem{Section: s, Label: p.Sprintf(labels[s]), Active: s == section})
	}

	data := fiber.Map{
		"Lang":        langFrom(c).String(),
		"Section":     string(section),
		"Nav":         nav,
		"Invitation":  h.invitation.Get(),
		"GuestCounts": domain.GuestCounts,
		"Placeholder": PlaceholderPath,
		"T": func(key string, args ...any) string {
			return p.Sprintf(key, args...)
		},
	}
	if section == domain.SectionGallery {
		data["Gallery"] = h.gallery.view(c, sessionFrom(c).Gallery)
	}

	return c.Render("index", data)
}
