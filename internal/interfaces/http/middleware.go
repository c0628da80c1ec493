package http

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/i18n"
)

const (
	SessionCookieName = "wc_session"

	localSession = "session"
	localLang    = "lang"
)

// SessionMiddleware monta un carrusel por visitante usando una cookie
func SessionMiddleware(store *application.SessionStore, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, created, err := store.GetOrCreate(c.Cookies(SessionCookieName))
		if err != nil {
			log.Printf("❌ Error creando sesión: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not start session"})
		}
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localSession, sess)
		return c.Next()
	}
}

// LanguageMiddleware resuelve el idioma: ?lang, cookie, Accept-Language
func LanguageMiddleware(def language.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag, persist := i18n.ResolveTag(c.Query(i18n.LangParam), c.Cookies(i18n.LangCookieName), c.Get(fiber.HeaderAcceptLanguage), def)
		if persist {
			c.Cookie(&fiber.Cookie{
				Name:     i18n.LangCookieName,
				Value:    tag.String(),
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localLang, tag)
		return c.Next()
	}
}

func sessionFrom(c *fiber.Ctx) *application.Session {
	sess, _ := c.Locals(localSession).(*application.Session)
	return sess
}

func langFrom(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(localLang).(language.Tag); ok {
		return tag
	}
	return i18n.Vietnamese
}

func printerFrom(c *fiber.Ctx) *message.Printer {
	return i18n.Printer(langFrom(c))
}

// errorStatus traduce errores de dominio a códigos HTTP
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRSVP), errors.Is(err, domain.ErrIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrGalleryClosed):
		return fiber.StatusGone
	case errors.Is(err, domain.ErrImageNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
