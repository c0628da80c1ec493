package http

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/wedding_card/internal/domain"
)

// PlaceholderSVG reemplaza cualquier foto que no se pueda cargar
const PlaceholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300" viewBox="0 0 400 300">` +
	`<rect width="400" height="300" fill="#fce7f3"/>` +
	`<path d="M200 215 C120 160 130 95 175 95 C190 95 200 110 200 110 C200 110 210 95 225 95 C270 95 280 160 200 215 Z" fill="#fb7185"/>` +
	`</svg>`

// PlaceholderPath es la ruta pública del placeholder
const PlaceholderPath = "/placeholder.svg"

// ImageHandler sirve las fotos del álbum desde un directorio local
type ImageHandler struct {
	dir string
}

func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// Serve entrega la imagen pedida o, si falla, el placeholder. Un fallo de
// una imagen nunca afecta al carrusel.
func (h *ImageHandler) Serve(c *fiber.Ctx) error {
	name := c.Params("name")

	data, ext, err := h.read(name)
	if err != nil {
		log.Printf("⚠️ Imagen %q no disponible, usando placeholder: %v", name, err)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return h.Placeholder(c)
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	c.Type(ext)
	return c.Send(data)
}

func (h *ImageHandler) read(name string) ([]byte, string, error) {
	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." || clean != name {
		return nil, "", fmt.Errorf("%q: %w", name, domain.ErrImageNotFound)
	}

	data, err := os.ReadFile(filepath.Join(h.dir, clean))
	if err != nil {
		return nil, "", err
	}
	return data, strings.ToLower(strings.TrimPrefix(filepath.Ext(clean), ".")), nil
}

// Placeholder entrega el SVG genérico
func (h *ImageHandler) Placeholder(c *fiber.Ctx) error {
	c.Type("svg")
	return c.Send([]byte(PlaceholderSVG))
}
