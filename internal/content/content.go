// Package content carga los textos, contactos y la lista de fotos de la invitación.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Maxito7/wedding_card/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Default devuelve el contenido embebido
func Default() (*domain.Invitation, error) {
	return Parse(defaultYAML)
}

// Load lee el contenido desde path, o el embebido si path está vacío
func Load(path string) (*domain.Invitation, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return inv, nil
}

// Parse decodifica y valida un documento YAML
func Parse(data []byte) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Validate(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func Validate(inv *domain.Invitation) error {
	if strings.TrimSpace(inv.RSVPEmail) == "" {
		return fmt.Errorf("%w: rsvp_email is required", domain.ErrInvalidContent)
	}
	if len(inv.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", domain.ErrInvalidContent)
	}
	for i, img := range inv.Images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("%w: image %d is empty", domain.ErrInvalidContent, i)
		}
	}
	return nil
}
