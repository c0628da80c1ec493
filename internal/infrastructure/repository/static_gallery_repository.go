package repository

import (
	"path"
	"strings"

	"github.com/Maxito7/wedding_card/internal/domain"
)

// StaticGalleryRepository sirve la lista de imágenes del contenido YAML
type StaticGalleryRepository struct {
	names     []string
	urlPrefix string
}

func NewStaticGalleryRepository(names []string, urlPrefix string) *StaticGalleryRepository {
	return &StaticGalleryRepository{names: append([]string(nil), names...), urlPrefix: urlPrefix}
}

func (r *StaticGalleryRepository) GetAll() ([]domain.GalleryImage, error) {
	images := make([]domain.GalleryImage, 0, len(r.names))
	for i, name := range r.names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		url := joinURL(r.urlPrefix, name)
		if isAbsoluteURL(name) {
			url = name
		}
		images = append(images, domain.GalleryImage{
			ID:        path.Base(name),
			URL:       url,
			SortOrder: i,
			IsActive:  true,
		})
	}
	return images, nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func joinURL(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(name, "/")
}
