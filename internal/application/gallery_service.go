package application

import (
	"fmt"
	"log"
	"time"

	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/gallery"
	"github.com/Maxito7/wedding_card/internal/scheduler"
)

// GalleryService carga el ImageSet una vez y monta controladores sobre él
type GalleryService struct {
	images    domain.ImageSet
	interval  time.Duration
	newTicker scheduler.TickerFunc
}

// NewGalleryService lee el ImageSet desde repo. Un conjunto vacío es un
// error de arranque.
func NewGalleryService(repo domain.GalleryRepository, interval time.Duration, newTicker scheduler.TickerFunc) (*GalleryService, error) {
	images, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load gallery images: %w", err)
	}
	set := domain.ImageSet(images)
	if err := set.Validate(); err != nil {
		return nil, err
	}
	log.Printf("🖼️ Galería cargada con %d imágenes", set.Len())

	return &GalleryService{
		images:    set,
		interval:  interval,
		newTicker: newTicker,
	}, nil
}

func (s *GalleryService) Images() domain.ImageSet {
	return s.images
}

// Mount crea un controlador nuevo con autoplay activo
func (s *GalleryService) Mount() (*gallery.Controller, error) {
	return gallery.NewController(s.images, gallery.Options{
		Interval:  s.interval,
		NewTicker: s.newTicker,
	})
}

// View deriva el estado de render de un controlador
func (s *GalleryService) View(c *gallery.Controller, alt gallery.AltFunc) gallery.View {
	return gallery.BuildView(c.Images(), c.Snapshot(), alt)
}
