package domain

import (
	"errors"
	"time"
)

// DefaultAutoplayInterval es el intervalo entre avances automáticos del carrusel
const DefaultAutoplayInterval = 4000 * time.Millisecond

var (
	ErrEmptyImageSet   = errors.New("gallery requires at least one image")
	ErrIndexOutOfRange = errors.New("image index out of range")
	ErrGalleryClosed   = errors.New("gallery is closed")
	ErrImageNotFound   = errors.New("image not found")
)

type GalleryImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageSet es la secuencia ordenada de imágenes del carrusel. Se fija al
// arrancar y su orden define también el orden de las miniaturas.
type ImageSet []GalleryImage

func (s ImageSet) Len() int { return len(s) }

// Validate comprueba que el conjunto tenga al menos una imagen
func (s ImageSet) Validate() error {
	if len(s) == 0 {
		return ErrEmptyImageSet
	}
	return nil
}

// Direction es el conjunto cerrado de movimientos manuales
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// GalleryState es el estado mutable de un carrusel montado
type GalleryState struct {
	CurrentIndex      int           `json:"current_index"`
	IsUserInteracting bool          `json:"is_user_interacting"`
	IsFullscreenOpen  bool          `json:"is_fullscreen_open"`
	AutoplayInterval  time.Duration `json:"-"`
}

// AutoplayAllowed indica si las banderas permiten que el timer avance
func (s GalleryState) AutoplayAllowed() bool {
	return !s.IsUserInteracting && !s.IsFullscreenOpen
}

// GalleryRepository es la fuente del ImageSet leída al arrancar
type GalleryRepository interface {
	GetAll() ([]GalleryImage, error)
}
