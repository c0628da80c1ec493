package gallery

import (
	"fmt"

	"github.com/Maxito7/wedding_card/internal/domain"
)

// Thumbnail es una miniatura de la tira
type Thumbnail struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Active bool   `json:"active"`
}

// View es lo que necesita un renderizador pasivo para pintar el carrusel
type View struct {
	Current         Thumbnail   `json:"current"`
	Index           int         `json:"index"`
	Total           int         `json:"total"`
	Counter         string      `json:"counter"`
	Progress        float64     `json:"progress"`
	Thumbnails      []Thumbnail `json:"thumbnails"`
	Fullscreen      bool        `json:"fullscreen"`
	UserInteracting bool        `json:"user_interacting"`
	Autoplay        bool        `json:"autoplay"`
	IntervalMs      int64       `json:"interval_ms"`
}

// AltFunc genera el texto alternativo de la imagen en la posición dada (desde 1)
type AltFunc func(position int) string

// BuildView deriva el estado de render a partir de un snapshot
func BuildView(images domain.ImageSet, snap Snapshot, alt AltFunc) View {
	if alt == nil {
		alt = func(position int) string { return fmt.Sprintf("Ảnh cưới %d", position) }
	}

	n := len(images)
	idx := snap.State.CurrentIndex
	thumbs := make([]Thumbnail, n)
	for i, img := range images {
		thumbs[i] = Thumbnail{
			Index:  i,
			ID:     img.ID,
			URL:    img.URL,
			Alt:    imageAlt(img, i, alt),
			Active: i == idx,
		}
	}

	v := View{
		Index:           idx,
		Total:           n,
		Thumbnails:      thumbs,
		Fullscreen:      snap.State.IsFullscreenOpen,
		UserInteracting: snap.State.IsUserInteracting,
		Autoplay:        snap.AutoplayActive,
		IntervalMs:      snap.State.AutoplayInterval.Milliseconds(),
	}
	if n > 0 {
		v.Current = thumbs[idx]
		v.Counter = fmt.Sprintf("%d / %d", idx+1, n)
		v.Progress = float64(idx+1) / float64(n) * 100
	}
	return v
}

func imageAlt(img domain.GalleryImage, i int, alt AltFunc) string {
	if img.AltText != "" {
		return img.AltText
	}
	return alt(i + 1)
}
