package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path"

	"github.com/Maxito7/wedding_card/internal/domain"
)

// GalleryRepository lee el ImageSet de la tabla gallery_images. Funciona
// igual sobre postgres (lib/pq) y sqlite (modernc).
type GalleryRepository struct {
	db        *sql.DB
	urlPrefix string
}

func NewGalleryRepository(db *sql.DB, urlPrefix string) *GalleryRepository {
	return &GalleryRepository{db: db, urlPrefix: urlPrefix}
}

// Dialectos SQL soportados por EnsureSchema
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const galleryImagesSchema = `
CREATE TABLE IF NOT EXISTS gallery_images (
	id         %s,
	url        TEXT NOT NULL,
	alt_text   TEXT NOT NULL DEFAULT '',
	sort_order INTEGER NOT NULL DEFAULT 0,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema crea la tabla si no existe
func (r *GalleryRepository) EnsureSchema(ctx context.Context, dialect string) error {
	idColumn := "INTEGER PRIMARY KEY"
	if dialect == DialectPostgres {
		idColumn = "SERIAL PRIMARY KEY"
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(galleryImagesSchema, idColumn)); err != nil {
		return fmt.Errorf("create gallery_images: %w", err)
	}
	return nil
}

func (r *GalleryRepository) GetAll() ([]domain.GalleryImage, error) {
	return r.GetAllContext(context.Background())
}

// GetAllContext devuelve las imágenes activas en orden de carrusel
func (r *GalleryRepository) GetAllContext(ctx context.Context) ([]domain.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, alt_text, sort_order, is_active, created_at
		FROM gallery_images
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query gallery_images: %w", err)
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var (
			id  int64
			url string
			img domain.GalleryImage
		)
		if err := rows.Scan(&id, &url, &img.AltText, &img.SortOrder, &img.IsActive, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery_images: %w", err)
		}
		img.ID = path.Base(url)
		img.URL = r.resolveURL(url)
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery_images: %w", err)
	}
	return images, nil
}

// Create inserta una imagen; se usa para sembrar la tabla
func (r *GalleryRepository) Create(ctx context.Context, url, altText string, sortOrder int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO gallery_images (url, alt_text, sort_order, is_active) VALUES ($1, $2, $3, TRUE)`,
		url, altText, sortOrder)
	if err != nil {
		return fmt.Errorf("insert gallery_images: %w", err)
	}
	return nil
}

// URLs absolutas se respetan; nombres sueltos se sirven desde urlPrefix.
func (r *GalleryRepository) resolveURL(url string) string {
	if isAbsoluteURL(url) {
		return url
	}
	return joinURL(r.urlPrefix, path.Base(url))
}
