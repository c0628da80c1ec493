package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Fuentes del ImageSet
const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceS3       = "s3"
)

type Config struct {
	ServerPort       string   `env:"SERVER_PORT" envDefault:"8080"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	ContentFile string `env:"CONTENT_FILE"`
	ImagesDir   string `env:"IMAGES_DIR" envDefault:"./public/images"`
	PublicDir   string `env:"PUBLIC_DIR" envDefault:"./public"`
	DefaultLang string `env:"DEFAULT_LANG" envDefault:"vi"`

	GallerySource           string        `env:"GALLERY_SOURCE" envDefault:"static"`
	GalleryAutoplayInterval time.Duration `env:"GALLERY_AUTOPLAY_INTERVAL" envDefault:"4s"`
	SessionTTL              time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionMax              int           `env:"SESSION_MAX" envDefault:"1000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"wedding"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"wedding.db"`

	S3BucketName string `env:"S3_BUCKET_NAME"`
	S3Region     string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Prefix     string `env:"S3_PREFIX"`

	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	SMTPFromName  string `env:"SMTP_FROM_NAME" envDefault:"Wedding RSVP"`
	SMTPFromEmail string `env:"SMTP_FROM_EMAIL"`

	RSVPRateLimit  int           `env:"RSVP_RATE_LIMIT" envDefault:"5"`
	RSVPRateWindow time.Duration `env:"RSVP_RATE_WINDOW" envDefault:"1m"`

	LogFile string `env:"LOG_FILE"`
}

// LoadConfig lee la configuración desde variables de entorno
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba combinaciones de valores que env no puede expresar
func (c *Config) Validate() error {
	c.GallerySource = strings.ToLower(strings.TrimSpace(c.GallerySource))
	switch c.GallerySource {
	case SourceStatic, SourcePostgres, SourceSQLite:
	case SourceS3:
		if c.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required when GALLERY_SOURCE=s3")
		}
	default:
		return fmt.Errorf("unknown GALLERY_SOURCE %q", c.GallerySource)
	}
	if c.GalleryAutoplayInterval <= 0 {
		return fmt.Errorf("GALLERY_AUTOPLAY_INTERVAL must be positive, got %s", c.GalleryAutoplayInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SessionMax <= 0 {
		return fmt.Errorf("SESSION_MAX must be positive, got %d", c.SessionMax)
	}
	if c.RSVPRateLimit <= 0 {
		return fmt.Errorf("RSVP_RATE_LIMIT must be positive, got %d", c.RSVPRateLimit)
	}
	return nil
}

// GetDBConnString arma la cadena de conexión de postgres
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SMTPEnabled indica si hay datos suficientes para notificar por correo
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFromEmail != ""
}
