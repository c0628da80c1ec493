package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Maxito7/wedding_card/internal/application"
	"github.com/Maxito7/wedding_card/internal/config"
	"github.com/Maxito7/wedding_card/internal/content"
	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/email"
	"github.com/Maxito7/wedding_card/internal/i18n"
	"github.com/Maxito7/wedding_card/internal/infrastructure/repository"
	handlers "github.com/Maxito7/wedding_card/internal/interfaces/http"
	"github.com/Maxito7/wedding_card/internal/logging"
	services "github.com/Maxito7/wedding_card/internal/service"
)

const imagesURLPrefix = "/images"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logCloser := logging.Setup(cfg.LogFile)
	defer logCloser.Close()

	invitation, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Fatalf("Error loading invitation content: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Galería
	galleryRepo, closeRepo, err := openGalleryRepository(ctx, cfg, invitation)
	if err != nil {
		log.Fatalf("Error opening gallery source %q: %v", cfg.GallerySource, err)
	}
	galleryService, err := application.NewGalleryService(galleryRepo, cfg.GalleryAutoplayInterval, nil)
	closeRepo()
	if err != nil {
		log.Fatalf("Error loading gallery: %v", err)
	}
	sessions := application.NewSessionStore(galleryService, cfg.SessionTTL, cfg.SessionMax)
	defer sessions.Close()

	// Email Client
	var notifier domain.RSVPNotifier
	if cfg.SMTPEnabled() {
		emailClient, err := email.NewClient(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.SMTPFromName,
			cfg.SMTPFromEmail,
		)
		if err != nil {
			log.Printf("Warning: Email client initialization failed: %v", err)
		} else {
			notifier = emailClient
		}
	}

	// RSVP
	limiter := application.NewRateLimiter(cfg.RSVPRateWindow, cfg.RSVPRateLimit)
	defer limiter.Stop()
	rsvpService := application.NewRSVPService(invitation, limiter, notifier)

	invitationService := application.NewInvitationService(invitation)
	galleryHandler := handlers.NewGalleryHandler(galleryService)

	defaultLang, ok := i18n.ParseTag(cfg.DefaultLang)
	if !ok {
		defaultLang = i18n.Vietnamese
	}

	app := fiber.New(fiber.Config{
		Views:                 handlers.NewViewEngine(),
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSAllowOrigins, ","),
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	handlers.Routes{
		Sessions:    sessions,
		SessionTTL:  cfg.SessionTTL,
		DefaultLang: defaultLang,
		PublicDir:   cfg.PublicDir,
		Gallery:     galleryHandler,
		RSVP:        handlers.NewRSVPHandler(rsvpService),
		Invitation:  handlers.NewInvitationHandler(invitationService),
		Page:        handlers.NewPageHandler(invitationService, galleryHandler),
		Images:      handlers.NewImageHandler(cfg.ImagesDir),
	}.Register(app)

	go func() {
		<-ctx.Done()
		log.Println("🛑 Apagando servidor...")
		sessions.Close()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

// openGalleryRepository abre la fuente del ImageSet elegida en GALLERY_SOURCE.
// La función devuelta libera la conexión una vez leído el conjunto.
func openGalleryRepository(ctx context.Context, cfg *config.Config, invitation *domain.Invitation) (domain.GalleryRepository, func(), error) {
	noop := func() {}

	switch cfg.GallerySource {
	case config.SourcePostgres, config.SourceSQLite:
		driver, dsn := "postgres", cfg.GetDBConnString()
		if cfg.GallerySource == config.SourceSQLite {
			driver, dsn = "sqlite", cfg.SQLitePath
		}
		db, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, noop, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		repo := repository.NewGalleryRepository(db, imagesURLPrefix)
		dialect := repository.DialectPostgres
		if cfg.GallerySource == config.SourceSQLite {
			dialect = repository.DialectSQLite
		}
		if err := repo.EnsureSchema(ctx, dialect); err != nil {
			db.Close()
			return nil, noop, err
		}
		return repo, func() { db.Close() }, nil

	case config.SourceS3:
		s3Service, err := services.NewS3Service(ctx, cfg.S3BucketName, cfg.S3Region, cfg.S3Prefix)
		if err != nil {
			return nil, noop, err
		}
		return s3Service, noop, nil

	default:
		return repository.NewStaticGalleryRepository(invitation.Images, imagesURLPrefix), noop, nil
	}
}
