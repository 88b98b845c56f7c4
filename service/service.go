package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nedaZarei/WeddingSite/config"
	"github.com/nedaZarei/WeddingSite/pkg/db"
	"github.com/nedaZarei/WeddingSite/pkg/logger"
	"github.com/nedaZarei/WeddingSite/pkg/models"
	"github.com/nedaZarei/WeddingSite/pkg/notify"
	"github.com/nedaZarei/WeddingSite/pkg/storage"
)

type Service struct {
	cfg          *config.Config
	e            *echo.Echo
	RSVPDatabase db.RSVPDatabase
	ObjectStore  storage.ObjectStore
	Notifier     notify.Notifier
	// HTTPClient downloads mirror sources; requests carry the inbound request context.
	HTTPClient *http.Client
	Images     []models.ImageSource

	storeErr error
}

func NewService(cfg *config.Config) *Service {
	s := &Service{
		e:          echo.New(),
		cfg:        cfg,
		Notifier:   notify.Nop{},
		HTTPClient: &http.Client{},
		Images:     models.EucalyptusImages,
	}
	s.setupRoutes()
	return s
}

// Connect wires Postgres, object storage and the notifier from configuration.
// A missing DSN or missing storage credentials do not fail startup; the affected
// endpoint answers with a configuration error instead.
func (s *Service) Connect(ctx context.Context) error {
	//db init
	if s.cfg.Postgres.DSN == "" {
		logger.Log.Warn("DATABASE_URL is not set, rsvp endpoint will report a configuration error")
	} else {
		dB, err := sqlx.Open("postgres", s.cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("failed to open Postgres: %w", err)
		}
		rsvpDB, err := db.NewRSVPDatabase(ctx, s.cfg.Postgres.AutoCreate, dB)
		if err != nil {
			return fmt.Errorf("failed to initialize rsvp database: %w", err)
		}
		s.RSVPDatabase = rsvpDB
		logger.Log.Info("configured Postgres", zap.Bool("autocreate", s.cfg.Postgres.AutoCreate))
	}

	//object storage init
	store, err := storage.NewObjectStore(ctx, storage.Options{
		Driver:    s.cfg.Storage.Driver,
		Endpoint:  s.cfg.Storage.Endpoint,
		AccessKey: s.cfg.Storage.AccessKey,
		SecretKey: s.cfg.Storage.SecretKey,
		Bucket:    s.cfg.Storage.Bucket,
		Region:    s.cfg.Storage.Region,
	})
	if err != nil {
		s.storeErr = err
		logger.Log.Warn("object storage unavailable", zap.Error(err))
	} else {
		s.ObjectStore = store
		logger.Log.Info("configured object storage",
			zap.String("driver", s.cfg.Storage.Driver),
			zap.String("endpoint", s.cfg.Storage.Endpoint),
			zap.String("bucket", s.cfg.Storage.Bucket))
	}

	s.Notifier = notify.New(s.cfg.Email.APIKey, s.cfg.Email.From, s.cfg.Email.To)

	if s.cfg.UsingDefaultAdminKey() {
		logger.Log.Warn("ADMIN_KEY is not set, falling back to the default admin key")
	}
	return nil
}

func (s *Service) setupRoutes() {
	s.e.HideBanner = true
	s.e.HTTPErrorHandler = errorHandler

	s.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))
	s.e.Use(middleware.Recover())
	s.e.Use(allowAnyOrigin)

	api := s.e.Group("/api")
	api.Any("/rsvp", s.HandleRSVP)
	api.Any("/upload-eucalyptus", s.HandleMirror)

	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Handler exposes the router for the Lambda adapter and tests.
func (s *Service) Handler() http.Handler {
	return s.e
}

func (s *Service) StartService(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}
	logger.Log.Info("starting server", zap.String("port", s.cfg.Server.Port))
	if err := s.e.Start(s.cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
