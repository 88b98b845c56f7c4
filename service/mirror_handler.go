package service

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nedaZarei/WeddingSite/pkg/logger"
	"github.com/nedaZarei/WeddingSite/pkg/mirror"
	"github.com/nedaZarei/WeddingSite/pkg/models"
	"github.com/nedaZarei/WeddingSite/pkg/storage"
)

type mirrorResponse struct {
	Success bool                   `json:"success"`
	Images  []models.MirroredImage `json:"images"`
}

// HandleMirror dispatches /api/upload-eucalyptus on method.
func (s *Service) HandleMirror(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodOptions:
		return preflight(c, mirrorCORS)
	case http.MethodPost:
		return s.MirrorImages(c)
	default:
		return &MethodNotAllowedError{Method: c.Request().Method}
	}
}

// MirrorImages copies the decoration images into storage. Any failure aborts the run.
func (s *Service) MirrorImages(c echo.Context) error {
	if s.ObjectStore == nil {
		msg := storage.ErrMissingCredentials.Error()
		if s.storeErr != nil {
			msg = s.storeErr.Error()
		}
		return &ConfigurationError{Message: msg}
	}

	m := mirror.New(mirror.Config{
		CDNHost:      s.cfg.Storage.CDNHost,
		AccessKey:    s.cfg.Storage.AccessKey,
		PublicBucket: s.cfg.Storage.PublicBucket,
		Policy:       mirror.AllOrNothing,
	}, s.HTTPClient, s.ObjectStore, logger.Log)

	result, err := m.Run(c.Request().Context(), s.Images)
	if err != nil {
		return &UpstreamFailure{Err: err}
	}
	return c.JSON(http.StatusOK, mirrorResponse{Success: true, Images: result.Images})
}
