package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nedaZarei/WeddingSite/pkg/logger"
	"github.com/nedaZarei/WeddingSite/pkg/metrics"
	"github.com/nedaZarei/WeddingSite/pkg/models"
)

const AdminKeyHeader = "X-Admin-Key"

type submitResponse struct {
	Success bool   `json:"success"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type listResponse struct {
	Responses []models.RSVPResponse `json:"responses"`
}

// HandleRSVP dispatches /api/rsvp on method.
func (s *Service) HandleRSVP(c echo.Context) error {
	if c.Request().Method == http.MethodOptions {
		return preflight(c, rsvpCORS)
	}
	if s.RSVPDatabase == nil {
		return &ConfigurationError{Message: "Database configuration missing"}
	}

	switch c.Request().Method {
	case http.MethodPost:
		return s.SubmitRSVP(c)
	case http.MethodGet:
		return s.ListRSVPs(c)
	default:
		return &MethodNotAllowedError{Method: c.Request().Method}
	}
}

func (s *Service) SubmitRSVP(c echo.Context) error {
	submission, err := decodeSubmission(c.Request().Body)
	if err != nil {
		return err
	}

	rsvp, err := validateSubmission(submission)
	if err != nil {
		metrics.RSVPRejected.WithLabelValues("validation").Inc()
		return err
	}

	ctx := c.Request().Context()
	id, err := s.RSVPDatabase.CreateResponse(ctx, rsvp)
	if err != nil {
		return err
	}
	rsvp.ID = id
	metrics.RSVPSubmissions.WithLabelValues(string(rsvp.Attendance)).Inc()
	logger.Log.Info("saved rsvp response",
		zap.Int("id", id),
		zap.String("attendance", string(rsvp.Attendance)),
		zap.Int("guests_count", rsvp.GuestsCount))

	if err := s.Notifier.NotifyRSVP(ctx, rsvp); err != nil {
		logger.Log.Warn("failed to notify about rsvp", zap.Int("id", id), zap.Error(err))
	}

	return c.JSON(http.StatusOK, submitResponse{Success: true, ID: id, Message: "Response saved successfully"})
}

func (s *Service) ListRSVPs(c echo.Context) error {
	if c.Request().Header.Get(AdminKeyHeader) != s.cfg.Admin.Key {
		metrics.RSVPRejected.WithLabelValues("unauthorized").Inc()
		return &AuthError{}
	}

	responses, err := s.RSVPDatabase.ListResponses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Responses: responses})
}

// decodeSubmission treats an empty body as an empty object. Malformed JSON is
// returned as a plain error and ends up as a 500.
func decodeSubmission(body io.Reader) (*models.RSVPSubmission, error) {
	submission := &models.RSVPSubmission{}
	if body == nil {
		return submission, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return submission, nil
	}
	if err := json.Unmarshal(raw, submission); err != nil {
		return nil, fmt.Errorf("failed to parse request body: %w", err)
	}
	return submission, nil
}

// validateSubmission trims the text fields, then checks required fields,
// attendance and guests count in that order.
func validateSubmission(sub *models.RSVPSubmission) (*models.RSVPResponse, error) {
	rsvp := &models.RSVPResponse{
		Name:                strings.TrimSpace(sub.Name),
		Email:               strings.TrimSpace(sub.Email),
		Phone:               strings.TrimSpace(sub.Phone),
		Attendance:          models.Attendance(strings.TrimSpace(sub.Attendance)),
		GuestsCount:         sub.GuestsCount.Or(models.DefaultGuestsCount),
		DietaryRestrictions: pq.StringArray(sub.DietaryRestrictions),
		OtherDietary:        strings.TrimSpace(sub.OtherDietary),
		Message:             strings.TrimSpace(sub.Message),
	}
	if rsvp.DietaryRestrictions == nil {
		rsvp.DietaryRestrictions = pq.StringArray{}
	}

	if rsvp.Name == "" || rsvp.Email == "" || rsvp.Attendance == "" {
		return nil, &ValidationError{Message: "Name, email and attendance are required"}
	}
	if !rsvp.Attendance.Valid() {
		return nil, &ValidationError{Message: "Invalid attendance value"}
	}
	if sub.GuestsCount.Invalid {
		return nil, &ValidationError{Message: "Invalid guests count"}
	}
	return rsvp, nil
}
