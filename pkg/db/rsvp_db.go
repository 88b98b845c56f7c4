package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nedaZarei/WeddingSite/pkg/models"
)

const (
	CREATE_RSVP_TABLE = `CREATE TABLE IF NOT EXISTS rsvp_responses(
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		attendance TEXT NOT NULL CHECK (attendance IN ('yes', 'no')),
		guests_count INTEGER DEFAULT 1,
		dietary_restrictions TEXT[],
		other_dietary TEXT,
		message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	INSERT_RSVP = `INSERT INTO rsvp_responses
		(name, email, phone, attendance, guests_count, dietary_restrictions, other_dietary, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	// nullable text columns are coalesced so rows written by hand still scan into strings
	SELECT_RSVPS = `SELECT id, name, email, COALESCE(phone, '') AS phone, attendance,
		COALESCE(guests_count, 1) AS guests_count, dietary_restrictions,
		COALESCE(other_dietary, '') AS other_dietary, COALESCE(message, '') AS message,
		created_at
		FROM rsvp_responses
		ORDER BY created_at DESC`
)

type RSVPDatabase interface {
	CreateResponse(ctx context.Context, rsvp *models.RSVPResponse) (int, error)
	ListResponses(ctx context.Context) ([]models.RSVPResponse, error)
}

type RSVPDatabaseImpl struct {
	db *sqlx.DB
}

func NewRSVPDatabase(ctx context.Context, autoCreate bool, db *sqlx.DB) (*RSVPDatabaseImpl, error) {
	if autoCreate {
		if _, err := db.ExecContext(ctx, CREATE_RSVP_TABLE); err != nil {
			return nil, fmt.Errorf("failed to create rsvp_responses table: %w", err)
		}
	}
	return &RSVPDatabaseImpl{db: db}, nil
}

func (r *RSVPDatabaseImpl) CreateResponse(ctx context.Context, rsvp *models.RSVPResponse) (int, error) {
	dietary := rsvp.DietaryRestrictions
	if dietary == nil {
		dietary = pq.StringArray{}
	}
	var id int
	err := r.db.QueryRowxContext(ctx, INSERT_RSVP,
		rsvp.Name, rsvp.Email, rsvp.Phone, string(rsvp.Attendance), rsvp.GuestsCount,
		dietary, rsvp.OtherDietary, rsvp.Message).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert rsvp response: %w", err)
	}
	return id, nil
}

// ListResponses returns every stored response, newest first.
func (r *RSVPDatabaseImpl) ListResponses(ctx context.Context) ([]models.RSVPResponse, error) {
	responses := []models.RSVPResponse{}
	if err := r.db.SelectContext(ctx, &responses, SELECT_RSVPS); err != nil {
		return nil, fmt.Errorf("failed to list rsvp responses: %w", err)
	}
	return responses, nil
}
