package postgres

import (
	"database/sql"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/registration"
)

type registrationTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	EventID          string         `db:"event_public_id"`
	RegistrationType string         `db:"registration_type"`
	UserID           sql.NullString `db:"user_id"`
	TeamID           sql.NullString `db:"team_public_id"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (m registrationTableModel) toDomain() registration.Registration {
	return registration.Registration{
		ID:        m.PublicID,
		EventID:   m.EventID,
		Type:      registration.Type(m.RegistrationType),
		UserID:    m.UserID.String,
		TeamID:    m.TeamID.String,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

type registrationInsertModel struct {
	PublicID         string    `db:"public_id"`
	EventID          string    `db:"event_public_id"`
	RegistrationType string    `db:"registration_type"`
	UserID           *string   `db:"user_id"`
	TeamID           *string   `db:"team_public_id"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
}
