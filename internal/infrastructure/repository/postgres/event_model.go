package postgres

import (
	"database/sql"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
)

type eventTableModel struct {
	ID                   int64          `db:"id"`
	PublicID             string         `db:"public_id"`
	Name                 string         `db:"name"`
	Description          sql.NullString `db:"description"`
	EventType            string         `db:"event_type"`
	Status               string         `db:"status"`
	TeamSize             int            `db:"team_size"`
	MaxParticipants      int            `db:"max_participants"`
	RegistrationDeadline *time.Time     `db:"registration_deadline"`
	IsTournament         bool           `db:"is_tournament"`
	TournamentID         sql.NullString `db:"tournament_public_id"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (m eventTableModel) toDomain() event.Event {
	e := event.Event{
		ID:              m.PublicID,
		Name:            m.Name,
		Description:     m.Description.String,
		Type:            m.EventType,
		Status:          event.Status(m.Status),
		TeamSize:        m.TeamSize,
		MaxParticipants: m.MaxParticipants,
		IsTournament:    m.IsTournament,
		TournamentID:    m.TournamentID.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.RegistrationDeadline != nil {
		e.RegistrationDeadline = *m.RegistrationDeadline
	}
	return e
}
