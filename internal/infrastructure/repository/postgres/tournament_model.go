package postgres

import (
	"database/sql"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	TeamSize    int            `db:"team_size"`
	MaxTeams    int            `db:"max_teams"`
	StartsAt    *time.Time     `db:"starts_at"`
	EndsAt      *time.Time     `db:"ends_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	t := tournament.Tournament{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description.String,
		Status:      tournament.Status(m.Status),
		TeamSize:    m.TeamSize,
		MaxTeams:    m.MaxTeams,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.StartsAt != nil {
		t.StartsAt = *m.StartsAt
	}
	if m.EndsAt != nil {
		t.EndsAt = *m.EndsAt
	}
	return t
}

type tournamentRegistrationTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m tournamentRegistrationTableModel) toDomain() tournament.Registration {
	return tournament.Registration{
		ID:           m.PublicID,
		TournamentID: m.TournamentID,
		TeamID:       m.TeamID,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
	}
}

type tournamentRegistrationInsertModel struct {
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

type tournamentPointsTableModel struct {
	ID            int64     `db:"id"`
	TournamentID  string    `db:"tournament_public_id"`
	TeamID        string    `db:"team_public_id"`
	Points        int       `db:"points"`
	MatchesPlayed int       `db:"matches_played"`
	Wins          int       `db:"wins"`
	Losses        int       `db:"losses"`
	Draws         int       `db:"draws"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m tournamentPointsTableModel) toDomain() tournament.Points {
	return tournament.Points{
		TournamentID:  m.TournamentID,
		TeamID:        m.TeamID,
		Points:        m.Points,
		MatchesPlayed: m.MatchesPlayed,
		Wins:          m.Wins,
		Losses:        m.Losses,
		Draws:         m.Draws,
		UpdatedAt:     m.UpdatedAt,
	}
}

type tournamentPointsInsertModel struct {
	TournamentID  string    `db:"tournament_public_id"`
	TeamID        string    `db:"team_public_id"`
	Points        int       `db:"points"`
	MatchesPlayed int       `db:"matches_played"`
	Wins          int       `db:"wins"`
	Losses        int       `db:"losses"`
	Draws         int       `db:"draws"`
	UpdatedAt     time.Time `db:"updated_at"`
}
