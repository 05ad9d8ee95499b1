package postgres

import (
	"database/sql"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/team"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	LeaderUserID string         `db:"leader_user_id"`
	IsTournament bool           `db:"is_tournament"`
	EventID      sql.NullString `db:"event_public_id"`
	TournamentID sql.NullString `db:"tournament_public_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.PublicID,
		Name:         m.Name,
		Description:  m.Description.String,
		LeaderID:     m.LeaderUserID,
		IsTournament: m.IsTournament,
		EventID:      m.EventID.String,
		TournamentID: m.TournamentID.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type teamInsertModel struct {
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	LeaderUserID string    `db:"leader_user_id"`
	IsTournament bool      `db:"is_tournament"`
	EventID      *string   `db:"event_public_id"`
	TournamentID *string   `db:"tournament_public_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamMemberTableModel struct {
	ID       int64     `db:"id"`
	TeamID   string    `db:"team_public_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

type teamMemberInsertModel struct {
	TeamID   string    `db:"team_public_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

type invitationTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	TeamID        string         `db:"team_public_id"`
	InviterUserID string         `db:"inviter_user_id"`
	InviteeUserID string         `db:"invitee_user_id"`
	EventID       sql.NullString `db:"event_public_id"`
	TournamentID  sql.NullString `db:"tournament_public_id"`
	Status        string         `db:"status"`
	Token         string         `db:"token"`
	Message       sql.NullString `db:"message"`
	CreatedAt     time.Time      `db:"created_at"`
	RespondedAt   *time.Time     `db:"responded_at"`
}

func (m invitationTableModel) toDomain() team.Invitation {
	return team.Invitation{
		ID:           m.PublicID,
		TeamID:       m.TeamID,
		InviterID:    m.InviterUserID,
		InviteeID:    m.InviteeUserID,
		EventID:      m.EventID.String,
		TournamentID: m.TournamentID.String,
		Status:       team.InvitationStatus(m.Status),
		Token:        m.Token,
		Message:      m.Message.String,
		CreatedAt:    m.CreatedAt,
		RespondedAt:  m.RespondedAt,
	}
}

type invitationInsertModel struct {
	PublicID      string    `db:"public_id"`
	TeamID        string    `db:"team_public_id"`
	InviterUserID string    `db:"inviter_user_id"`
	InviteeUserID string    `db:"invitee_user_id"`
	EventID       *string   `db:"event_public_id"`
	TournamentID  *string   `db:"tournament_public_id"`
	Status        string    `db:"status"`
	Token         string    `db:"token"`
	Message       *string   `db:"message"`
	CreatedAt     time.Time `db:"created_at"`
}

type applicationTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	TeamID          string         `db:"team_public_id"`
	ApplicantUserID string         `db:"applicant_user_id"`
	EventID         sql.NullString `db:"event_public_id"`
	TournamentID    sql.NullString `db:"tournament_public_id"`
	Status          string         `db:"status"`
	Message         sql.NullString `db:"message"`
	CreatedAt       time.Time      `db:"created_at"`
	RespondedAt     *time.Time     `db:"responded_at"`
}

func (m applicationTableModel) toDomain() team.Application {
	return team.Application{
		ID:           m.PublicID,
		TeamID:       m.TeamID,
		ApplicantID:  m.ApplicantUserID,
		EventID:      m.EventID.String,
		TournamentID: m.TournamentID.String,
		Status:       team.ApplicationStatus(m.Status),
		Message:      m.Message.String,
		CreatedAt:    m.CreatedAt,
		RespondedAt:  m.RespondedAt,
	}
}

type applicationInsertModel struct {
	PublicID        string    `db:"public_id"`
	TeamID          string    `db:"team_public_id"`
	ApplicantUserID string    `db:"applicant_user_id"`
	EventID         *string   `db:"event_public_id"`
	TournamentID    *string   `db:"tournament_public_id"`
	Status          string    `db:"status"`
	Message         *string   `db:"message"`
	CreatedAt       time.Time `db:"created_at"`
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
