package httpapi

import (
	"context"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/registration"
	"github.com/communitylabs/eventhub/internal/domain/team"
	"github.com/communitylabs/eventhub/internal/domain/tournament"
	"github.com/communitylabs/eventhub/internal/usecase"
)

type createTeamRequest struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Description  string   `json:"description" validate:"omitempty,max=500"`
	EventID      string   `json:"event_id" validate:"omitempty,max=64"`
	TournamentID string   `json:"tournament_id" validate:"omitempty,max=64"`
	InviteeIDs   []string `json:"invitee_ids" validate:"omitempty,max=50,dive,required"`
	Message      string   `json:"message" validate:"omitempty,max=500"`
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

type applyToTeamRequest struct {
	Message string `json:"message" validate:"omitempty,max=500"`
}

type respondApplicationRequest struct {
	Accept bool `json:"accept"`
}

type recordMatchResultRequest struct {
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required"`
	HomeScore  int    `json:"home_score" validate:"min=0"`
	AwayScore  int    `json:"away_score" validate:"min=0"`
}

type eventDTO struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Description             string `json:"description,omitempty"`
	Type                    string `json:"type"`
	Status                  string `json:"status"`
	TeamSize                int    `json:"team_size"`
	MaxParticipants         int    `json:"max_participants,omitempty"`
	RegistrationDeadlineUTC string `json:"registration_deadline_utc,omitempty"`
	IsTournament            bool   `json:"is_tournament"`
	TournamentID            string `json:"tournament_id,omitempty"`
	CreatedAtUTC            string `json:"created_at_utc"`
}

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	LeaderID     string `json:"leader_id"`
	EventID      string `json:"event_id,omitempty"`
	TournamentID string `json:"tournament_id,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type teamMemberDTO struct {
	UserID      string `json:"user_id"`
	JoinedAtUTC string `json:"joined_at_utc"`
}

type teamDetailDTO struct {
	teamDTO
	Members     []teamMemberDTO `json:"members"`
	MemberCount int             `json:"member_count"`
	TeamSize    int             `json:"team_size"`
	Registered  bool            `json:"registered"`
}

type teamVacancyDTO struct {
	Team        teamDTO `json:"team"`
	MemberCount int     `json:"member_count"`
	OpenSlots   int     `json:"open_slots"`
}

type overviewTeamDTO struct {
	Team                  teamDTO `json:"team"`
	MemberCount           int     `json:"member_count"`
	HasPendingInvitations bool    `json:"has_pending_invitations"`
}

type eventOverviewDTO struct {
	Event                   eventDTO          `json:"event"`
	CompleteTeams           []overviewTeamDTO `json:"complete_teams"`
	IncompleteTeams         []overviewTeamDTO `json:"incomplete_teams"`
	TournamentPendingTeams  []overviewTeamDTO `json:"tournament_pending_teams,omitempty"`
	IndividualRegistrations int               `json:"individual_registrations"`
}

type invitationDTO struct {
	ID             string `json:"id"`
	TeamID         string `json:"team_id"`
	InviterID      string `json:"inviter_id"`
	InviteeID      string `json:"invitee_id"`
	EventID        string `json:"event_id,omitempty"`
	TournamentID   string `json:"tournament_id,omitempty"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	CreatedAtUTC   string `json:"created_at_utc"`
	RespondedAtUTC string `json:"responded_at_utc,omitempty"`
}

type applicationDTO struct {
	ID             string `json:"id"`
	TeamID         string `json:"team_id"`
	ApplicantID    string `json:"applicant_id"`
	EventID        string `json:"event_id,omitempty"`
	TournamentID   string `json:"tournament_id,omitempty"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	CreatedAtUTC   string `json:"created_at_utc"`
	RespondedAtUTC string `json:"responded_at_utc,omitempty"`
}

type registrationDTO struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Type         string `json:"type"`
	UserID       string `json:"user_id,omitempty"`
	TeamID       string `json:"team_id,omitempty"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type tournamentDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status"`
	TeamSize     int    `json:"team_size"`
	MaxTeams     int    `json:"max_teams,omitempty"`
	StartsAtUTC  string `json:"starts_at_utc,omitempty"`
	EndsAtUTC    string `json:"ends_at_utc,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type standingDTO struct {
	Rank          int    `json:"rank"`
	TeamID        string `json:"team_id"`
	Points        int    `json:"points"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
}

type createTeamResultDTO struct {
	Team        teamDTO         `json:"team"`
	Invitations []invitationDTO `json:"invitations"`
	Registered  bool            `json:"registered"`
}

type respondInvitationResultDTO struct {
	Invitation invitationDTO `json:"invitation"`
	Registered bool          `json:"registered"`
}

type respondApplicationResultDTO struct {
	Application applicationDTO `json:"application"`
	Registered  bool           `json:"registered"`
}

func eventToDTO(ctx context.Context, v event.Event) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()

	return eventDTO{
		ID:                      v.ID,
		Name:                    v.Name,
		Description:             v.Description,
		Type:                    v.Type,
		Status:                  string(v.Status),
		TeamSize:                v.TeamSize,
		MaxParticipants:         v.MaxParticipants,
		RegistrationDeadlineUTC: formatOptionalTime(&v.RegistrationDeadline),
		IsTournament:            v.IsTournament,
		TournamentID:            v.TournamentID,
		CreatedAtUTC:            v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		LeaderID:     v.LeaderID,
		EventID:      v.EventID,
		TournamentID: v.TournamentID,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamDetailToDTO(ctx context.Context, v usecase.TeamDetail) teamDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.teamDetailToDTO")
	defer span.End()

	members := make([]teamMemberDTO, 0, len(v.Members))
	for _, m := range v.Members {
		members = append(members, teamMemberDTO{
			UserID:      m.UserID,
			JoinedAtUTC: m.JoinedAt.UTC().Format(time.RFC3339),
		})
	}

	return teamDetailDTO{
		teamDTO:     teamToDTO(ctx, v.Team),
		Members:     members,
		MemberCount: v.MemberCount,
		TeamSize:    v.TeamSize,
		Registered:  v.Registered,
	}
}

func teamVacancyToDTO(ctx context.Context, v usecase.TeamVacancy) teamVacancyDTO {
	ctx, span := startSpan(ctx, "httpapi.teamVacancyToDTO")
	defer span.End()

	return teamVacancyDTO{
		Team:        teamToDTO(ctx, v.Team),
		MemberCount: v.MemberCount,
		OpenSlots:   v.OpenSlots,
	}
}

func eventOverviewToDTO(ctx context.Context, v usecase.EventOverview) eventOverviewDTO {
	ctx, span := startSpan(ctx, "httpapi.eventOverviewToDTO")
	defer span.End()

	return eventOverviewDTO{
		Event:                   eventToDTO(ctx, v.Event),
		CompleteTeams:           overviewTeamsToDTOs(ctx, v.CompleteTeams),
		IncompleteTeams:         overviewTeamsToDTOs(ctx, v.IncompleteTeams),
		TournamentPendingTeams:  overviewTeamsToDTOs(ctx, v.TournamentPendingTeams),
		IndividualRegistrations: v.IndividualRegistrations,
	}
}

func overviewTeamsToDTOs(ctx context.Context, items []usecase.OverviewTeam) []overviewTeamDTO {
	out := make([]overviewTeamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, overviewTeamDTO{
			Team:                  teamToDTO(ctx, item.Team),
			MemberCount:           item.MemberCount,
			HasPendingInvitations: item.HasPendingInvitations,
		})
	}
	return out
}

func invitationToDTO(ctx context.Context, v team.Invitation) invitationDTO {
	ctx, span := startSpan(ctx, "httpapi.invitationToDTO")
	defer span.End()

	return invitationDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		InviterID:      v.InviterID,
		InviteeID:      v.InviteeID,
		EventID:        v.EventID,
		TournamentID:   v.TournamentID,
		Status:         string(v.Status),
		Message:        v.Message,
		CreatedAtUTC:   v.CreatedAt.UTC().Format(time.RFC3339),
		RespondedAtUTC: formatOptionalTime(v.RespondedAt),
	}
}

func applicationToDTO(ctx context.Context, v team.Application) applicationDTO {
	ctx, span := startSpan(ctx, "httpapi.applicationToDTO")
	defer span.End()

	return applicationDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		ApplicantID:    v.ApplicantID,
		EventID:        v.EventID,
		TournamentID:   v.TournamentID,
		Status:         string(v.Status),
		Message:        v.Message,
		CreatedAtUTC:   v.CreatedAt.UTC().Format(time.RFC3339),
		RespondedAtUTC: formatOptionalTime(v.RespondedAt),
	}
}

func registrationToDTO(ctx context.Context, v registration.Registration) registrationDTO {
	ctx, span := startSpan(ctx, "httpapi.registrationToDTO")
	defer span.End()

	return registrationDTO{
		ID:           v.ID,
		EventID:      v.EventID,
		Type:         string(v.Type),
		UserID:       v.UserID,
		TeamID:       v.TeamID,
		Status:       v.Status,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func tournamentToDTO(ctx context.Context, v tournament.Tournament) tournamentDTO {
	ctx, span := startSpan(ctx, "httpapi.tournamentToDTO")
	defer span.End()

	return tournamentDTO{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		Status:       string(v.Status),
		TeamSize:     v.TeamSize,
		MaxTeams:     v.MaxTeams,
		StartsAtUTC:  formatOptionalTime(&v.StartsAt),
		EndsAtUTC:    formatOptionalTime(&v.EndsAt),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(ctx context.Context, v tournament.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		Rank:          v.Rank,
		TeamID:        v.TeamID,
		Points:        v.Points.Points,
		MatchesPlayed: v.MatchesPlayed,
		Wins:          v.Wins,
		Draws:         v.Draws,
		Losses:        v.Losses,
	}
}

func invitationsToDTOs(ctx context.Context, items []team.Invitation) []invitationDTO {
	dtos := make([]invitationDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, invitationToDTO(ctx, item))
	}
	return dtos
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
