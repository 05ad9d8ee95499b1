package team

import (
	"context"
	"time"
)

type Repository interface {
	// CreateWithLeader persists the team, its leader membership and the
	// initial invitations in one transaction.
	CreateWithLeader(ctx context.Context, t Team, leader Member, invitations []Invitation) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Team, error)

	AddMember(ctx context.Context, m Member) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	CountMembers(ctx context.Context, teamID string) (int, error)
	ListMembers(ctx context.Context, teamID string) ([]Member, error)
	ListTeamIDsByMemberInEvent(ctx context.Context, userID, eventID string) ([]string, error)
	ListTeamIDsByMemberInTournament(ctx context.Context, userID, tournamentID string) ([]string, error)

	GetInvitationByID(ctx context.Context, invitationID string) (Invitation, bool, error)
	ListInvitationsByInvitee(ctx context.Context, userID string) ([]Invitation, error)
	CountPendingInvitations(ctx context.Context, teamID string) (int, error)
	// MarkInvitationResponded flips a pending invitation to a terminal
	// status. Returns false when the invitation was no longer pending, so
	// concurrent responders lose cleanly instead of overwriting.
	MarkInvitationResponded(ctx context.Context, invitationID string, to InvitationStatus, respondedAt time.Time) (bool, error)

	CreateApplication(ctx context.Context, a Application) error
	GetApplicationByID(ctx context.Context, applicationID string) (Application, bool, error)
	HasPendingApplication(ctx context.Context, teamID, applicantID string) (bool, error)
	ListApplicationsByTeam(ctx context.Context, teamID string) ([]Application, error)
	MarkApplicationResponded(ctx context.Context, applicationID string, to ApplicationStatus, respondedAt time.Time) (bool, error)
}
