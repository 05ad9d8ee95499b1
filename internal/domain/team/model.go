package team

import "time"

// Team groups users for a single event or tournament. A team belongs to
// exactly one of the two: EventID is set for event teams, TournamentID for
// tournament teams, distinguished by IsTournament.
type Team struct {
	ID           string
	Name         string
	Description  string
	LeaderID     string
	IsTournament bool
	EventID      string
	TournamentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContextID returns the event or tournament the team competes in.
func (t Team) ContextID() string {
	if t.IsTournament {
		return t.TournamentID
	}
	return t.EventID
}

type Member struct {
	TeamID   string
	UserID   string
	JoinedAt time.Time
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// Invitation is a leader-initiated offer to join a team. Only pending
// invitations can transition, and only to accepted, declined or expired.
type Invitation struct {
	ID           string
	TeamID       string
	InviterID    string
	InviteeID    string
	EventID      string
	TournamentID string
	Status       InvitationStatus
	Token        string
	Message      string
	CreatedAt    time.Time
	RespondedAt  *time.Time
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a user-initiated request to join a team, decided by the
// team leader.
type Application struct {
	ID           string
	TeamID       string
	ApplicantID  string
	EventID      string
	TournamentID string
	Status       ApplicationStatus
	Message      string
	CreatedAt    time.Time
	RespondedAt  *time.Time
}
