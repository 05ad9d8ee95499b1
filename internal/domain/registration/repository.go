package registration

import "context"

type Repository interface {
	// CreateTeamRegistration inserts a team entry for an event. Returns
	// false when the (event, team) pair already exists, which callers treat
	// as an idempotent no-op.
	CreateTeamRegistration(ctx context.Context, r Registration) (bool, error)
	// CreateIndividualRegistration behaves like CreateTeamRegistration for
	// the (event, user) pair.
	CreateIndividualRegistration(ctx context.Context, r Registration) (bool, error)
	GetTeamRegistration(ctx context.Context, eventID, teamID string) (Registration, bool, error)
	GetUserRegistration(ctx context.Context, eventID, userID string) (Registration, bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}
