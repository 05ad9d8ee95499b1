package tournament

import "context"

type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	// CreateRegistrationWithPoints inserts the registration and the zeroed
	// points row in one transaction. Returns false when the team is already
	// registered (unique-constraint conflict), which callers treat as an
	// idempotent no-op.
	CreateRegistrationWithPoints(ctx context.Context, registration Registration, points Points) (bool, error)
	GetRegistration(ctx context.Context, tournamentID, teamID string) (Registration, bool, error)
	ListRegistrationsByTournament(ctx context.Context, tournamentID string) ([]Registration, error)
	ListPointsByTournament(ctx context.Context, tournamentID string) ([]Points, error)
	// AddMatchOutcome increments the team's score sheet by one played match.
	AddMatchOutcome(ctx context.Context, tournamentID, teamID string, points, wins, draws, losses int) error
}
