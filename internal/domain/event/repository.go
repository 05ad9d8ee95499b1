package event

import "context"

type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByStatus(ctx context.Context, status Status) ([]Event, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Event, error)
}
