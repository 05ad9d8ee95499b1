package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/communitylabs/eventhub/internal/domain/event"
	qb "github.com/communitylabs/eventhub/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status event.Status) ([]event.Event, error) {
	builder := qb.Select("*").From("events")
	if status != "" {
		builder = builder.Where(qb.Eq("status", string(status)))
	}
	query, args, err := builder.OrderBy("created_at", "public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events by status: %w", err)
	}

	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toDomain())
	}
	return events, nil
}

func (r *EventRepository) ListByTournament(ctx context.Context, tournamentID string) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("tournament_public_id", tournamentID)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events by tournament: %w", err)
	}

	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toDomain())
	}
	return events, nil
}
