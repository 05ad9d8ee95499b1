package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/communitylabs/eventhub/internal/domain/registration"
	qb "github.com/communitylabs/eventhub/internal/platform/querybuilder"
)

// Partial unique indexes on event_registrations make these inserts the
// authoritative idempotence guard: a conflicting insert affects zero rows
// instead of failing, and the caller learns nothing new happened.
const (
	teamRegistrationConflict       = `ON CONFLICT (event_public_id, team_public_id) WHERE registration_type = 'team' DO NOTHING`
	individualRegistrationConflict = `ON CONFLICT (event_public_id, user_id) WHERE registration_type = 'individual' DO NOTHING`
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) CreateTeamRegistration(ctx context.Context, reg registration.Registration) (bool, error) {
	insertModel := registrationInsertModel{
		PublicID:         reg.ID,
		EventID:          reg.EventID,
		RegistrationType: string(registration.TypeTeam),
		TeamID:           nullableString(reg.TeamID),
		Status:           reg.Status,
		CreatedAt:        reg.CreatedAt,
	}
	return r.createRegistration(ctx, insertModel, teamRegistrationConflict)
}

func (r *RegistrationRepository) CreateIndividualRegistration(ctx context.Context, reg registration.Registration) (bool, error) {
	insertModel := registrationInsertModel{
		PublicID:         reg.ID,
		EventID:          reg.EventID,
		RegistrationType: string(registration.TypeIndividual),
		UserID:           nullableString(reg.UserID),
		Status:           reg.Status,
		CreatedAt:        reg.CreatedAt,
	}
	return r.createRegistration(ctx, insertModel, individualRegistrationConflict)
}

func (r *RegistrationRepository) createRegistration(ctx context.Context, insertModel registrationInsertModel, conflictSuffix string) (bool, error) {
	query, args, err := qb.InsertModel("event_registrations", insertModel, conflictSuffix)
	if err != nil {
		return false, fmt.Errorf("build create registration query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create registration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected create registration: %w", err)
	}
	return affected > 0, nil
}

func (r *RegistrationRepository) GetTeamRegistration(ctx context.Context, eventID, teamID string) (registration.Registration, bool, error) {
	return r.getRegistration(ctx,
		qb.Eq("event_public_id", eventID),
		qb.Eq("registration_type", string(registration.TypeTeam)),
		qb.Eq("team_public_id", teamID),
	)
}

func (r *RegistrationRepository) GetUserRegistration(ctx context.Context, eventID, userID string) (registration.Registration, bool, error) {
	return r.getRegistration(ctx,
		qb.Eq("event_public_id", eventID),
		qb.Eq("registration_type", string(registration.TypeIndividual)),
		qb.Eq("user_id", userID),
	)
}

func (r *RegistrationRepository) getRegistration(ctx context.Context, conditions ...qb.Condition) (registration.Registration, bool, error) {
	query, args, err := qb.Select("*").From("event_registrations").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("build get registration query: %w", err)
	}

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]registration.Registration, error) {
	query, args, err := qb.Select("*").From("event_registrations").
		Where(qb.Eq("event_public_id", eventID)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}

	registrations := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		registrations = append(registrations, row.toDomain())
	}
	return registrations, nil
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	query, args, err := qb.Count("event_registrations").
		Where(qb.Eq("event_public_id", eventID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count registrations query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count registrations by event: %w", err)
	}
	return count, nil
}
