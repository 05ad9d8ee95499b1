package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
	qb "github.com/communitylabs/eventhub/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("public_id", tournamentID)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}
	return row.toDomain(), true, nil
}

// CreateRegistrationWithPoints writes the registration and the zeroed points
// row in one transaction. The registration insert carries the conflict guard;
// when it affects zero rows the team was already registered and the whole
// transaction is dropped.
func (r *TournamentRepository) CreateRegistrationWithPoints(ctx context.Context, registration tournament.Registration, points tournament.Points) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx tournament registration: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	registrationInsert := tournamentRegistrationInsertModel{
		PublicID:     registration.ID,
		TournamentID: registration.TournamentID,
		TeamID:       registration.TeamID,
		Status:       registration.Status,
		CreatedAt:    registration.CreatedAt,
	}
	query, args, err := qb.InsertModel("tournament_registrations", registrationInsert,
		`ON CONFLICT (tournament_public_id, team_public_id) DO NOTHING`)
	if err != nil {
		return false, fmt.Errorf("build create tournament registration query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create tournament registration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected tournament registration: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	pointsInsert := tournamentPointsInsertModel{
		TournamentID:  points.TournamentID,
		TeamID:        points.TeamID,
		Points:        points.Points,
		MatchesPlayed: points.MatchesPlayed,
		Wins:          points.Wins,
		Losses:        points.Losses,
		Draws:         points.Draws,
		UpdatedAt:     points.UpdatedAt,
	}
	query, args, err = qb.InsertModel("tournament_points", pointsInsert,
		`ON CONFLICT (tournament_public_id, team_public_id) DO NOTHING`)
	if err != nil {
		return false, fmt.Errorf("build create tournament points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("create tournament points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tournament registration tx: %w", err)
	}
	return true, nil
}

func (r *TournamentRepository) GetRegistration(ctx context.Context, tournamentID, teamID string) (tournament.Registration, bool, error) {
	query, args, err := qb.Select("*").From("tournament_registrations").
		Where(qb.Eq("tournament_public_id", tournamentID), qb.Eq("team_public_id", teamID)).
		ToSQL()
	if err != nil {
		return tournament.Registration{}, false, fmt.Errorf("build get tournament registration query: %w", err)
	}

	var row tournamentRegistrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Registration{}, false, nil
		}
		return tournament.Registration{}, false, fmt.Errorf("get tournament registration: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) ListRegistrationsByTournament(ctx context.Context, tournamentID string) ([]tournament.Registration, error) {
	query, args, err := qb.Select("*").From("tournament_registrations").
		Where(qb.Eq("tournament_public_id", tournamentID)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament registrations query: %w", err)
	}

	var rows []tournamentRegistrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament registrations: %w", err)
	}

	registrations := make([]tournament.Registration, 0, len(rows))
	for _, row := range rows {
		registrations = append(registrations, row.toDomain())
	}
	return registrations, nil
}

func (r *TournamentRepository) ListPointsByTournament(ctx context.Context, tournamentID string) ([]tournament.Points, error) {
	query, args, err := qb.Select("*").From("tournament_points").
		Where(qb.Eq("tournament_public_id", tournamentID)).
		OrderBy("points DESC", "wins DESC", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament points query: %w", err)
	}

	var rows []tournamentPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament points: %w", err)
	}

	points := make([]tournament.Points, 0, len(rows))
	for _, row := range rows {
		points = append(points, row.toDomain())
	}
	return points, nil
}

// AddMatchOutcome increments the score sheet in place so concurrent match
// reports never lose updates.
func (r *TournamentRepository) AddMatchOutcome(ctx context.Context, tournamentID, teamID string, points, wins, draws, losses int) error {
	query, args, err := qb.Update("tournament_points").
		SetExpr("points", "points + ?", points).
		SetExpr("matches_played", "matches_played + 1").
		SetExpr("wins", "wins + ?", wins).
		SetExpr("draws", "draws + ?", draws).
		SetExpr("losses", "losses + ?", losses).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("team_public_id", teamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add match outcome query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add match outcome: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected add match outcome: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("add match outcome: not found")
	}
	return nil
}
