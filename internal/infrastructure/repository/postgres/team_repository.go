package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/communitylabs/eventhub/internal/domain/team"
	qb "github.com/communitylabs/eventhub/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateWithLeader(ctx context.Context, t team.Team, leader team.Member, invitations []team.Invitation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teamInsert := teamInsertModel{
		PublicID:     t.ID,
		Name:         t.Name,
		Description:  nullableString(t.Description),
		LeaderUserID: t.LeaderID,
		IsTournament: t.IsTournament,
		EventID:      nullableString(t.EventID),
		TournamentID: nullableString(t.TournamentID),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	query, args, err := qb.InsertModel("teams", teamInsert, "")
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	memberInsert := teamMemberInsertModel{
		TeamID:   leader.TeamID,
		UserID:   leader.UserID,
		JoinedAt: leader.JoinedAt,
	}
	query, args, err = qb.InsertModel("team_members", memberInsert, "")
	if err != nil {
		return fmt.Errorf("build create leader member query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create leader member: %w", err)
	}

	for _, inv := range invitations {
		invitationInsert := invitationInsertModel{
			PublicID:      inv.ID,
			TeamID:        inv.TeamID,
			InviterUserID: inv.InviterID,
			InviteeUserID: inv.InviteeID,
			EventID:       nullableString(inv.EventID),
			TournamentID:  nullableString(inv.TournamentID),
			Status:        string(inv.Status),
			Token:         inv.Token,
			Message:       nullableString(inv.Message),
			CreatedAt:     inv.CreatedAt,
		}
		query, args, err = qb.InsertModel("team_invitations", invitationInsert, "")
		if err != nil {
			return fmt.Errorf("build create invitation query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("create invitation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByEvent(ctx context.Context, eventID string) ([]team.Team, error) {
	return r.listTeams(ctx, qb.Eq("event_public_id", eventID), qb.Eq("is_tournament", false))
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	return r.listTeams(ctx, qb.Eq("tournament_public_id", tournamentID), qb.Eq("is_tournament", true))
}

func (r *TeamRepository) listTeams(ctx context.Context, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(conditions...).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toDomain())
	}
	return teams, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, m team.Member) error {
	memberInsert := teamMemberInsertModel{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
	query, args, err := qb.InsertModel("team_members", memberInsert, "")
	if err != nil {
		return fmt.Errorf("build add member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query, args, err := qb.Count("team_members").
		Where(qb.Eq("team_public_id", teamID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build is member query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check team member: %w", err)
	}
	return count > 0, nil
}

func (r *TeamRepository) CountMembers(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Count("team_members").
		Where(qb.Eq("team_public_id", teamID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count members query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	query, args, err := qb.Select("*").From("team_members").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	members := make([]team.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, team.Member{
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			JoinedAt: row.JoinedAt,
		})
	}
	return members, nil
}

func (r *TeamRepository) ListTeamIDsByMemberInEvent(ctx context.Context, userID, eventID string) ([]string, error) {
	return r.listTeamIDsByMember(ctx, userID,
		qb.Expr("team_public_id IN (SELECT public_id FROM teams WHERE is_tournament = FALSE AND event_public_id = ?)", eventID))
}

func (r *TeamRepository) ListTeamIDsByMemberInTournament(ctx context.Context, userID, tournamentID string) ([]string, error) {
	return r.listTeamIDsByMember(ctx, userID,
		qb.Expr("team_public_id IN (SELECT public_id FROM teams WHERE is_tournament = TRUE AND tournament_public_id = ?)", tournamentID))
}

func (r *TeamRepository) listTeamIDsByMember(ctx context.Context, userID string, scope qb.Condition) ([]string, error) {
	query, args, err := qb.Select("team_public_id").From("team_members").
		Where(qb.Eq("user_id", userID), scope).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list member teams query: %w", err)
	}

	var teamIDs []string
	if err := r.db.SelectContext(ctx, &teamIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list member teams: %w", err)
	}
	return teamIDs, nil
}

func (r *TeamRepository) GetInvitationByID(ctx context.Context, invitationID string) (team.Invitation, bool, error) {
	query, args, err := qb.Select("*").From("team_invitations").
		Where(qb.Eq("public_id", invitationID)).
		ToSQL()
	if err != nil {
		return team.Invitation{}, false, fmt.Errorf("build get invitation query: %w", err)
	}

	var row invitationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Invitation{}, false, nil
		}
		return team.Invitation{}, false, fmt.Errorf("get invitation: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListInvitationsByInvitee(ctx context.Context, userID string) ([]team.Invitation, error) {
	query, args, err := qb.Select("*").From("team_invitations").
		Where(qb.Eq("invitee_user_id", userID)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list invitations query: %w", err)
	}

	var rows []invitationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list invitations by invitee: %w", err)
	}

	invitations := make([]team.Invitation, 0, len(rows))
	for _, row := range rows {
		invitations = append(invitations, row.toDomain())
	}
	return invitations, nil
}

func (r *TeamRepository) CountPendingInvitations(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Count("team_invitations").
		Where(qb.Eq("team_public_id", teamID), qb.Eq("status", string(team.InvitationStatusPending))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count pending invitations query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count pending invitations: %w", err)
	}
	return count, nil
}

// MarkInvitationResponded flips pending to a terminal status with a
// conditional update. Zero affected rows means someone else settled the
// invitation first.
func (r *TeamRepository) MarkInvitationResponded(ctx context.Context, invitationID string, to team.InvitationStatus, respondedAt time.Time) (bool, error) {
	query, args, err := qb.Update("team_invitations").
		Set("status", string(to)).
		Set("responded_at", respondedAt).
		Where(
			qb.Eq("public_id", invitationID),
			qb.Eq("status", string(team.InvitationStatusPending)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark invitation query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark invitation responded: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected mark invitation: %w", err)
	}
	return affected > 0, nil
}

func (r *TeamRepository) CreateApplication(ctx context.Context, a team.Application) error {
	applicationInsert := applicationInsertModel{
		PublicID:        a.ID,
		TeamID:          a.TeamID,
		ApplicantUserID: a.ApplicantID,
		EventID:         nullableString(a.EventID),
		TournamentID:    nullableString(a.TournamentID),
		Status:          string(a.Status),
		Message:         nullableString(a.Message),
		CreatedAt:       a.CreatedAt,
	}
	query, args, err := qb.InsertModel("team_applications", applicationInsert, "")
	if err != nil {
		return fmt.Errorf("build create application query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetApplicationByID(ctx context.Context, applicationID string) (team.Application, bool, error) {
	query, args, err := qb.Select("*").From("team_applications").
		Where(qb.Eq("public_id", applicationID)).
		ToSQL()
	if err != nil {
		return team.Application{}, false, fmt.Errorf("build get application query: %w", err)
	}

	var row applicationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Application{}, false, nil
		}
		return team.Application{}, false, fmt.Errorf("get application: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) HasPendingApplication(ctx context.Context, teamID, applicantID string) (bool, error) {
	query, args, err := qb.Count("team_applications").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("applicant_user_id", applicantID),
			qb.Eq("status", string(team.ApplicationStatusPending)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build pending application query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check pending application: %w", err)
	}
	return count > 0, nil
}

func (r *TeamRepository) ListApplicationsByTeam(ctx context.Context, teamID string) ([]team.Application, error) {
	query, args, err := qb.Select("*").From("team_applications").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list applications query: %w", err)
	}

	var rows []applicationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list applications by team: %w", err)
	}

	applications := make([]team.Application, 0, len(rows))
	for _, row := range rows {
		applications = append(applications, row.toDomain())
	}
	return applications, nil
}

func (r *TeamRepository) MarkApplicationResponded(ctx context.Context, applicationID string, to team.ApplicationStatus, respondedAt time.Time) (bool, error) {
	query, args, err := qb.Update("team_applications").
		Set("status", string(to)).
		Set("responded_at", respondedAt).
		Where(
			qb.Eq("public_id", applicationID),
			qb.Eq("status", string(team.ApplicationStatusPending)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark application query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark application responded: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected mark application: %w", err)
	}
	return affected > 0, nil
}
