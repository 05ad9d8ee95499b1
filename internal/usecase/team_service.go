package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/team"
	"github.com/communitylabs/eventhub/internal/domain/tournament"
	idgen "github.com/communitylabs/eventhub/internal/platform/id"
)

const joinTokenLength = 10

// teamRegistrar is the slice of RegistrationService the team flows need.
type teamRegistrar interface {
	AdmitMember(ctx context.Context, t team.Team, userID string) (bool, error)
	RegisterFormedTeam(ctx context.Context, t team.Team) (bool, error)
	IsTeamRegistered(ctx context.Context, t team.Team) (bool, error)
}

type CreateTeamInput struct {
	UserID       string
	Name         string
	Description  string
	EventID      string
	TournamentID string
	InviteeIDs   []string
	Message      string
}

type CreateTeamResult struct {
	Team        team.Team
	Invitations []team.Invitation
	Registered  bool
}

type TeamService struct {
	eventRepo      event.Repository
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	registrar      teamRegistrar
	notifier       Notifier
	idGen          idgen.Generator
	now            func() time.Time
}

func NewTeamService(
	eventRepo event.Repository,
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	registrar teamRegistrar,
	notifier Notifier,
	idGen idgen.Generator,
) *TeamService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &TeamService{
		eventRepo:      eventRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		registrar:      registrar,
		notifier:       notifier,
		idGen:          idGen,
		now:            time.Now,
	}
}

// CreateTeam creates a team with the caller as leader and first member, and
// issues invitations for the listed users. A tournament team created without
// invitees is complete on arrival and registers immediately.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (CreateTeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.EventID = strings.TrimSpace(input.EventID)
	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.Message = strings.TrimSpace(input.Message)
	if input.UserID == "" {
		return CreateTeamResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return CreateTeamResult{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if (input.EventID == "") == (input.TournamentID == "") {
		return CreateTeamResult{}, fmt.Errorf("%w: exactly one of event id or tournament id is required", ErrInvalidInput)
	}

	isTournament := input.TournamentID != ""
	teamSize, err := s.validateContext(ctx, input.EventID, input.TournamentID)
	if err != nil {
		return CreateTeamResult{}, err
	}

	invitees, err := normalizeInvitees(input.InviteeIDs, input.UserID)
	if err != nil {
		return CreateTeamResult{}, err
	}
	// The leader fills one slot, so at most teamSize-1 invitations make sense.
	if len(invitees) > teamSize-1 {
		return CreateTeamResult{}, fmt.Errorf("%w: at most %d invitees allowed for this team size", ErrInvalidInput, teamSize-1)
	}

	if err := s.ensureNotInAnotherTeam(ctx, input.UserID, input.EventID, input.TournamentID); err != nil {
		return CreateTeamResult{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return CreateTeamResult{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	t := team.Team{
		ID:           teamID,
		Name:         input.Name,
		Description:  input.Description,
		LeaderID:     input.UserID,
		IsTournament: isTournament,
		EventID:      input.EventID,
		TournamentID: input.TournamentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	leader := team.Member{TeamID: teamID, UserID: input.UserID, JoinedAt: now}

	invitations := make([]team.Invitation, 0, len(invitees))
	for _, inviteeID := range invitees {
		invitationID, err := s.idGen.NewID()
		if err != nil {
			return CreateTeamResult{}, fmt.Errorf("generate invitation id: %w", err)
		}
		token, err := idgen.NewToken(joinTokenLength)
		if err != nil {
			return CreateTeamResult{}, fmt.Errorf("generate invitation token: %w", err)
		}
		invitations = append(invitations, team.Invitation{
			ID:           invitationID,
			TeamID:       teamID,
			InviterID:    input.UserID,
			InviteeID:    inviteeID,
			EventID:      input.EventID,
			TournamentID: input.TournamentID,
			Status:       team.InvitationStatusPending,
			Token:        token,
			Message:      input.Message,
			CreatedAt:    now,
		})
	}

	if err := s.teamRepo.CreateWithLeader(ctx, t, leader, invitations); err != nil {
		if isDuplicateConstraintError(err) {
			return CreateTeamResult{}, fmt.Errorf("%w: a team with this name already exists", ErrConflict)
		}
		return CreateTeamResult{}, fmt.Errorf("create team: %w", err)
	}

	for _, inv := range invitations {
		s.notifier.Notify(ctx, Notification{
			Kind:         NotificationInvitationCreated,
			TeamID:       teamID,
			EventID:      input.EventID,
			TournamentID: input.TournamentID,
			UserID:       inv.InviteeID,
		})
	}

	result := CreateTeamResult{Team: t, Invitations: invitations}
	if isTournament && len(invitations) == 0 {
		registered, err := s.registrar.RegisterFormedTeam(ctx, t)
		if err != nil {
			return CreateTeamResult{}, err
		}
		result.Registered = registered
	}
	return result, nil
}

type TeamDetail struct {
	Team        team.Team
	Members     []team.Member
	MemberCount int
	TeamSize    int
	Registered  bool
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list team members: %w", err)
	}

	size, err := s.validateContext(ctx, t.EventID, t.TournamentID)
	if err != nil {
		return TeamDetail{}, err
	}

	return TeamDetail{
		Team:        t,
		Members:     members,
		MemberCount: len(members),
		TeamSize:    size,
	}, nil
}

func (s *TeamService) ListTeamsByEvent(ctx context.Context, eventID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeamsByEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	teams, err := s.teamRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list teams by event: %w", err)
	}
	return teams, nil
}

func (s *TeamService) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeamsByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	return teams, nil
}

// validateContext checks the event or tournament exists and still accepts
// team formation, and returns its configured team size.
func (s *TeamService) validateContext(ctx context.Context, eventID, tournamentID string) (int, error) {
	if tournamentID != "" {
		tour, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
		if err != nil {
			return 0, fmt.Errorf("get tournament: %w", err)
		}
		if !exists {
			return 0, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
		}
		if tour.Status != tournament.StatusRegistrationOpen {
			return 0, fmt.Errorf("%w: tournament registration is closed", ErrInvalidInput)
		}
		if tour.TeamSize <= 0 {
			return 0, fmt.Errorf("%w: tournament has no team size configured", ErrInvalidInput)
		}
		return tour.TeamSize, nil
	}

	ev, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if !ev.AcceptsTeams(s.now().UTC()) {
		return 0, fmt.Errorf("%w: event registration is closed", ErrInvalidInput)
	}
	if ev.TeamSize <= 0 {
		return 0, fmt.Errorf("%w: event has no team size configured", ErrInvalidInput)
	}
	return ev.TeamSize, nil
}

func (s *TeamService) ensureNotInAnotherTeam(ctx context.Context, userID, eventID, tournamentID string) error {
	var (
		teamIDs []string
		err     error
	)
	if tournamentID != "" {
		teamIDs, err = s.teamRepo.ListTeamIDsByMemberInTournament(ctx, userID, tournamentID)
	} else {
		teamIDs, err = s.teamRepo.ListTeamIDsByMemberInEvent(ctx, userID, eventID)
	}
	if err != nil {
		return fmt.Errorf("list user teams in context: %w", err)
	}
	if len(teamIDs) > 0 {
		return fmt.Errorf("%w: you already belong to a team here", ErrConflict)
	}
	return nil
}

func normalizeInvitees(inviteeIDs []string, leaderID string) ([]string, error) {
	seen := make(map[string]struct{}, len(inviteeIDs))
	out := make([]string, 0, len(inviteeIDs))
	for _, id := range inviteeIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if id == leaderID {
			return nil, fmt.Errorf("%w: you cannot invite yourself", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
