package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/team"
	idgen "github.com/communitylabs/eventhub/internal/platform/id"
)

type ApplyToTeamInput struct {
	UserID  string
	TeamID  string
	Message string
}

type RespondApplicationInput struct {
	UserID        string
	ApplicationID string
	Accept        bool
}

type RespondApplicationResult struct {
	Application team.Application
	Registered  bool
}

type ApplicationService struct {
	teamRepo  team.Repository
	registrar teamRegistrar
	notifier  Notifier
	idGen     idgen.Generator
	now       func() time.Time
}

func NewApplicationService(teamRepo team.Repository, registrar teamRegistrar, notifier Notifier, idGen idgen.Generator) *ApplicationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ApplicationService{
		teamRepo:  teamRepo,
		registrar: registrar,
		notifier:  notifier,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Apply files a join request for a team. The membership checks here are
// advisory fast-fails. The authoritative admission happens when the leader
// accepts, under the team lock.
func (s *ApplicationService) Apply(ctx context.Context, input ApplyToTeamInput) (team.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "ApplicationService.Apply")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Message = strings.TrimSpace(input.Message)
	if input.UserID == "" {
		return team.Application{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return team.Application{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return team.Application{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Application{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if t.LeaderID == input.UserID {
		return team.Application{}, fmt.Errorf("%w: you lead this team", ErrConflict)
	}

	alreadyRegistered, err := s.registrar.IsTeamRegistered(ctx, t)
	if err != nil {
		return team.Application{}, err
	}
	if alreadyRegistered {
		return team.Application{}, fmt.Errorf("%w: team already registered", ErrConflict)
	}

	isMember, err := s.teamRepo.IsMember(ctx, input.TeamID, input.UserID)
	if err != nil {
		return team.Application{}, fmt.Errorf("check team membership: %w", err)
	}
	if isMember {
		return team.Application{}, fmt.Errorf("%w: you are already a member of this team", ErrConflict)
	}

	var contextTeams []string
	if t.IsTournament {
		contextTeams, err = s.teamRepo.ListTeamIDsByMemberInTournament(ctx, input.UserID, t.TournamentID)
	} else {
		contextTeams, err = s.teamRepo.ListTeamIDsByMemberInEvent(ctx, input.UserID, t.EventID)
	}
	if err != nil {
		return team.Application{}, fmt.Errorf("list user teams in context: %w", err)
	}
	if len(contextTeams) > 0 {
		return team.Application{}, fmt.Errorf("%w: you already belong to a team here", ErrConflict)
	}

	hasPending, err := s.teamRepo.HasPendingApplication(ctx, input.TeamID, input.UserID)
	if err != nil {
		return team.Application{}, fmt.Errorf("check pending application: %w", err)
	}
	if hasPending {
		return team.Application{}, fmt.Errorf("%w: you already applied to this team", ErrConflict)
	}

	applicationID, err := s.idGen.NewID()
	if err != nil {
		return team.Application{}, fmt.Errorf("generate application id: %w", err)
	}
	application := team.Application{
		ID:           applicationID,
		TeamID:       input.TeamID,
		ApplicantID:  input.UserID,
		EventID:      t.EventID,
		TournamentID: t.TournamentID,
		Status:       team.ApplicationStatusPending,
		Message:      input.Message,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.teamRepo.CreateApplication(ctx, application); err != nil {
		if isDuplicateConstraintError(err) {
			return team.Application{}, fmt.Errorf("%w: you already applied to this team", ErrConflict)
		}
		return team.Application{}, fmt.Errorf("create application: %w", err)
	}
	return application, nil
}

// Respond lets the team leader accept or reject an application. Acceptance
// mirrors invitation acceptance: admit first, flip status last.
func (s *ApplicationService) Respond(ctx context.Context, input RespondApplicationInput) (RespondApplicationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ApplicationService.Respond")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ApplicationID = strings.TrimSpace(input.ApplicationID)
	if input.UserID == "" {
		return RespondApplicationResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.ApplicationID == "" {
		return RespondApplicationResult{}, fmt.Errorf("%w: application id is required", ErrInvalidInput)
	}

	application, exists, err := s.teamRepo.GetApplicationByID(ctx, input.ApplicationID)
	if err != nil {
		return RespondApplicationResult{}, fmt.Errorf("get application: %w", err)
	}
	if !exists {
		return RespondApplicationResult{}, fmt.Errorf("%w: application=%s", ErrNotFound, input.ApplicationID)
	}
	if application.Status != team.ApplicationStatusPending {
		return RespondApplicationResult{}, fmt.Errorf("%w: application has already been %s", ErrConflict, application.Status)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, application.TeamID)
	if err != nil {
		return RespondApplicationResult{}, fmt.Errorf("get team for application: %w", err)
	}
	if !exists {
		return RespondApplicationResult{}, fmt.Errorf("%w: team=%s", ErrNotFound, application.TeamID)
	}
	if t.LeaderID != input.UserID {
		return RespondApplicationResult{}, fmt.Errorf("%w: only the team leader can decide applications", ErrUnauthorized)
	}

	now := s.now().UTC()

	if !input.Accept {
		flipped, err := s.teamRepo.MarkApplicationResponded(ctx, application.ID, team.ApplicationStatusRejected, now)
		if err != nil {
			return RespondApplicationResult{}, fmt.Errorf("reject application: %w", err)
		}
		if !flipped {
			return RespondApplicationResult{}, fmt.Errorf("%w: application has already been handled", ErrConflict)
		}
		application.Status = team.ApplicationStatusRejected
		application.RespondedAt = &now
		s.notifyDecided(ctx, application)
		return RespondApplicationResult{Application: application}, nil
	}

	registered, err := s.registrar.AdmitMember(ctx, t, application.ApplicantID)
	if err != nil {
		return RespondApplicationResult{}, err
	}

	flipped, err := s.teamRepo.MarkApplicationResponded(ctx, application.ID, team.ApplicationStatusAccepted, now)
	if err != nil {
		return RespondApplicationResult{}, fmt.Errorf("accept application: %w", err)
	}
	if !flipped {
		return RespondApplicationResult{}, fmt.Errorf("%w: application has already been handled", ErrConflict)
	}
	application.Status = team.ApplicationStatusAccepted
	application.RespondedAt = &now
	s.notifyDecided(ctx, application)

	return RespondApplicationResult{Application: application, Registered: registered}, nil
}

func (s *ApplicationService) ListByTeam(ctx context.Context, userID, teamID string) ([]team.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "ApplicationService.ListByTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if t.LeaderID != userID {
		return nil, fmt.Errorf("%w: only the team leader can list applications", ErrUnauthorized)
	}

	applications, err := s.teamRepo.ListApplicationsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list applications by team: %w", err)
	}
	return applications, nil
}

func (s *ApplicationService) notifyDecided(ctx context.Context, a team.Application) {
	s.notifier.Notify(ctx, Notification{
		Kind:         NotificationApplicationDecided,
		TeamID:       a.TeamID,
		EventID:      a.EventID,
		TournamentID: a.TournamentID,
		UserID:       a.ApplicantID,
		Detail:       string(a.Status),
	})
}
