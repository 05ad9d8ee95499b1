package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/registration"
	"github.com/communitylabs/eventhub/internal/domain/team"
	"github.com/communitylabs/eventhub/internal/domain/tournament"
	idgen "github.com/communitylabs/eventhub/internal/platform/id"
	"github.com/communitylabs/eventhub/internal/platform/resilience"
)

// RegistrationService owns the team lifecycle transition from forming to
// registered. All membership admissions and registrations for a team run
// under a per-team lock, so the "member count reached team size" decision is
// made against a stable count and fires at most once.
type RegistrationService struct {
	eventRepo      event.Repository
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	regRepo        registration.Repository
	teamLocks      *resilience.KeyedMutex
	notifier       Notifier
	idGen          idgen.Generator
	now            func() time.Time
}

func NewRegistrationService(
	eventRepo event.Repository,
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	regRepo registration.Repository,
	notifier Notifier,
	idGen idgen.Generator,
) *RegistrationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &RegistrationService{
		eventRepo:      eventRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		regRepo:        regRepo,
		teamLocks:      resilience.NewKeyedMutex(),
		notifier:       notifier,
		idGen:          idGen,
		now:            time.Now,
	}
}

// AdmitMember adds userID to the team and registers the team when the
// admission makes it full. Admitting a user who is already a member is an
// idempotent no-op, so retried accept flows converge instead of failing.
func (s *RegistrationService) AdmitMember(ctx context.Context, t team.Team, userID string) (registered bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.AdmitMember")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	unlock := s.teamLocks.Lock(t.ID)
	defer unlock()

	size, err := s.requiredTeamSize(ctx, t)
	if err != nil {
		return false, err
	}

	isMember, err := s.teamRepo.IsMember(ctx, t.ID, userID)
	if err != nil {
		return false, fmt.Errorf("check team membership: %w", err)
	}
	count, err := s.teamRepo.CountMembers(ctx, t.ID)
	if err != nil {
		return false, fmt.Errorf("count team members: %w", err)
	}

	if !isMember {
		if count >= size {
			return false, fmt.Errorf("%w: team is already full", ErrConflict)
		}
		err := s.teamRepo.AddMember(ctx, team.Member{
			TeamID:   t.ID,
			UserID:   userID,
			JoinedAt: s.now().UTC(),
		})
		if err != nil {
			if !isDuplicateConstraintError(err) {
				return false, fmt.Errorf("add team member: %w", err)
			}
			// Lost a race outside the lock scope (direct writes, backfills).
			// The user is a member either way.
		} else {
			count++
		}
	}

	if count != size {
		return false, nil
	}
	return s.registerLocked(ctx, t)
}

// RegisterFormedTeam registers a team that is considered complete at
// creation time, without admitting anyone. Used by the tournament path when
// a team is created with no invitations.
func (s *RegistrationService) RegisterFormedTeam(ctx context.Context, t team.Team) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.RegisterFormedTeam")
	defer span.End()

	unlock := s.teamLocks.Lock(t.ID)
	defer unlock()
	return s.registerLocked(ctx, t)
}

// registerLocked performs the actual registration insert. Callers must hold
// the team lock. The storage layer enforces uniqueness, so a concurrent or
// repeated call reports created=false and nothing else changes.
func (s *RegistrationService) registerLocked(ctx context.Context, t team.Team) (bool, error) {
	if t.IsTournament {
		return s.registerTournamentTeam(ctx, t)
	}
	return s.registerEventTeam(ctx, t)
}

func (s *RegistrationService) registerEventTeam(ctx context.Context, t team.Team) (bool, error) {
	regID, err := s.idGen.NewID()
	if err != nil {
		return false, fmt.Errorf("generate registration id: %w", err)
	}
	created, err := s.regRepo.CreateTeamRegistration(ctx, registration.Registration{
		ID:        regID,
		EventID:   t.EventID,
		Type:      registration.TypeTeam,
		TeamID:    t.ID,
		Status:    registration.StatusRegistered,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("create event team registration: %w", err)
	}
	if created {
		s.notifier.Notify(ctx, Notification{
			Kind:    NotificationTeamRegistered,
			TeamID:  t.ID,
			EventID: t.EventID,
		})
	}
	return created, nil
}

func (s *RegistrationService) registerTournamentTeam(ctx context.Context, t team.Team) (bool, error) {
	regID, err := s.idGen.NewID()
	if err != nil {
		return false, fmt.Errorf("generate registration id: %w", err)
	}
	now := s.now().UTC()
	created, err := s.tournamentRepo.CreateRegistrationWithPoints(ctx,
		tournament.Registration{
			ID:           regID,
			TournamentID: t.TournamentID,
			TeamID:       t.ID,
			Status:       tournament.RegistrationStatusRegistered,
			CreatedAt:    now,
		},
		tournament.Points{
			TournamentID: t.TournamentID,
			TeamID:       t.ID,
			UpdatedAt:    now,
		},
	)
	if err != nil {
		return false, fmt.Errorf("create tournament registration with points: %w", err)
	}
	if created {
		s.notifier.Notify(ctx, Notification{
			Kind:         NotificationTeamRegistered,
			TeamID:       t.ID,
			TournamentID: t.TournamentID,
		})
	}
	return created, nil
}

// IsTeamRegistered reports whether the team already holds a registration in
// its owning event or tournament.
func (s *RegistrationService) IsTeamRegistered(ctx context.Context, t team.Team) (bool, error) {
	if t.IsTournament {
		_, exists, err := s.tournamentRepo.GetRegistration(ctx, t.TournamentID, t.ID)
		if err != nil {
			return false, fmt.Errorf("get tournament registration: %w", err)
		}
		return exists, nil
	}
	_, exists, err := s.regRepo.GetTeamRegistration(ctx, t.EventID, t.ID)
	if err != nil {
		return false, fmt.Errorf("get team registration: %w", err)
	}
	return exists, nil
}

// requiredTeamSize resolves the authoritative team size from the event or
// tournament the team belongs to, never from the team row itself.
func (s *RegistrationService) requiredTeamSize(ctx context.Context, t team.Team) (int, error) {
	if t.IsTournament {
		tour, exists, err := s.tournamentRepo.GetByID(ctx, t.TournamentID)
		if err != nil {
			return 0, fmt.Errorf("get tournament for team size: %w", err)
		}
		if !exists {
			return 0, fmt.Errorf("%w: tournament=%s", ErrNotFound, t.TournamentID)
		}
		if tour.TeamSize <= 0 {
			return 0, fmt.Errorf("%w: tournament has no team size configured", ErrInvalidInput)
		}
		return tour.TeamSize, nil
	}

	ev, exists, err := s.eventRepo.GetByID(ctx, t.EventID)
	if err != nil {
		return 0, fmt.Errorf("get event for team size: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: event=%s", ErrNotFound, t.EventID)
	}
	if ev.TeamSize <= 0 {
		return 0, fmt.Errorf("%w: event has no team size configured", ErrInvalidInput)
	}
	return ev.TeamSize, nil
}

type RegisterIndividualInput struct {
	UserID  string
	EventID string
}

// RegisterIndividual registers a single user for an event that accepts
// individual participants. Registering twice is rejected, not duplicated.
func (s *RegistrationService) RegisterIndividual(ctx context.Context, input RegisterIndividualInput) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "RegistrationService.RegisterIndividual")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.EventID = strings.TrimSpace(input.EventID)
	if input.UserID == "" {
		return registration.Registration{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.EventID == "" {
		return registration.Registration{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	ev, exists, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: event=%s", ErrNotFound, input.EventID)
	}
	if !ev.AcceptsTeams(s.now().UTC()) {
		return registration.Registration{}, fmt.Errorf("%w: event registration is closed", ErrInvalidInput)
	}
	if ev.MaxParticipants > 0 {
		count, err := s.regRepo.CountByEvent(ctx, input.EventID)
		if err != nil {
			return registration.Registration{}, fmt.Errorf("count event registrations: %w", err)
		}
		if count >= ev.MaxParticipants {
			return registration.Registration{}, fmt.Errorf("%w: event is full", ErrConflict)
		}
	}

	regID, err := s.idGen.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}
	reg := registration.Registration{
		ID:        regID,
		EventID:   input.EventID,
		Type:      registration.TypeIndividual,
		UserID:    input.UserID,
		Status:    registration.StatusRegistered,
		CreatedAt: s.now().UTC(),
	}
	created, err := s.regRepo.CreateIndividualRegistration(ctx, reg)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("create individual registration: %w", err)
	}
	if !created {
		return registration.Registration{}, fmt.Errorf("%w: you are already registered for this event", ErrConflict)
	}
	return reg, nil
}
