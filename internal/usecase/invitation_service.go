package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/team"
)

type RespondInvitationInput struct {
	UserID       string
	InvitationID string
	Accept       bool
}

type RespondInvitationResult struct {
	Invitation team.Invitation
	// Registered is true when this acceptance completed the team and the
	// team got registered for its event or tournament.
	Registered bool
}

type InvitationService struct {
	teamRepo  team.Repository
	registrar teamRegistrar
	notifier  Notifier
	now       func() time.Time
}

func NewInvitationService(teamRepo team.Repository, registrar teamRegistrar, notifier Notifier) *InvitationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InvitationService{
		teamRepo:  teamRepo,
		registrar: registrar,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Respond resolves a pending invitation. Accepting admits the invitee to the
// team first and flips the invitation status last, so a failure between the
// two leaves the invitation pending and the whole call safely retryable.
func (s *InvitationService) Respond(ctx context.Context, input RespondInvitationInput) (RespondInvitationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "InvitationService.Respond")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InvitationID = strings.TrimSpace(input.InvitationID)
	if input.UserID == "" {
		return RespondInvitationResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.InvitationID == "" {
		return RespondInvitationResult{}, fmt.Errorf("%w: invitation id is required", ErrInvalidInput)
	}

	inv, exists, err := s.teamRepo.GetInvitationByID(ctx, input.InvitationID)
	if err != nil {
		return RespondInvitationResult{}, fmt.Errorf("get invitation: %w", err)
	}
	if !exists {
		return RespondInvitationResult{}, fmt.Errorf("%w: invitation=%s", ErrNotFound, input.InvitationID)
	}
	if inv.InviteeID != input.UserID {
		return RespondInvitationResult{}, fmt.Errorf("%w: this invitation is not addressed to you", ErrUnauthorized)
	}
	if inv.Status != team.InvitationStatusPending {
		return RespondInvitationResult{}, fmt.Errorf("%w: invitation has already been %s", ErrConflict, inv.Status)
	}

	now := s.now().UTC()

	if !input.Accept {
		flipped, err := s.teamRepo.MarkInvitationResponded(ctx, inv.ID, team.InvitationStatusDeclined, now)
		if err != nil {
			return RespondInvitationResult{}, fmt.Errorf("decline invitation: %w", err)
		}
		if !flipped {
			return RespondInvitationResult{}, fmt.Errorf("%w: invitation has already been handled", ErrConflict)
		}
		inv.Status = team.InvitationStatusDeclined
		inv.RespondedAt = &now
		s.notifyDecided(ctx, inv)
		return RespondInvitationResult{Invitation: inv}, nil
	}

	t, exists, err := s.teamRepo.GetByID(ctx, inv.TeamID)
	if err != nil {
		return RespondInvitationResult{}, fmt.Errorf("get team for invitation: %w", err)
	}
	if !exists {
		return RespondInvitationResult{}, fmt.Errorf("%w: team=%s", ErrNotFound, inv.TeamID)
	}

	registered, err := s.registrar.AdmitMember(ctx, t, input.UserID)
	if err != nil {
		return RespondInvitationResult{}, err
	}

	flipped, err := s.teamRepo.MarkInvitationResponded(ctx, inv.ID, team.InvitationStatusAccepted, now)
	if err != nil {
		return RespondInvitationResult{}, fmt.Errorf("accept invitation: %w", err)
	}
	if !flipped {
		// A concurrent responder won the status flip. Membership is already
		// idempotent, so report the conflict without undoing anything.
		return RespondInvitationResult{}, fmt.Errorf("%w: invitation has already been handled", ErrConflict)
	}
	inv.Status = team.InvitationStatusAccepted
	inv.RespondedAt = &now
	s.notifyDecided(ctx, inv)

	return RespondInvitationResult{Invitation: inv, Registered: registered}, nil
}

func (s *InvitationService) ListMyInvitations(ctx context.Context, userID string) ([]team.Invitation, error) {
	ctx, span := startUsecaseSpan(ctx, "InvitationService.ListMyInvitations")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	invitations, err := s.teamRepo.ListInvitationsByInvitee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invitations by invitee: %w", err)
	}
	return invitations, nil
}

func (s *InvitationService) notifyDecided(ctx context.Context, inv team.Invitation) {
	s.notifier.Notify(ctx, Notification{
		Kind:         NotificationInvitationDecided,
		TeamID:       inv.TeamID,
		EventID:      inv.EventID,
		TournamentID: inv.TournamentID,
		UserID:       inv.InviteeID,
		Detail:       string(inv.Status),
	})
}
