package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/communitylabs/eventhub/internal/domain/team"
)

func TestInvitationService_Respond_AcceptCompletesTeam(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	invitationID := created.Invitations[0].ID

	result, err := s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID:       "alice",
		InvitationID: invitationID,
		Accept:       true,
	})
	if err != nil {
		t.Fatalf("accept invitation: %v", err)
	}
	if result.Invitation.Status != team.InvitationStatusAccepted {
		t.Fatalf("expected accepted, got %s", result.Invitation.Status)
	}
	if result.Invitation.RespondedAt == nil {
		t.Fatal("responded_at not set")
	}
	if !result.Registered {
		t.Fatal("accepting the last slot must register the team")
	}
	if _, exists, _ := s.registrations.GetTeamRegistration(t.Context(), "ev-1", created.Team.ID); !exists {
		t.Fatal("no event registration after team completed")
	}
}

func TestInvitationService_Respond_Decline(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	invitationID := created.Invitations[0].ID

	result, err := s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID:       "alice",
		InvitationID: invitationID,
	})
	if err != nil {
		t.Fatalf("decline invitation: %v", err)
	}
	if result.Invitation.Status != team.InvitationStatusDeclined {
		t.Fatalf("expected declined, got %s", result.Invitation.Status)
	}
	if isMember, _ := s.teams.IsMember(t.Context(), created.Team.ID, "alice"); isMember {
		t.Fatal("declined invitee became a member")
	}
}

func TestInvitationService_Respond_OnlyInviteeMayRespond(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	_, err = s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID:       "mallory",
		InvitationID: created.Invitations[0].ID,
		Accept:       true,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestInvitationService_Respond_TerminalStatusIsImmutable(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	invitationID := created.Invitations[0].ID

	if _, err := s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID: "alice", InvitationID: invitationID,
	}); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// A declined invitation cannot be accepted afterwards.
	_, err = s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID: "alice", InvitationID: invitationID, Accept: true,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on settled invitation, got %v", err)
	}

	inv, _, _ := s.teams.GetInvitationByID(t.Context(), invitationID)
	if inv.Status != team.InvitationStatusDeclined {
		t.Fatalf("terminal status changed to %s", inv.Status)
	}
}

func TestInvitationService_Respond_FullTeamRejectsAccept(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := s.registrar.AdmitMember(t.Context(), created.Team, "bob"); err != nil {
		t.Fatalf("fill last slot: %v", err)
	}

	_, err = s.invitationSvc.Respond(t.Context(), RespondInvitationInput{
		UserID:       "alice",
		InvitationID: created.Invitations[0].ID,
		Accept:       true,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for full team, got %v", err)
	}

	// The failed accept leaves the invitation pending, so it can still be
	// declined cleanly.
	inv, _, _ := s.teams.GetInvitationByID(t.Context(), created.Invitations[0].ID)
	if inv.Status != team.InvitationStatusPending {
		t.Fatalf("expected invitation still pending, got %s", inv.Status)
	}
}

func TestInvitationService_Respond_ConcurrentAcceptsSingleSlot(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	// One open slot, two racing accept paths: alice's invitation and a
	// direct admission for carol. Exactly one may win the slot.
	ctx := t.Context()
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = s.invitationSvc.Respond(ctx, RespondInvitationInput{
			UserID:       "alice",
			InvitationID: created.Invitations[0].ID,
			Accept:       true,
		})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = s.registrar.AdmitMember(ctx, created.Team, "carol")
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}

	count, _ := s.teams.CountMembers(ctx, created.Team.ID)
	if count != 2 {
		t.Fatalf("over-admission: member count %d", count)
	}
	regs, _ := s.registrations.ListByEvent(ctx, "ev-1")
	teamRegs := 0
	for _, reg := range regs {
		if reg.TeamID == created.Team.ID {
			teamRegs++
		}
	}
	if teamRegs != 1 {
		t.Fatalf("expected exactly one registration for the team, got %d", teamRegs)
	}
}

func TestInvitationService_ListMyInvitations(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	if _, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice", "bob"},
	}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	invitations, err := s.invitationSvc.ListMyInvitations(t.Context(), "alice")
	if err != nil {
		t.Fatalf("list invitations: %v", err)
	}
	if len(invitations) != 1 {
		t.Fatalf("expected 1 invitation for alice, got %d", len(invitations))
	}
	if invitations[0].InviteeID != "alice" {
		t.Fatalf("wrong invitee: %s", invitations[0].InviteeID)
	}
}
