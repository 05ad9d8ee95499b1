package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/communitylabs/eventhub/internal/domain/team"
)

func TestApplicationService_ApplyAndAccept(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	application, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{
		UserID: "alice", TeamID: created.Team.ID, Message: "let me in",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if application.Status != team.ApplicationStatusPending {
		t.Fatalf("expected pending application, got %s", application.Status)
	}

	result, err := s.appSvc.Respond(t.Context(), RespondApplicationInput{
		UserID:        "leader",
		ApplicationID: application.ID,
		Accept:        true,
	})
	if err != nil {
		t.Fatalf("accept application: %v", err)
	}
	if result.Application.Status != team.ApplicationStatusAccepted {
		t.Fatalf("expected accepted, got %s", result.Application.Status)
	}
	if !result.Registered {
		t.Fatal("accepting into the last slot must register the team")
	}
	if isMember, _ := s.teams.IsMember(t.Context(), created.Team.ID, "alice"); !isMember {
		t.Fatal("accepted applicant is not a member")
	}
}

func TestApplicationService_Apply_Rejections(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "other-leader", Name: "Other Team", EventID: "ev-1",
	}); err != nil {
		t.Fatalf("create other team: %v", err)
	}

	// Leader applying to their own team.
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "leader", TeamID: created.Team.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for own team, got %v", err)
	}
	// Member of one team applying to another in the same event.
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "other-leader", TeamID: created.Team.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for cross-team applicant, got %v", err)
	}

	// Double application.
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "alice", TeamID: created.Team.ID}); err != nil {
		t.Fatalf("first application: %v", err)
	}
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "alice", TeamID: created.Team.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for repeated application, got %v", err)
	}

	// Unknown team.
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "bob", TeamID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplicationService_Respond_OnlyLeaderDecides(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	application, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "alice", TeamID: created.Team.ID})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err = s.appSvc.Respond(t.Context(), RespondApplicationInput{
		UserID:        "alice",
		ApplicationID: application.ID,
		Accept:        true,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-leader, got %v", err)
	}
}

func TestApplicationService_Respond_RejectLeavesRosterUntouched(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	application, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "alice", TeamID: created.Team.ID})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	result, err := s.appSvc.Respond(t.Context(), RespondApplicationInput{
		UserID:        "leader",
		ApplicationID: application.ID,
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if result.Application.Status != team.ApplicationStatusRejected {
		t.Fatalf("expected rejected, got %s", result.Application.Status)
	}
	if isMember, _ := s.teams.IsMember(t.Context(), created.Team.ID, "alice"); isMember {
		t.Fatal("rejected applicant became a member")
	}

	// Settled applications stay settled.
	_, err = s.appSvc.Respond(t.Context(), RespondApplicationInput{
		UserID:        "leader",
		ApplicationID: application.ID,
		Accept:        true,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on settled application, got %v", err)
	}
}

func TestApplicationService_ListByTeam(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "alice", TeamID: created.Team.ID}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	applications, err := s.appSvc.ListByTeam(t.Context(), "leader", created.Team.ID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(applications))
	}

	if _, err := s.appSvc.ListByTeam(t.Context(), "alice", created.Team.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-leader, got %v", err)
	}
}

func TestApplicationService_ApplyToRegisteredTeamRejected(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Closed Shop", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	registered, err := s.registrar.AdmitMember(t.Context(), created.Team, "a2")
	if err != nil {
		t.Fatalf("fill team: %v", err)
	}
	if !registered {
		t.Fatal("expected team to register at capacity")
	}

	_, err = s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "bob", TeamID: created.Team.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for registered event team, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected already-registered message, got %v", err)
	}

	s.tournaments.Put(testTournament("tr-1", 1))
	solo, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "solo", Name: "Lone Wolf", TournamentID: "tr-1",
	})
	if err != nil {
		t.Fatalf("create tournament team: %v", err)
	}
	if !solo.Registered {
		t.Fatal("expected immediate tournament registration")
	}

	_, err = s.appSvc.Apply(t.Context(), ApplyToTeamInput{UserID: "bob", TeamID: solo.Team.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for registered tournament team, got %v", err)
	}
}
