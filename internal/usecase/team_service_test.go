package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/team"
)

func TestTeamService_CreateTeam_LeaderIsFirstMember(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Null Pointers",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice", "bob"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	if created.Team.LeaderID != "leader" {
		t.Fatalf("expected leader set, got %s", created.Team.LeaderID)
	}
	isMember, _ := s.teams.IsMember(t.Context(), created.Team.ID, "leader")
	if !isMember {
		t.Fatal("leader is not a member of the new team")
	}
	count, _ := s.teams.CountMembers(t.Context(), created.Team.ID)
	if count != 1 {
		t.Fatalf("expected 1 member, got %d", count)
	}

	if len(created.Invitations) != 2 {
		t.Fatalf("expected 2 invitations, got %d", len(created.Invitations))
	}
	for _, inv := range created.Invitations {
		if inv.Status != team.InvitationStatusPending {
			t.Fatalf("invitation not pending: %+v", inv)
		}
		if inv.Token == "" {
			t.Fatal("invitation token is empty")
		}
	}
	if created.Registered {
		t.Fatal("event team must not register at creation")
	}
}

func TestTeamService_CreateTeam_Validation(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	cases := []struct {
		name  string
		input CreateTeamInput
	}{
		{"missing name", CreateTeamInput{UserID: "leader", EventID: "ev-1"}},
		{"missing user", CreateTeamInput{Name: "Team", EventID: "ev-1"}},
		{"no context", CreateTeamInput{UserID: "leader", Name: "Team"}},
		{"both contexts", CreateTeamInput{UserID: "leader", Name: "Team", EventID: "ev-1", TournamentID: "tr-1"}},
		{"self invite", CreateTeamInput{UserID: "leader", Name: "Team", EventID: "ev-1", InviteeIDs: []string{"leader"}}},
		{"too many invitees", CreateTeamInput{UserID: "leader", Name: "Team", EventID: "ev-1", InviteeIDs: []string{"a", "b", "c"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.teamSvc.CreateTeam(t.Context(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestTeamService_CreateTeam_DuplicateName(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	if _, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "other", Name: "null pointers", EventID: "ev-1",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for duplicate name, got %v", err)
	}
}

func TestTeamService_CreateTeam_RejectsSecondTeamInSameEvent(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	if _, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "First Team", EventID: "ev-1",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Second Team", EventID: "ev-1",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict when leader already has a team, got %v", err)
	}
}

func TestTeamService_CreateTeam_ClosedEvent(t *testing.T) {
	s := newServices(t)
	ev := testEvent("ev-1", 3)
	ev.Status = event.StatusCompleted
	s.events.Put(ev)

	_, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Late Arrivals", EventID: "ev-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for closed event, got %v", err)
	}
}

func TestTeamService_CreateTeam_DeadlinePassed(t *testing.T) {
	s := newServices(t)
	ev := testEvent("ev-1", 3)
	ev.RegistrationDeadline = testNow.Add(-time.Minute)
	s.events.Put(ev)

	_, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Late Arrivals", EventID: "ev-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input after deadline, got %v", err)
	}
}

func TestTeamService_CreateTeam_NotifiesInvitees(t *testing.T) {
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

	kinds := s.notifier.kinds()
	sent := 0
	for _, kind := range kinds {
		if kind == NotificationInvitationCreated {
			sent++
		}
	}
	if sent != 2 {
		t.Fatalf("expected 2 invitation notifications, got %d (%v)", sent, kinds)
	}
}

func TestTeamService_GetTeam(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 3))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "leader", Name: "Null Pointers", EventID: "ev-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	detail, err := s.teamSvc.GetTeam(t.Context(), created.Team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if detail.MemberCount != 1 || detail.TeamSize != 3 {
		t.Fatalf("unexpected detail: count=%d size=%d", detail.MemberCount, detail.TeamSize)
	}

	_, err = s.teamSvc.GetTeam(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
