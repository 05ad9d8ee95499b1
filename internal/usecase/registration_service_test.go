package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/tournament"
	"github.com/communitylabs/eventhub/internal/infrastructure/repository/memory"
)

type seqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notification)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.items))
	for _, item := range n.items {
		out = append(out, item.Kind)
	}
	return out
}

var testNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func testEvent(id string, teamSize int) event.Event {
	return event.Event{
		ID:                   id,
		Name:                 "Summer Hack Night",
		Type:                 "competition",
		Status:               event.StatusRegistrationOpen,
		TeamSize:             teamSize,
		RegistrationDeadline: testNow.Add(48 * time.Hour),
		CreatedAt:            testNow.Add(-time.Hour),
		UpdatedAt:            testNow.Add(-time.Hour),
	}
}

func testTournament(id string, teamSize int) tournament.Tournament {
	return tournament.Tournament{
		ID:        id,
		Name:      "Autumn Cup",
		Status:    tournament.StatusRegistrationOpen,
		TeamSize:  teamSize,
		StartsAt:  testNow.Add(72 * time.Hour),
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

type services struct {
	events        *memory.EventRepository
	tournaments   *memory.TournamentRepository
	teams         *memory.TeamRepository
	registrations *memory.RegistrationRepository
	notifier      *recordingNotifier
	registrar     *RegistrationService
	teamSvc       *TeamService
	invitationSvc *InvitationService
	appSvc        *ApplicationService
}

func newServices(t *testing.T) *services {
	t.Helper()

	s := &services{
		events:        memory.NewEventRepository(),
		tournaments:   memory.NewTournamentRepository(),
		teams:         memory.NewTeamRepository(),
		registrations: memory.NewRegistrationRepository(),
		notifier:      &recordingNotifier{},
	}
	idGen := &seqIDGenerator{prefix: "id"}
	s.registrar = NewRegistrationService(s.events, s.tournaments, s.teams, s.registrations, s.notifier, idGen)
	s.registrar.now = func() time.Time { return testNow }
	s.teamSvc = NewTeamService(s.events, s.tournaments, s.teams, s.registrar, s.notifier, idGen)
	s.teamSvc.now = func() time.Time { return testNow }
	s.invitationSvc = NewInvitationService(s.teams, s.registrar, s.notifier)
	s.invitationSvc.now = func() time.Time { return testNow }
	s.appSvc = NewApplicationService(s.teams, s.registrar, s.notifier, idGen)
	s.appSvc.now = func() time.Time { return testNow }
	return s
}

func TestRegistrationService_AdmitMember_RegistersAtExactCapacity(t *testing.T) {
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

	registered, err := s.registrar.AdmitMember(t.Context(), created.Team, "alice")
	if err != nil {
		t.Fatalf("admit second member: %v", err)
	}
	if registered {
		t.Fatal("team registered at 2/3 members")
	}
	if _, exists, _ := s.registrations.GetTeamRegistration(t.Context(), "ev-1", created.Team.ID); exists {
		t.Fatal("registration exists before capacity reached")
	}

	registered, err = s.registrar.AdmitMember(t.Context(), created.Team, "bob")
	if err != nil {
		t.Fatalf("admit third member: %v", err)
	}
	if !registered {
		t.Fatal("team not registered when member count reached team size")
	}

	reg, exists, err := s.registrations.GetTeamRegistration(t.Context(), "ev-1", created.Team.ID)
	if err != nil || !exists {
		t.Fatalf("expected event registration, exists=%v err=%v", exists, err)
	}
	if reg.Status != "registered" {
		t.Fatalf("expected status registered, got %s", reg.Status)
	}
}

func TestRegistrationService_AdmitMember_IdempotentForExistingMember(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Retry Club",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	if _, err := s.registrar.AdmitMember(t.Context(), created.Team, "alice"); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	// Retrying the same admission must not fail or double-register.
	registered, err := s.registrar.AdmitMember(t.Context(), created.Team, "alice")
	if err != nil {
		t.Fatalf("second admit: %v", err)
	}
	if registered {
		t.Fatal("retry reported a fresh registration")
	}

	count, _ := s.teams.CountMembers(t.Context(), created.Team.ID)
	if count != 2 {
		t.Fatalf("expected 2 members, got %d", count)
	}
}

func TestRegistrationService_AdmitMember_RejectsWhenFull(t *testing.T) {
	s := newServices(t)
	s.events.Put(testEvent("ev-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:     "leader",
		Name:       "Full House",
		EventID:    "ev-1",
		InviteeIDs: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := s.registrar.AdmitMember(t.Context(), created.Team, "alice"); err != nil {
		t.Fatalf("admit alice: %v", err)
	}

	_, err = s.registrar.AdmitMember(t.Context(), created.Team, "carol")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for full team, got %v", err)
	}
	count, _ := s.teams.CountMembers(t.Context(), created.Team.ID)
	if count != 2 {
		t.Fatalf("expected member count pinned at 2, got %d", count)
	}
}

func TestRegistrationService_TournamentRegistrationCreatesZeroedPoints(t *testing.T) {
	s := newServices(t)
	s.tournaments.Put(testTournament("tr-1", 2))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:       "leader",
		Name:         "Cup Chasers",
		TournamentID: "tr-1",
		InviteeIDs:   []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	registered, err := s.registrar.AdmitMember(t.Context(), created.Team, "alice")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !registered {
		t.Fatal("expected tournament registration at capacity")
	}

	points, err := s.tournaments.ListPointsByTournament(t.Context(), "tr-1")
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected one points row, got %d", len(points))
	}
	p := points[0]
	if p.TeamID != created.Team.ID {
		t.Fatalf("points row for wrong team: %s", p.TeamID)
	}
	if p.Points != 0 || p.MatchesPlayed != 0 || p.Wins != 0 || p.Losses != 0 || p.Draws != 0 {
		t.Fatalf("expected zeroed points row, got %+v", p)
	}
}

func TestRegistrationService_RegisterFormedTeam_Idempotent(t *testing.T) {
	s := newServices(t)
	s.tournaments.Put(testTournament("tr-1", 1))

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID:       "solo",
		Name:         "Lone Wolf",
		TournamentID: "tr-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if !created.Registered {
		t.Fatal("tournament team with no invitees must register on creation")
	}

	again, err := s.registrar.RegisterFormedTeam(t.Context(), created.Team)
	if err != nil {
		t.Fatalf("repeat registration: %v", err)
	}
	if again {
		t.Fatal("repeat registration reported as newly created")
	}

	regs, _ := s.tournaments.ListRegistrationsByTournament(t.Context(), "tr-1")
	if len(regs) != 1 {
		t.Fatalf("expected exactly one registration, got %d", len(regs))
	}
}

func TestRegistrationService_RegisterIndividual(t *testing.T) {
	s := newServices(t)
	ev := testEvent("ev-1", 1)
	ev.MaxParticipants = 2
	s.events.Put(ev)

	reg, err := s.registrar.RegisterIndividual(t.Context(), RegisterIndividualInput{UserID: "alice", EventID: "ev-1"})
	if err != nil {
		t.Fatalf("register individual: %v", err)
	}
	if reg.Type != "individual" || reg.UserID != "alice" {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	_, err = s.registrar.RegisterIndividual(t.Context(), RegisterIndividualInput{UserID: "alice", EventID: "ev-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on duplicate registration, got %v", err)
	}

	if _, err := s.registrar.RegisterIndividual(t.Context(), RegisterIndividualInput{UserID: "bob", EventID: "ev-1"}); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	_, err = s.registrar.RegisterIndividual(t.Context(), RegisterIndividualInput{UserID: "carol", EventID: "ev-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict once event is full, got %v", err)
	}
}

func TestRegistrationService_RegisterIndividual_ClosedEvent(t *testing.T) {
	s := newServices(t)
	ev := testEvent("ev-1", 1)
	ev.Status = event.StatusOngoing
	s.events.Put(ev)

	_, err := s.registrar.RegisterIndividual(t.Context(), RegisterIndividualInput{UserID: "alice", EventID: "ev-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for closed event, got %v", err)
	}
}
