package usecase

import (
	"errors"
	"testing"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
)

func seedRegisteredTeam(t *testing.T, s *services, tournamentID, teamID string) {
	t.Helper()
	created, err := s.tournaments.CreateRegistrationWithPoints(t.Context(),
		tournament.Registration{
			ID:           "reg-" + teamID,
			TournamentID: tournamentID,
			TeamID:       teamID,
			Status:       tournament.RegistrationStatusRegistered,
			CreatedAt:    testNow,
		},
		tournament.Points{TournamentID: tournamentID, TeamID: teamID, UpdatedAt: testNow},
	)
	if err != nil || !created {
		t.Fatalf("seed registration for %s: created=%v err=%v", teamID, created, err)
	}
}

func TestLeaderboardService_RecordMatchResult(t *testing.T) {
	s := newServices(t)
	s.tournaments.Put(testTournament("tr-1", 2))
	svc := NewLeaderboardService(s.tournaments)

	seedRegisteredTeam(t, s, "tr-1", "team-a")
	seedRegisteredTeam(t, s, "tr-1", "team-b")

	err := svc.RecordMatchResult(t.Context(), RecordMatchResultInput{
		TournamentID: "tr-1",
		HomeTeamID:   "team-a",
		AwayTeamID:   "team-b",
		HomeScore:    2,
		AwayScore:    1,
	})
	if err != nil {
		t.Fatalf("record win: %v", err)
	}
	err = svc.RecordMatchResult(t.Context(), RecordMatchResultInput{
		TournamentID: "tr-1",
		HomeTeamID:   "team-a",
		AwayTeamID:   "team-b",
		HomeScore:    0,
		AwayScore:    0,
	})
	if err != nil {
		t.Fatalf("record draw: %v", err)
	}

	points, _ := s.tournaments.ListPointsByTournament(t.Context(), "tr-1")
	byTeam := make(map[string]tournament.Points, len(points))
	for _, p := range points {
		byTeam[p.TeamID] = p
	}

	a := byTeam["team-a"]
	if a.Points != 4 || a.MatchesPlayed != 2 || a.Wins != 1 || a.Draws != 1 || a.Losses != 0 {
		t.Fatalf("unexpected points for team-a: %+v", a)
	}
	b := byTeam["team-b"]
	if b.Points != 1 || b.MatchesPlayed != 2 || b.Wins != 0 || b.Draws != 1 || b.Losses != 1 {
		t.Fatalf("unexpected points for team-b: %+v", b)
	}
}

func TestLeaderboardService_RecordMatchResult_Validation(t *testing.T) {
	s := newServices(t)
	s.tournaments.Put(testTournament("tr-1", 2))
	svc := NewLeaderboardService(s.tournaments)
	seedRegisteredTeam(t, s, "tr-1", "team-a")

	err := svc.RecordMatchResult(t.Context(), RecordMatchResultInput{
		TournamentID: "tr-1", HomeTeamID: "team-a", AwayTeamID: "team-a",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for self match, got %v", err)
	}

	err = svc.RecordMatchResult(t.Context(), RecordMatchResultInput{
		TournamentID: "tr-1", HomeTeamID: "team-a", AwayTeamID: "ghosts",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unregistered team, got %v", err)
	}
}

func TestLeaderboardService_Standings_DenseRanks(t *testing.T) {
	s := newServices(t)
	s.tournaments.Put(testTournament("tr-1", 2))
	svc := NewLeaderboardService(s.tournaments)

	for _, teamID := range []string{"team-a", "team-b", "team-c", "team-d"} {
		seedRegisteredTeam(t, s, "tr-1", teamID)
	}
	// a: 6 pts 2 wins, b: 6 pts 2 wins (tie), c: 3 pts, d: 0 pts.
	addOutcome := func(teamID string, points, wins, draws, losses int) {
		if err := s.tournaments.AddMatchOutcome(t.Context(), "tr-1", teamID, points, wins, draws, losses); err != nil {
			t.Fatalf("add outcome: %v", err)
		}
	}
	addOutcome("team-a", 3, 1, 0, 0)
	addOutcome("team-a", 3, 1, 0, 0)
	addOutcome("team-b", 3, 1, 0, 0)
	addOutcome("team-b", 3, 1, 0, 0)
	addOutcome("team-c", 3, 1, 0, 0)
	addOutcome("team-d", 0, 0, 0, 1)

	standings, err := svc.Standings(t.Context(), "tr-1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings))
	}

	if standings[0].Rank != 1 || standings[1].Rank != 1 {
		t.Fatalf("expected shared rank 1, got %d and %d", standings[0].Rank, standings[1].Rank)
	}
	if standings[2].Rank != 2 || standings[2].TeamID != "team-c" {
		t.Fatalf("expected team-c at rank 2, got %s at %d", standings[2].TeamID, standings[2].Rank)
	}
	if standings[3].Rank != 3 || standings[3].TeamID != "team-d" {
		t.Fatalf("expected team-d at rank 3, got %s at %d", standings[3].TeamID, standings[3].Rank)
	}
}

func TestLeaderboardService_Standings_UnknownTournament(t *testing.T) {
	s := newServices(t)
	svc := NewLeaderboardService(s.tournaments)

	_, err := svc.Standings(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeaderboardService_NewTeamStartsAtZero(t *testing.T) {
	s := newServices(t)
	tour := testTournament("tr-1", 1)
	s.tournaments.Put(tour)

	created, err := s.teamSvc.CreateTeam(t.Context(), CreateTeamInput{
		UserID: "solo", Name: "Lone Wolf", TournamentID: "tr-1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if !created.Registered {
		t.Fatal("expected immediate registration")
	}

	svc := NewLeaderboardService(s.tournaments)
	standings, err := svc.Standings(t.Context(), "tr-1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("expected 1 row, got %d", len(standings))
	}
	row := standings[0]
	if row.Points.Points != 0 || row.MatchesPlayed != 0 {
		t.Fatalf("new team not at zero: %+v", row)
	}
	if !row.UpdatedAt.Equal(testNow) {
		t.Fatalf("unexpected updated_at: %v", row.UpdatedAt)
	}
}
