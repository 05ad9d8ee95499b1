package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
	tournamentmock "github.com/communitylabs/eventhub/internal/mocks/domain/tournament"
)

func TestLeaderboardService_RecordMatchResult_OutcomesUsingMockery(t *testing.T) {
	t.Parallel()

	repo := tournamentmock.NewRepository(t)
	service := NewLeaderboardService(repo)

	repo.
		On("GetRegistration", mock.Anything, "tr-1", "team-a").
		Return(tournament.Registration{TournamentID: "tr-1", TeamID: "team-a"}, true, nil).
		Once()
	repo.
		On("GetRegistration", mock.Anything, "tr-1", "team-b").
		Return(tournament.Registration{TournamentID: "tr-1", TeamID: "team-b"}, true, nil).
		Once()
	// Home win: 3 points and a win for the home side, a loss for the away side.
	repo.
		On("AddMatchOutcome", mock.Anything, "tr-1", "team-a", 3, 1, 0, 0).
		Return(nil).
		Once()
	repo.
		On("AddMatchOutcome", mock.Anything, "tr-1", "team-b", 0, 0, 0, 1).
		Return(nil).
		Once()

	err := service.RecordMatchResult(context.Background(), RecordMatchResultInput{
		TournamentID: "tr-1",
		HomeTeamID:   "team-a",
		AwayTeamID:   "team-b",
		HomeScore:    2,
		AwayScore:    0,
	})
	if err != nil {
		t.Fatalf("record match result: %v", err)
	}
}
