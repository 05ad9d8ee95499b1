package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

type RecordMatchResultInput struct {
	TournamentID string
	HomeTeamID   string
	AwayTeamID   string
	HomeScore    int
	AwayScore    int
}

// LeaderboardService maintains and serves tournament standings.
type LeaderboardService struct {
	tournamentRepo tournament.Repository
}

func NewLeaderboardService(tournamentRepo tournament.Repository) *LeaderboardService {
	return &LeaderboardService{tournamentRepo: tournamentRepo}
}

// Standings returns the leaderboard ordered by points, then wins, with dense
// ranks so tied teams share a rank.
func (s *LeaderboardService) Standings(ctx context.Context, tournamentID string) ([]tournament.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Standings")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	points, err := s.tournamentRepo.ListPointsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament points: %w", err)
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Points != points[j].Points {
			return points[i].Points > points[j].Points
		}
		if points[i].Wins != points[j].Wins {
			return points[i].Wins > points[j].Wins
		}
		return points[i].TeamID < points[j].TeamID
	})

	standings := make([]tournament.Standing, 0, len(points))
	rank := 0
	for i, p := range points {
		if i == 0 || p.Points != points[i-1].Points || p.Wins != points[i-1].Wins {
			rank++
		}
		standings = append(standings, tournament.Standing{Points: p, Rank: rank})
	}
	return standings, nil
}

// RecordMatchResult applies one finished match to both teams' score sheets.
// Wins are worth 3 points, draws 1, losses 0.
func (s *LeaderboardService) RecordMatchResult(ctx context.Context, input RecordMatchResultInput) error {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.RecordMatchResult")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if input.TournamentID == "" {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if input.HomeTeamID == "" || input.AwayTeamID == "" {
		return fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidInput)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		_, exists, err := s.tournamentRepo.GetRegistration(ctx, input.TournamentID, teamID)
		if err != nil {
			return fmt.Errorf("get tournament registration: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s is not registered for this tournament", ErrNotFound, teamID)
		}
	}

	homePoints, homeWins, homeDraws, homeLosses := matchOutcome(input.HomeScore, input.AwayScore)
	awayPoints, awayWins, awayDraws, awayLosses := matchOutcome(input.AwayScore, input.HomeScore)

	if err := s.tournamentRepo.AddMatchOutcome(ctx, input.TournamentID, input.HomeTeamID, homePoints, homeWins, homeDraws, homeLosses); err != nil {
		return fmt.Errorf("apply match outcome for home team: %w", err)
	}
	if err := s.tournamentRepo.AddMatchOutcome(ctx, input.TournamentID, input.AwayTeamID, awayPoints, awayWins, awayDraws, awayLosses); err != nil {
		return fmt.Errorf("apply match outcome for away team: %w", err)
	}
	return nil
}

func (s *LeaderboardService) GetTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.GetTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	tour, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return tour, nil
}

func matchOutcome(scored, conceded int) (points, wins, draws, losses int) {
	switch {
	case scored > conceded:
		return pointsForWin, 1, 0, 0
	case scored == conceded:
		return pointsForDraw, 0, 1, 0
	default:
		return 0, 0, 0, 1
	}
}
