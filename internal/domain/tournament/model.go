package tournament

import "time"

type Status string

const (
	StatusUpcoming         Status = "upcoming"
	StatusRegistrationOpen Status = "registration_open"
	StatusOngoing          Status = "ongoing"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

type Tournament struct {
	ID          string
	Name        string
	Description string
	Status      Status
	TeamSize    int
	MaxTeams    int
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const RegistrationStatusRegistered = "registered"

// Registration records that a team is confirmed for a tournament. Created
// exactly once per (tournament, team) pair, never mutated afterwards.
type Registration struct {
	ID           string
	TournamentID string
	TeamID       string
	Status       string
	CreatedAt    time.Time
}

// Points is the per-team score sheet, initialized to zeroes in the same
// transaction as the registration row.
type Points struct {
	TournamentID  string
	TeamID        string
	Points        int
	MatchesPlayed int
	Wins          int
	Losses        int
	Draws         int
	UpdatedAt     time.Time
}

// Standing is a ranked leaderboard row derived from Points.
type Standing struct {
	Points
	Rank int
}
