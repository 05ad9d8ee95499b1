package event

import "time"

type Status string

const (
	StatusUpcoming         Status = "upcoming"
	StatusRegistrationOpen Status = "registration_open"
	StatusOngoing          Status = "ongoing"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// Event is the read-mostly configuration entity for a community event or
// workshop. TeamSize is the authoritative capacity used to decide when a
// team is full.
type Event struct {
	ID                   string
	Name                 string
	Description          string
	Type                 string
	Status               Status
	TeamSize             int
	MaxParticipants      int
	RegistrationDeadline time.Time
	IsTournament         bool
	TournamentID         string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AcceptsTeams reports whether new teams may still form for this event.
func (e Event) AcceptsTeams(now time.Time) bool {
	if e.Status != StatusRegistrationOpen {
		return false
	}
	if e.RegistrationDeadline.IsZero() {
		return true
	}
	return now.Before(e.RegistrationDeadline)
}
