package registration

import "time"

type Type string

const (
	TypeIndividual Type = "individual"
	TypeTeam       Type = "team"
)

const StatusRegistered = "registered"

// Registration records a confirmed event entry, either for a whole team or
// for a single user. Exactly one of TeamID / UserID is set according to Type.
type Registration struct {
	ID        string
	EventID   string
	Type      Type
	UserID    string
	TeamID    string
	Status    string
	CreatedAt time.Time
}
