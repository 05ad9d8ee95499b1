package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/team"
)

// errDuplicate mimics the text lib/pq surfaces on unique-constraint
// violations, so services exercise the same detection path against both
// backends.
var errDuplicate = errors.New("pq: duplicate key value violates unique constraint")

type TeamRepository struct {
	mu           sync.RWMutex
	teams        map[string]team.Team
	members      map[string][]team.Member
	invitations  map[string]team.Invitation
	applications map[string]team.Application
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:        make(map[string]team.Team),
		members:      make(map[string][]team.Member),
		invitations:  make(map[string]team.Invitation),
		applications: make(map[string]team.Application),
	}
}

func (r *TeamRepository) CreateWithLeader(_ context.Context, t team.Team, leader team.Member, invitations []team.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teams {
		if existing.IsTournament != t.IsTournament {
			continue
		}
		if existing.ContextID() != t.ContextID() {
			continue
		}
		if strings.EqualFold(existing.Name, t.Name) {
			return errDuplicate
		}
	}
	if _, ok := r.teams[t.ID]; ok {
		return errDuplicate
	}

	r.teams[t.ID] = t
	r.members[t.ID] = []team.Member{leader}
	for _, inv := range invitations {
		r.invitations[inv.ID] = inv
	}
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return t, true, nil
}

func (r *TeamRepository) ListByEvent(_ context.Context, eventID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.teams {
		if !t.IsTournament && t.EventID == eventID {
			out = append(out, t)
		}
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.teams {
		if t.IsTournament && t.TournamentID == tournamentID {
			out = append(out, t)
		}
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) AddMember(_ context.Context, m team.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[m.TeamID] {
		if existing.UserID == m.UserID {
			return errDuplicate
		}
	}
	r.members[m.TeamID] = append(r.members[m.TeamID], m)
	return nil
}

func (r *TeamRepository) IsMember(_ context.Context, teamID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[teamID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepository) CountMembers(_ context.Context, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members[teamID]), nil
}

func (r *TeamRepository) ListMembers(_ context.Context, teamID string) ([]team.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.Member(nil), r.members[teamID]...), nil
}

func (r *TeamRepository) ListTeamIDsByMemberInEvent(_ context.Context, userID, eventID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for teamID, members := range r.members {
		t, ok := r.teams[teamID]
		if !ok || t.IsTournament || t.EventID != eventID {
			continue
		}
		for _, m := range members {
			if m.UserID == userID {
				out = append(out, teamID)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *TeamRepository) ListTeamIDsByMemberInTournament(_ context.Context, userID, tournamentID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for teamID, members := range r.members {
		t, ok := r.teams[teamID]
		if !ok || !t.IsTournament || t.TournamentID != tournamentID {
			continue
		}
		for _, m := range members {
			if m.UserID == userID {
				out = append(out, teamID)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *TeamRepository) GetInvitationByID(_ context.Context, invitationID string) (team.Invitation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invitations[invitationID]
	if !ok {
		return team.Invitation{}, false, nil
	}
	return inv, true, nil
}

func (r *TeamRepository) ListInvitationsByInvitee(_ context.Context, userID string) ([]team.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Invitation, 0)
	for _, inv := range r.invitations {
		if inv.InviteeID == userID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) CountPendingInvitations(_ context.Context, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, inv := range r.invitations {
		if inv.TeamID == teamID && inv.Status == team.InvitationStatusPending {
			count++
		}
	}
	return count, nil
}

func (r *TeamRepository) MarkInvitationResponded(_ context.Context, invitationID string, to team.InvitationStatus, respondedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.invitations[invitationID]
	if !ok || inv.Status != team.InvitationStatusPending {
		return false, nil
	}
	inv.Status = to
	inv.RespondedAt = &respondedAt
	r.invitations[invitationID] = inv
	return true, nil
}

func (r *TeamRepository) CreateApplication(_ context.Context, a team.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.applications {
		if existing.TeamID == a.TeamID && existing.ApplicantID == a.ApplicantID && existing.Status == team.ApplicationStatusPending {
			return errDuplicate
		}
	}
	r.applications[a.ID] = a
	return nil
}

func (r *TeamRepository) GetApplicationByID(_ context.Context, applicationID string) (team.Application, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.applications[applicationID]
	if !ok {
		return team.Application{}, false, nil
	}
	return a, true, nil
}

func (r *TeamRepository) HasPendingApplication(_ context.Context, teamID, applicantID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.applications {
		if a.TeamID == teamID && a.ApplicantID == applicantID && a.Status == team.ApplicationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepository) ListApplicationsByTeam(_ context.Context, teamID string) ([]team.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Application, 0)
	for _, a := range r.applications {
		if a.TeamID == teamID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) MarkApplicationResponded(_ context.Context, applicationID string, to team.ApplicationStatus, respondedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[applicationID]
	if !ok || a.Status != team.ApplicationStatusPending {
		return false, nil
	}
	a.Status = to
	a.RespondedAt = &respondedAt
	r.applications[applicationID] = a
	return true, nil
}

func sortTeams(teams []team.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if !teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].CreatedAt.Before(teams[j].CreatedAt)
		}
		return teams[i].ID < teams[j].ID
	})
}
