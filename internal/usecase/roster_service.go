package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/domain/registration"
	"github.com/communitylabs/eventhub/internal/domain/team"
	"github.com/communitylabs/eventhub/internal/domain/tournament"
)

const rosterCountConcurrency = 8

// TeamVacancy is a team that still has open slots, for the "teams looking
// for members" listing.
type TeamVacancy struct {
	Team        team.Team
	MemberCount int
	OpenSlots   int
}

// OverviewTeam is one team's standing in the organizer view.
type OverviewTeam struct {
	Team                  team.Team
	MemberCount           int
	HasPendingInvitations bool
}

type EventOverview struct {
	Event           event.Event
	CompleteTeams   []OverviewTeam
	IncompleteTeams []OverviewTeam
	// TournamentPendingTeams holds teams registered for the linked
	// tournament that have no registration for this event yet. Empty for
	// standalone events.
	TournamentPendingTeams  []OverviewTeam
	IndividualRegistrations int
}

// RosterService answers read queries that span teams, memberships and
// registrations. Member counts fan out over a bounded goroutine pool since
// the listings touch one count query per team.
type RosterService struct {
	eventRepo      event.Repository
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	regRepo        registration.Repository
}

func NewRosterService(
	eventRepo event.Repository,
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	regRepo registration.Repository,
) *RosterService {
	return &RosterService{
		eventRepo:      eventRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		regRepo:        regRepo,
	}
}

// TeamsNeedingMembers lists event teams that have not reached the event's
// team size yet, most vacant first. Teams the caller already belongs to in
// this event are left out, since a user joins at most one team per event.
func (s *RosterService) TeamsNeedingMembers(ctx context.Context, eventID, userID string) ([]TeamVacancy, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.TeamsNeedingMembers")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	ev, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	teams, err := s.teamRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list teams by event: %w", err)
	}

	ownTeamIDs, err := s.teamRepo.ListTeamIDsByMemberInEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list caller teams in event: %w", err)
	}
	memberOf := make(map[string]struct{}, len(ownTeamIDs))
	for _, id := range ownTeamIDs {
		memberOf[id] = struct{}{}
	}

	counts, err := s.countMembers(ctx, teams)
	if err != nil {
		return nil, err
	}

	vacancies := make([]TeamVacancy, 0, len(teams))
	for _, t := range teams {
		if _, ok := memberOf[t.ID]; ok {
			continue
		}
		count := counts[t.ID]
		if count >= ev.TeamSize {
			continue
		}
		vacancies = append(vacancies, TeamVacancy{
			Team:        t,
			MemberCount: count,
			OpenSlots:   ev.TeamSize - count,
		})
	}
	sort.Slice(vacancies, func(i, j int) bool {
		if vacancies[i].OpenSlots != vacancies[j].OpenSlots {
			return vacancies[i].OpenSlots > vacancies[j].OpenSlots
		}
		return vacancies[i].Team.CreatedAt.Before(vacancies[j].Team.CreatedAt)
	})
	return vacancies, nil
}

// EventRegistrationOverview is the organizer view: teams partitioned into
// complete (registered with a full roster) and incomplete (still forming,
// flagged when invitations are outstanding), plus teams registered for the
// linked tournament but not for this event, and direct individual signups.
func (s *RosterService) EventRegistrationOverview(ctx context.Context, eventID string) (EventOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.EventRegistrationOverview")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return EventOverview{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	ev, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return EventOverview{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return EventOverview{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	teams, err := s.teamRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return EventOverview{}, fmt.Errorf("list teams by event: %w", err)
	}
	registrations, err := s.regRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return EventOverview{}, fmt.Errorf("list registrations by event: %w", err)
	}

	registeredTeams := make(map[string]struct{}, len(registrations))
	individuals := 0
	for _, r := range registrations {
		switch r.Type {
		case registration.TypeTeam:
			registeredTeams[r.TeamID] = struct{}{}
		case registration.TypeIndividual:
			individuals++
		}
	}

	counts, err := s.countMembers(ctx, teams)
	if err != nil {
		return EventOverview{}, err
	}

	overview := EventOverview{Event: ev, IndividualRegistrations: individuals}
	incomplete := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		count := counts[t.ID]
		_, registered := registeredTeams[t.ID]
		if registered && count >= ev.TeamSize {
			overview.CompleteTeams = append(overview.CompleteTeams, OverviewTeam{
				Team:        t,
				MemberCount: count,
			})
			continue
		}
		incomplete = append(incomplete, t)
	}

	pendingInvites, err := s.countPendingInvitations(ctx, incomplete)
	if err != nil {
		return EventOverview{}, err
	}
	for _, t := range incomplete {
		overview.IncompleteTeams = append(overview.IncompleteTeams, OverviewTeam{
			Team:                  t,
			MemberCount:           counts[t.ID],
			HasPendingInvitations: pendingInvites[t.ID] > 0,
		})
	}

	if ev.TournamentID != "" {
		pending, err := s.tournamentRosterMinusRegistrants(ctx, ev.TournamentID, registeredTeams)
		if err != nil {
			return EventOverview{}, err
		}
		overview.TournamentPendingTeams = pending
	}

	return overview, nil
}

// tournamentRosterMinusRegistrants resolves the teams on the tournament
// roster that have no registration row for the event, the set difference the
// organizer view shows as "expected but not signed up here yet".
func (s *RosterService) tournamentRosterMinusRegistrants(ctx context.Context, tournamentID string, eventRegistrants map[string]struct{}) ([]OverviewTeam, error) {
	rosterRegs, err := s.tournamentRepo.ListRegistrationsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament registrations: %w", err)
	}
	onRoster := make(map[string]struct{}, len(rosterRegs))
	for _, r := range rosterRegs {
		onRoster[r.TeamID] = struct{}{}
	}

	rosterTeams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	pending := make([]team.Team, 0, len(rosterTeams))
	for _, t := range rosterTeams {
		if _, ok := onRoster[t.ID]; !ok {
			continue
		}
		if _, ok := eventRegistrants[t.ID]; ok {
			continue
		}
		pending = append(pending, t)
	}

	counts, err := s.countMembers(ctx, pending)
	if err != nil {
		return nil, err
	}
	out := make([]OverviewTeam, 0, len(pending))
	for _, t := range pending {
		out = append(out, OverviewTeam{Team: t, MemberCount: counts[t.ID]})
	}
	return out, nil
}

// TournamentPendingTeams lists tournament teams that exist but have not been
// registered yet, i.e. are still collecting members.
func (s *RosterService) TournamentPendingTeams(ctx context.Context, tournamentID string) ([]TeamVacancy, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.TournamentPendingTeams")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	tour, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	registrations, err := s.tournamentRepo.ListRegistrationsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament registrations: %w", err)
	}
	registered := make(map[string]struct{}, len(registrations))
	for _, r := range registrations {
		registered[r.TeamID] = struct{}{}
	}

	pending := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if _, ok := registered[t.ID]; ok {
			continue
		}
		pending = append(pending, t)
	}

	counts, err := s.countMembers(ctx, pending)
	if err != nil {
		return nil, err
	}

	vacancies := make([]TeamVacancy, 0, len(pending))
	for _, t := range pending {
		count := counts[t.ID]
		open := tour.TeamSize - count
		if open < 0 {
			open = 0
		}
		vacancies = append(vacancies, TeamVacancy{Team: t, MemberCount: count, OpenSlots: open})
	}
	return vacancies, nil
}

func (s *RosterService) countMembers(ctx context.Context, teams []team.Team) (map[string]int, error) {
	return s.countPerTeam(ctx, teams, "count members", s.teamRepo.CountMembers)
}

func (s *RosterService) countPendingInvitations(ctx context.Context, teams []team.Team) (map[string]int, error) {
	return s.countPerTeam(ctx, teams, "count pending invitations", s.teamRepo.CountPendingInvitations)
}

func (s *RosterService) countPerTeam(ctx context.Context, teams []team.Team, what string, count func(context.Context, string) (int, error)) (map[string]int, error) {
	counts := make(map[string]int, len(teams))
	if len(teams) == 0 {
		return counts, nil
	}

	var mu sync.Mutex
	p := pool.New().WithContext(ctx).WithMaxGoroutines(rosterCountConcurrency).WithCancelOnError()
	for _, t := range teams {
		teamID := t.ID
		p.Go(func(ctx context.Context) error {
			n, err := count(ctx, teamID)
			if err != nil {
				return fmt.Errorf("%s for team=%s: %w", what, teamID, err)
			}
			mu.Lock()
			counts[teamID] = n
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
