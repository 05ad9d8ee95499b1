package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/communitylabs/eventhub/internal/domain/tournament"
)

type TournamentRepository struct {
	mu            sync.RWMutex
	items         map[string]tournament.Tournament
	registrations map[string]tournament.Registration
	points        map[string]tournament.Points
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{
		items:         make(map[string]tournament.Tournament),
		registrations: make(map[string]tournament.Registration),
		points:        make(map[string]tournament.Points),
	}
}

func (r *TournamentRepository) Put(t tournament.Tournament) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[t.ID] = t
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return t, true, nil
}

func (r *TournamentRepository) CreateRegistrationWithPoints(_ context.Context, reg tournament.Registration, points tournament.Points) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registrationKey(reg.TournamentID, reg.TeamID)
	if _, ok := r.registrations[key]; ok {
		return false, nil
	}
	r.registrations[key] = reg
	r.points[key] = points
	return true, nil
}

func (r *TournamentRepository) GetRegistration(_ context.Context, tournamentID, teamID string) (tournament.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[registrationKey(tournamentID, teamID)]
	if !ok {
		return tournament.Registration{}, false, nil
	}
	return reg, true, nil
}

func (r *TournamentRepository) ListRegistrationsByTournament(_ context.Context, tournamentID string) ([]tournament.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Registration, 0)
	for _, reg := range r.registrations {
		if reg.TournamentID == tournamentID {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *TournamentRepository) ListPointsByTournament(_ context.Context, tournamentID string) ([]tournament.Points, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Points, 0)
	for _, p := range r.points {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *TournamentRepository) AddMatchOutcome(_ context.Context, tournamentID, teamID string, points, wins, draws, losses int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registrationKey(tournamentID, teamID)
	p, ok := r.points[key]
	if !ok {
		p = tournament.Points{TournamentID: tournamentID, TeamID: teamID}
	}
	p.Points += points
	p.MatchesPlayed++
	p.Wins += wins
	p.Draws += draws
	p.Losses += losses
	p.UpdatedAt = time.Now().UTC()
	r.points[key] = p
	return nil
}

func registrationKey(tournamentID, teamID string) string {
	return tournamentID + "::" + teamID
}
