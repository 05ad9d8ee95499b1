package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/communitylabs/eventhub/internal/domain/registration"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	items map[string]registration.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{items: make(map[string]registration.Registration)}
}

func (r *RegistrationRepository) CreateTeamRegistration(_ context.Context, reg registration.Registration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.EventID == reg.EventID && existing.Type == registration.TypeTeam && existing.TeamID == reg.TeamID {
			return false, nil
		}
	}
	r.items[reg.ID] = reg
	return true, nil
}

func (r *RegistrationRepository) CreateIndividualRegistration(_ context.Context, reg registration.Registration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.EventID == reg.EventID && existing.Type == registration.TypeIndividual && existing.UserID == reg.UserID {
			return false, nil
		}
	}
	r.items[reg.ID] = reg
	return true, nil
}

func (r *RegistrationRepository) GetTeamRegistration(_ context.Context, eventID, teamID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.items {
		if reg.EventID == eventID && reg.Type == registration.TypeTeam && reg.TeamID == teamID {
			return reg, true, nil
		}
	}
	return registration.Registration{}, false, nil
}

func (r *RegistrationRepository) GetUserRegistration(_ context.Context, eventID, userID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.items {
		if reg.EventID == eventID && reg.Type == registration.TypeIndividual && reg.UserID == userID {
			return reg, true, nil
		}
	}
	return registration.Registration{}, false, nil
}

func (r *RegistrationRepository) ListByEvent(_ context.Context, eventID string) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0)
	for _, reg := range r.items {
		if reg.EventID == eventID {
			out = append(out, reg)
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

func (r *RegistrationRepository) CountByEvent(_ context.Context, eventID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, reg := range r.items {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}
