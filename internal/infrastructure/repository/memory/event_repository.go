package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/communitylabs/eventhub/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{items: make(map[string]event.Event)}
}

func (r *EventRepository) Put(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[eventID]
	if !ok {
		return event.Event{}, false, nil
	}
	return e, true, nil
}

func (r *EventRepository) ListByStatus(_ context.Context, status event.Status) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))
	for _, e := range r.items {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepository) ListByTournament(_ context.Context, tournamentID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, e := range r.items {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func sortEvents(events []event.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].ID < events[j].ID
	})
}
