package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/communitylabs/eventhub/internal/domain/event"
	"github.com/communitylabs/eventhub/internal/platform/cache"
)

// EventService serves the read-mostly event catalog through a short-lived
// cache, since events change orders of magnitude less often than they are
// listed.
type EventService struct {
	eventRepo event.Repository
	cache     *cache.Store
}

func NewEventService(eventRepo event.Repository, store *cache.Store) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		cache:     store,
	}
}

func (s *EventService) ListEvents(ctx context.Context, status event.Status) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListEvents")
	defer span.End()

	key := "events:status:" + string(status)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		events, err := s.eventRepo.ListByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("list events by status: %w", err)
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	events, ok := value.([]event.Event)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", key)
	}
	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.GetEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	key := "events:id:" + eventID
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		ev, exists, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
		}
		return ev, nil
	})
	if err != nil {
		return event.Event{}, err
	}
	ev, ok := value.(event.Event)
	if !ok {
		return event.Event{}, fmt.Errorf("unexpected cache payload for %s", key)
	}
	return ev, nil
}

func (s *EventService) ListTournamentEvents(ctx context.Context, tournamentID string) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListTournamentEvents")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	events, err := s.eventRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list events by tournament: %w", err)
	}
	return events, nil
}
