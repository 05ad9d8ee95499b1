package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/communitylabs/eventhub/internal/domain/event"
	eventmock "github.com/communitylabs/eventhub/internal/mocks/domain/event"
	"github.com/communitylabs/eventhub/internal/platform/cache"
)

func TestEventService_ListEvents_CachesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventRepo := eventmock.NewRepository(t)
	service := NewEventService(eventRepo, cache.NewStore(time.Minute))

	expected := []event.Event{
		{ID: "ev-1", Name: "Summer Hack Night", Status: event.StatusRegistrationOpen},
		{ID: "ev-2", Name: "Go Meetup", Status: event.StatusRegistrationOpen},
	}
	eventRepo.
		On("ListByStatus", mock.Anything, event.StatusRegistrationOpen).
		Return(expected, nil).
		Once()

	first, err := service.ListEvents(ctx, event.StatusRegistrationOpen)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 events, got %d", len(first))
	}

	// Second call must be served from the cache: the Once() expectation
	// above fails the test if the repository is hit again.
	second, err := service.ListEvents(ctx, event.StatusRegistrationOpen)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 cached events, got %d", len(second))
	}
}

func TestEventService_GetEvent_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	service := NewEventService(eventRepo, cache.NewStore(time.Minute))

	dbErr := errors.New("connection refused")
	eventRepo.
		On("GetByID", mock.Anything, "ev-1").
		Return(event.Event{}, false, dbErr).
		Once()

	_, err := service.GetEvent(context.Background(), "ev-1")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
