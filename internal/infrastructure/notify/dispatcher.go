package notify

import (
	"context"
	"time"

	"github.com/communitylabs/eventhub/internal/platform/logging"
	"github.com/communitylabs/eventhub/internal/usecase"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultPoolSize       = 32
	defaultDeliverTimeout = 10 * time.Second
)

// Publisher is the delivery backend for notifications, typically the
// webhook client.
type Publisher interface {
	Publish(ctx context.Context, kind string, payload any) error
}

// AsyncDispatcher fans notifications out on a bounded worker pool so
// delivery never blocks the registration write path. Failed deliveries are
// logged and dropped, not retried.
type AsyncDispatcher struct {
	pool      *ants.Pool
	publisher Publisher
	timeout   time.Duration
	logger    *logging.Logger
}

func NewAsyncDispatcher(publisher Publisher, poolSize int, logger *logging.Logger) (*AsyncDispatcher, error) {
	if poolSize < 1 {
		poolSize = defaultPoolSize
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &AsyncDispatcher{
		pool:      pool,
		publisher: publisher,
		timeout:   defaultDeliverTimeout,
		logger:    logger,
	}, nil
}

type notificationPayload struct {
	Kind         string `json:"kind"`
	TeamID       string `json:"team_id,omitempty"`
	EventID      string `json:"event_id,omitempty"`
	TournamentID string `json:"tournament_id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

func (d *AsyncDispatcher) Notify(ctx context.Context, n usecase.Notification) {
	payload := notificationPayload{
		Kind:         n.Kind,
		TeamID:       n.TeamID,
		EventID:      n.EventID,
		TournamentID: n.TournamentID,
		UserID:       n.UserID,
		Detail:       n.Detail,
	}

	err := d.pool.Submit(func() {
		// Detached from the request context: the HTTP response must not
		// wait for, or be cancelled along with, the delivery.
		deliverCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.publisher.Publish(deliverCtx, payload.Kind, payload); err != nil {
			d.logger.WarnContext(deliverCtx, "notification delivery failed", "kind", payload.Kind, "team_id", payload.TeamID, "error", err)
		}
	})
	if err != nil {
		d.logger.WarnContext(ctx, "notification dropped, worker pool saturated", "kind", n.Kind, "team_id", n.TeamID, "error", err)
	}
}

func (d *AsyncDispatcher) Close() {
	d.pool.Release()
}
