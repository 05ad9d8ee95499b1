package usecase

import "context"

const (
	NotificationTeamRegistered     = "team.registered"
	NotificationInvitationCreated  = "invitation.created"
	NotificationInvitationDecided  = "invitation.decided"
	NotificationApplicationDecided = "application.decided"
)

// Notification is the payload handed to the notification dispatcher after a
// state change. Delivery is best effort and never blocks the write path.
type Notification struct {
	Kind         string
	TeamID       string
	EventID      string
	TournamentID string
	UserID       string
	Detail       string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NopNotifier discards notifications. Used in tests and as the fallback when
// no webhook endpoint is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}
