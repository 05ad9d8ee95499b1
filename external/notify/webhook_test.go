package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/communitylabs/eventhub/internal/platform/resilience"
)

func TestWebhookClient_PublishSendsKindHeaderAndBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("X-Notification-Kind"); got != "team.registered" {
			t.Errorf("unexpected kind header: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hook-secret" {
			t.Errorf("unexpected authorization: %s", got)
		}

		var body map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["team_id"] != "team-1" {
			t.Errorf("unexpected team_id: %s", body["team_id"])
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookConfig{
		Endpoint:  srv.URL,
		AuthToken: "hook-secret",
	}, nil)

	if err := client.Publish(context.Background(), "team.registered", map[string]string{"team_id": "team-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestWebhookClient_PublishRejectsNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookConfig{Endpoint: srv.URL}, nil)

	if err := client.Publish(context.Background(), "team.registered", map[string]string{}); err == nil {
		t.Fatal("expected delivery error")
	}
}

func TestWebhookClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookConfig{
		Endpoint: srv.URL,
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	}, nil)

	for i := 0; i < 3; i++ {
		if err := client.Publish(context.Background(), "team.registered", map[string]string{}); err == nil {
			t.Fatal("expected publish error")
		}
	}

	if calls != 2 {
		t.Fatalf("expected circuit to stop requests after 2 failures, server saw %d", calls)
	}
}
