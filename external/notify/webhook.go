package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/communitylabs/eventhub/internal/platform/logging"
	"github.com/communitylabs/eventhub/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

// WebhookClient delivers notification payloads to a configured webhook
// endpoint. Request bodies are built in pooled buffers since deliveries are
// small, frequent and short-lived.
type WebhookClient struct {
	httpClient *http.Client
	endpoint   string
	authToken  string
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

type WebhookConfig struct {
	Endpoint  string
	AuthToken string
	Timeout   time.Duration
	Breaker   resilience.CircuitBreakerConfig
}

func NewWebhookClient(cfg WebhookConfig, logger *logging.Logger) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Breaker.Enabled {
		normalized := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
		breaker = resilience.NewCircuitBreaker(normalized.FailureThreshold, normalized.OpenTimeout, normalized.HalfOpenMaxReq)
	}

	return &WebhookClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		authToken:  strings.TrimSpace(cfg.AuthToken),
		breaker:    breaker,
		logger:     logger,
	}
}

func (c *WebhookClient) Publish(ctx context.Context, kind string, payload any) error {
	if c.endpoint == "" {
		return crerr.New("webhook endpoint is not configured")
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return crerr.New("notification kind is required")
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return crerr.Wrap(err, "webhook circuit open")
		}
	}

	err := c.deliver(ctx, kind, payload)
	if c.breaker != nil {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return err
}

func (c *WebhookClient) deliver(ctx context.Context, kind string, payload any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal webhook payload")
	}
	if _, err := buf.Write(encoded); err != nil {
		return crerr.Wrap(err, "buffer webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf.B))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Notification-Kind", kind)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Wrap(err, "deliver webhook")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return crerr.Newf("webhook delivery status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	c.logger.InfoContext(ctx, "webhook delivered", "kind", kind)
	return nil
}
