package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talentbridge/internal/events"
	"talentbridge/internal/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const channelWebhook = "webhook"

var ErrDisabled = errors.New("webhook notifier disabled")

// Webhook posts events as JSON to an external integration (mail, calendar).
// Calls are rate limited and short-circuited after repeated failures.
type Webhook struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	metrics *metrics.Registry
}

type WebhookOptions struct {
	URL        string
	RatePerSec int
	Timeout    time.Duration
	Client     *http.Client
	Logger     *zap.Logger
	Metrics    *metrics.Registry

	// Breaker tuning; zero values fall back to defaults.
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
}

type payload struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	UserID     string         `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// NewWebhook returns nil when no URL is configured.
func NewWebhook(opts WebhookOptions) *Webhook {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5
	}
	if opts.MaxConsecutiveFailures == 0 {
		opts.MaxConsecutiveFailures = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	w := &Webhook{
		url:     url,
		client:  opts.Client,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.RatePerSec),
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}

	maxFailures := opts.MaxConsecutiveFailures
	w.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notify-webhook",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			w.logger.Warn("[Notify] breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return w
}

func (w *Webhook) Name() string { return channelWebhook }

func (w *Webhook) Deliver(ctx context.Context, e events.Event) error {
	if w == nil {
		return ErrDisabled
	}
	if err := w.limiter.Wait(ctx); err != nil {
		w.metrics.NotificationResult(channelWebhook, "rate_limited")
		return fmt.Errorf("rate limit: %w", err)
	}

	_, err := w.breaker.Execute(func() (interface{}, error) {
		return nil, w.post(ctx, e)
	})
	switch {
	case err == nil:
		w.metrics.NotificationResult(channelWebhook, "sent")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		w.metrics.NotificationResult(channelWebhook, "short_circuited")
	default:
		w.metrics.NotificationResult(channelWebhook, "failed")
	}
	return err
}

func (w *Webhook) State() gobreaker.State {
	return w.breaker.State()
}

func (w *Webhook) post(ctx context.Context, e events.Event) error {
	b, err := json.Marshal(payload{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		UserID:     e.UserID.String(),
		OccurredAt: e.OccurredAt,
		Data:       e.Payload,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(e.Type))
	req.Header.Set("X-Event-ID", e.ID.String())

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		w.logger.Warn("[Notify] webhook rejected event",
			zap.Int("status", resp.StatusCode),
			zap.String("type", string(e.Type)),
			zap.String("body", bodyStr),
		)
		return fmt.Errorf("webhook failed: status=%d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
