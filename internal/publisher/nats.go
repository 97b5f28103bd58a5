package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/speedwagon-io/ecomonitor/internal/config"
	"github.com/speedwagon-io/ecomonitor/internal/lib/logger/sl"
	"github.com/speedwagon-io/ecomonitor/internal/model"
)

const defaultNATSTimeout = 5 * time.Second

type NATSPublisher struct {
	log     *slog.Logger
	conn    *nats.Conn
	subject string
	timeout time.Duration
	retry   config.RetryConfig
	backoff *ExponentialBackoff
}

func NewNATSPublisher(log *slog.Logger, cfg *config.NATSConfig) (*NATSPublisher, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultNATSTimeout
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("ecomonitor"),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", sl.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &NATSPublisher{
		log:     log,
		conn:    conn,
		subject: cfg.Subject,
		timeout: timeout,
		retry:   cfg.Retry,
		backoff: NewExponentialBackoff(cfg.Retry.InitialDelay, cfg.Retry.MaxDelay),
	}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return p.publishWithRetry(ctx, data)
}

func (p *NATSPublisher) publishWithRetry(ctx context.Context, data []byte) error {
	attempts := p.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := p.doPublish(data)
		if err == nil {
			return nil
		}

		lastErr = err
		p.log.Warn("publish attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			sl.Err(err),
		)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.backoff.NextDelay(attempt - 1)):
			}
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func (p *NATSPublisher) doPublish(data []byte) error {
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	if err := p.conn.FlushTimeout(p.timeout); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Health(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats connection is %s", p.conn.Status())
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	defer p.conn.Close()

	if err := p.conn.FlushTimeout(p.timeout); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("failed to flush nats connection: %w", err)
	}
	return nil
}
