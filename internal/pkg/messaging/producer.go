package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/pkg/metrics"
)

// Publisher sends domain events to subscribers outside the service.
type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
	Close() error
}

// Producer publishes JSON events to NATS.
type Producer struct {
	conn    *nats.Conn
	prefix  string
	metrics *metrics.MessagingMetrics
	logger  zerolog.Logger
}

// NewProducer connects to NATS. Subjects are published as "<prefix>.<subject>".
func NewProducer(url, prefix string, mm *metrics.MessagingMetrics, logger zerolog.Logger) (*Producer, error) {
	nc, err := nats.Connect(url,
		nats.Name("eduadmin"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info().Str("url", url).Str("prefix", prefix).Msg("NATS producer initialized")

	return &Producer{
		conn:    nc,
		prefix:  strings.TrimSuffix(prefix, "."),
		metrics: mm,
		logger:  logger,
	}, nil
}

// Subject returns the fully qualified subject for name.
func (p *Producer) Subject(name string) string {
	return qualify(p.prefix, name)
}

func (p *Producer) Publish(ctx context.Context, subject string, event interface{}) error {
	full := p.Subject(subject)
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("subject", full).Msg("failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.conn.Publish(full, payload)
	p.metrics.RecordPublish(ctx, full, time.Since(start), err)
	if err != nil {
		p.logger.Error().Err(err).Str("subject", full).Msg("failed to publish event to NATS")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().Str("subject", full).Msg("event published to NATS")
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Producer) Close() error {
	return p.conn.Drain()
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// NoopPublisher drops every event. It is used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NoopPublisher) Close() error { return nil }
