package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"approval-service/internal/usecase/commands"

	"github.com/nats-io/nats.go"
)

// LogPublisher writes every event to the structured log. It is the default
// sink and doubles as an audit breadcrumb when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, event commands.Event) {
	slog.Info("approval event",
		"event_type", string(event.Type),
		"occurred_at", event.OccurredAt,
		"payload", event.Payload,
	)
}

// NATSPublisher pushes events to NATS for downstream consumers.
//
// Subject convention: <prefix>.<event_type>
//
// Publishing is non-fatal: errors are logged and swallowed so a broker outage
// never fails a submission or a decision.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subjectPrefix}
}

func (p *NATSPublisher) Publish(_ context.Context, event commands.Event) {
	if p.conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "event_type", string(event.Type), "error", err)
		return
	}

	subject := fmt.Sprintf("%s.%s", p.subject, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		slog.Warn("failed to publish event (non-fatal)",
			"subject", subject,
			"event_type", string(event.Type),
			"error", err,
		)
		return
	}

	slog.Debug("event published", "subject", subject)
}

// CompositePublisher fans an event out to every configured sink.
type CompositePublisher struct {
	sinks []commands.EventPublisher
}

func NewCompositePublisher(sinks ...commands.EventPublisher) *CompositePublisher {
	return &CompositePublisher{sinks: sinks}
}

func (p *CompositePublisher) Publish(ctx context.Context, event commands.Event) {
	for _, sink := range p.sinks {
		sink.Publish(ctx, event)
	}
}
