package bootstrap

import (
	"context"
	"log/slog"

	"approval-service/internal/infra/events"
	"approval-service/internal/pkg/config"
	"approval-service/internal/usecase/commands"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

// NewEventPublisher always includes the log sink; NATS joins the fan-out only
// when a broker URL is configured.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) *events.CompositePublisher {
	sinks := []commands.EventPublisher{events.NewLogPublisher()}

	if cfg.NATS.URL != "" {
		conn, err := nats.Connect(cfg.NATS.URL,
			nats.RetryOnFailedConnect(true),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			slog.Warn("failed to connect to NATS, events go to log only", "url", cfg.NATS.URL, "error", err)
		} else {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					conn.Drain()
					return nil
				},
			})
			sinks = append(sinks, events.NewNATSPublisher(conn, cfg.NATS.SubjectPrefix))
		}
	}

	return events.NewCompositePublisher(sinks...)
}
