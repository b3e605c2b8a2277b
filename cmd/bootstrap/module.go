package bootstrap

import (
	"approval-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	EventsModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
