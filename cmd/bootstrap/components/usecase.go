package components

import (
	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra/executor"
	"approval-service/internal/pkg/clock"
	"approval-service/internal/pkg/config"
	"approval-service/internal/usecase/commands"
	"approval-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewWalletPolicy,
		NewImpactCalculator,
		commands.NewWalletLedger,
		queries.NewApprovalQueries,
		fx.Annotate(
			executor.NewCatalogExecutor,
			fx.As(new(commands.ChangeExecutor)),
		),
		fx.Annotate(
			commands.NewApprovalUseCase,
			fx.As(new(commands.ApprovalCommands)),
			fx.As(new(commands.BulkCommands)),
		),
	),
)

func NewWalletPolicy(cfg config.Config) wallet.Policy {
	return wallet.NewPolicy(cfg.Approval.HoldThreshold, cfg.Approval.HoldRate)
}

func NewImpactCalculator(cfg config.Config) approval.ImpactCalculator {
	return approval.NewImpactCalculator(cfg.Approval.UnitsPerProduct)
}
