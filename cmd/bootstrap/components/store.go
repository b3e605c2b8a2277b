package components

import (
	"context"

	"approval-service/internal/infra/db"
	"approval-service/internal/infra/memstore"
	"approval-service/internal/infra/readstore"
	"approval-service/internal/infra/repository"
	"approval-service/internal/pkg/config"
	"approval-service/internal/usecase/commands"
	"approval-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
	),
)

// Stores bundles both sides of the persistence boundary so the driver switch
// happens in exactly one place.
type Stores struct {
	fx.Out

	Requests     commands.ApprovalRequestRepository
	Holds        commands.WalletHoldRepository
	RequestViews queries.ApprovalReadStore
	WalletViews  queries.WalletReadStore
}

func NewStores(lc fx.Lifecycle, cfg config.Config) (Stores, error) {
	if cfg.Store.Driver == "postgres" {
		return newPostgresStores(lc, cfg)
	}
	return newMemoryStores(), nil
}

func newMemoryStores() Stores {
	approvalStore := memstore.NewApprovalStore()
	walletStore := memstore.NewWalletStore()

	return Stores{
		Requests:     approvalStore,
		Holds:        walletStore,
		RequestViews: memstore.NewApprovalReadStore(approvalStore),
		WalletViews:  memstore.NewWalletReadStore(walletStore),
	}
}

func newPostgresStores(lc fx.Lifecycle, cfg config.Config) (Stores, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return Stores{}, err
	}

	if err := repository.ApplySchema(context.Background(), pool); err != nil {
		cleanup()
		return Stores{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return Stores{
		Requests:     repository.NewApprovalRepository(pool),
		Holds:        repository.NewWalletRepository(pool),
		RequestViews: readstore.NewApprovalReadStore(pool),
		WalletViews:  readstore.NewWalletReadStore(pool),
	}, nil
}
