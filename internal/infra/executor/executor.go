package executor

import (
	"context"
	"log/slog"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
)

// CatalogExecutor applies an approved change to the product catalog. The
// catalog lives in another service; this implementation records the intent so
// operators can reconcile. Failures here never roll back the approval, the
// caller reports them through the event stream.
type CatalogExecutor struct{}

func NewCatalogExecutor() *CatalogExecutor {
	return &CatalogExecutor{}
}

func (e *CatalogExecutor) Apply(ctx context.Context, rec approval.Record, adj *wallet.Adjustment) error {
	attrs := []any{
		"request_id", rec.ID,
		"change_type", rec.Type.String(),
		"title", rec.Title,
	}

	switch entity := rec.Entity.(type) {
	case approval.PriceChange:
		attrs = append(attrs,
			"product_id", entity.ProductID,
			"current_price", entity.CurrentPrice,
			"proposed_price", entity.ProposedPrice,
		)
	case approval.BulkDiscount:
		attrs = append(attrs,
			"product_count", entity.ProductCount,
			"discount_percent", entity.DiscountPercent,
		)
	case approval.ProductRemoval:
		attrs = append(attrs, "product_id", entity.ProductID)
	case approval.InventoryWriteOff:
		attrs = append(attrs,
			"product_id", entity.ProductID,
			"quantity", entity.Quantity,
			"total_value", entity.TotalValue,
		)
	}

	if adj != nil {
		attrs = append(attrs,
			"transaction_id", adj.TransactionID,
			"adjustment_amount", adj.AdjustmentAmount,
		)
	}

	slog.InfoContext(ctx, "applying approved change", attrs...)
	return nil
}
