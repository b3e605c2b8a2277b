//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	reqdto "approval-service/internal/handler/dto/request"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// ApprovalBuilder assembles approval fixtures at every layer: domain seed,
// aggregate, submit DTO and read-side view.
type ApprovalBuilder struct {
	Type          approval.ChangeType
	Title         string
	Description   string
	SubmittedBy   uuid.UUID
	SubmitterRole string
	Entity        approval.AffectedEntity

	Policy wallet.Policy
	Calc   approval.ImpactCalculator
	Now    time.Time
}

func NewApprovalBuilder() *ApprovalBuilder {
	return &ApprovalBuilder{
		Type:          approval.TypePriceChange,
		Title:         "Seasonal price revision",
		Description:   "Adjust list price ahead of the festive season",
		SubmittedBy:   uuid.New(),
		SubmitterRole: "merchandiser",
		Entity: approval.PriceChange{
			ProductID:     uuid.New(),
			ProductName:   "Steel water bottle 1L",
			CurrentPrice:  100,
			ProposedPrice: 110,
			CurrentStock:  5,
		},
		Policy: wallet.NewPolicy(1000, 0.1),
		Calc:   approval.NewImpactCalculator(10),
		Now:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *ApprovalBuilder) With(mutate func(*ApprovalBuilder)) *ApprovalBuilder {
	mutate(b)
	return b
}

// Fluent builder methods

func (b *ApprovalBuilder) WithTitle(title string) *ApprovalBuilder {
	b.Title = title
	return b
}

func (b *ApprovalBuilder) WithDescription(description string) *ApprovalBuilder {
	b.Description = description
	return b
}

func (b *ApprovalBuilder) WithSubmittedBy(id uuid.UUID) *ApprovalBuilder {
	b.SubmittedBy = id
	return b
}

func (b *ApprovalBuilder) WithNow(now time.Time) *ApprovalBuilder {
	b.Now = now
	return b
}

func (b *ApprovalBuilder) WithPriceChange(current, proposed float64, stock int64) *ApprovalBuilder {
	b.Type = approval.TypePriceChange
	b.Entity = approval.PriceChange{
		ProductID:     uuid.New(),
		ProductName:   "Steel water bottle 1L",
		CurrentPrice:  current,
		ProposedPrice: proposed,
		CurrentStock:  stock,
	}
	return b
}

func (b *ApprovalBuilder) WithBulkDiscount(productCount int64, avgPrice, discountPercent float64) *ApprovalBuilder {
	b.Type = approval.TypeBulkDiscount
	b.Entity = approval.BulkDiscount{
		ProductIDs:      []uuid.UUID{uuid.New(), uuid.New()},
		ProductCount:    productCount,
		AvgPrice:        avgPrice,
		DiscountPercent: discountPercent,
	}
	return b
}

func (b *ApprovalBuilder) WithProductRemoval(reason string) *ApprovalBuilder {
	b.Type = approval.TypeProductRemoval
	b.Entity = approval.ProductRemoval{
		ProductID:   uuid.New(),
		ProductName: "Discontinued kettle",
		Reason:      reason,
	}
	return b
}

func (b *ApprovalBuilder) WithInventoryWriteOff(quantity int64, unitCost, totalValue float64) *ApprovalBuilder {
	b.Type = approval.TypeInventoryWriteOff
	b.Entity = approval.InventoryWriteOff{
		ProductID:   uuid.New(),
		ProductName: "Water-damaged stock",
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalValue:  totalValue,
		Reason:      "warehouse flooding",
	}
	return b
}

// AsLargePriceIncrease configures a change big enough to escrow a hold:
// total impact 2000, hold amount 200 under the default policy.
func (b *ApprovalBuilder) AsLargePriceIncrease() *ApprovalBuilder {
	return b.WithPriceChange(100, 200, 20)
}

// Build methods

func (b *ApprovalBuilder) BuildSeed() approval.Seed {
	return approval.Seed{
		Type:          b.Type,
		Title:         b.Title,
		Description:   b.Description,
		SubmittedBy:   b.SubmittedBy,
		SubmitterRole: b.SubmitterRole,
		Entity:        b.Entity,
	}
}

// BuildDomain derives impact, sensitivity and routing the same way submission
// does, then constructs the aggregate.
func (b *ApprovalBuilder) BuildDomain() (*approval.Request, error) {
	seed := b.BuildSeed()
	impact := b.Calc.Calculate(b.Entity)
	sensitivity := approval.Classify(b.Entity)
	approvers := approval.RequiredApprovers(sensitivity.Level)

	var walletImpact *wallet.Impact
	if pc, ok := b.Entity.(approval.PriceChange); ok {
		w := b.Policy.PriceChangeImpact(pc.CurrentPrice, pc.ProposedPrice, pc.CurrentStock)
		walletImpact = &w
	}

	return approval.NewRequest(seed, impact, sensitivity, approvers, walletImpact, b.Now)
}

func (b *ApprovalBuilder) BuildSubmitDTO() reqdto.SubmitApprovalRequest {
	entityJSON, _ := json.Marshal(b.Entity)
	return reqdto.SubmitApprovalRequest{
		Type:        b.Type.String(),
		Title:       b.Title,
		Description: b.Description,
		Entity:      entityJSON,
	}
}

func (b *ApprovalBuilder) BuildView() *queries.RequestView {
	req, err := b.BuildDomain()
	if err != nil {
		panic("builder produced invalid fixture: " + err.Error())
	}
	return ViewFromRecord(req.ToRecord())
}

// ViewFromRecord mirrors the read-side conversion for fixtures.
func ViewFromRecord(rec approval.Record) *queries.RequestView {
	entityJSON, _ := approval.EncodeAffectedEntity(rec.Entity)

	approvers := make([]string, len(rec.RequiredApprovers))
	for i, role := range rec.RequiredApprovers {
		approvers[i] = role.String()
	}

	view := &queries.RequestView{
		ID:            rec.ID,
		Type:          rec.Type.String(),
		Title:         rec.Title,
		Description:   rec.Description,
		SubmittedBy:   rec.SubmittedBy,
		SubmitterRole: rec.SubmitterRole,
		SubmittedAt:   rec.SubmittedAt,
		Entity:        entityJSON,
		Impact: queries.ImpactView{
			RevenueImpact:  rec.Impact.RevenueImpact,
			MarginImpact:   rec.Impact.MarginImpact,
			CustomerImpact: rec.Impact.CustomerImpact.String(),
		},
		Sensitivity:       rec.Sensitivity.Level.String(),
		Priority:          rec.Sensitivity.Priority.String(),
		RequiredApprovers: approvers,
		Status:            rec.Status.String(),
		DecidedBy:         rec.DecidedBy,
		DecidedAt:         rec.DecidedAt,
		DecisionComments:  rec.DecisionComments,
		BulkActionID:      rec.BulkActionID,
		Comments:          make([]queries.CommentView, len(rec.Comments)),
	}
	if rec.WalletImpact != nil {
		view.WalletImpact = &queries.WalletImpactView{
			RequiresHold:   rec.WalletImpact.RequiresHold,
			HoldAmount:     rec.WalletImpact.HoldAmount,
			AdjustmentType: string(rec.WalletImpact.AdjustmentType),
			TotalImpact:    rec.WalletImpact.TotalImpact,
		}
	}
	if rec.WalletAdjustment != nil {
		view.WalletAdjustment = &queries.AdjustmentView{
			RequestID:        rec.WalletAdjustment.RequestID,
			TransactionID:    rec.WalletAdjustment.TransactionID,
			HoldAmount:       rec.WalletAdjustment.HoldAmount,
			AdjustmentAmount: rec.WalletAdjustment.AdjustmentAmount,
			AdjustmentType:   string(rec.WalletAdjustment.AdjustmentType),
			ProcessedAt:      rec.WalletAdjustment.ProcessedAt,
			Status:           string(rec.WalletAdjustment.Status),
		}
	}
	for i, cm := range rec.Comments {
		view.Comments[i] = queries.CommentView{
			ID:        cm.ID,
			Author:    cm.Author,
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		}
	}
	return view
}

// CloneView deep-copies a view so tests can mutate fixtures independently.
func CloneView(src *queries.RequestView) *queries.RequestView {
	var dst queries.RequestView
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic("failed to clone view: " + err.Error())
	}
	return &dst
}
