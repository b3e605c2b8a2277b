package approval

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownEntityKind = errors.New("unknown affected entity kind")

// AffectedEntity is the closed set of change payloads. Each variant carries
// its own typed current/proposed values so the impact and sensitivity rules
// can switch exhaustively instead of probing loose maps.
type AffectedEntity interface {
	Kind() ChangeType
	// Label is the human-readable name shown in approval queues.
	Label() string
}

type PriceChange struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CurrentPrice  float64   `json:"current_price"`
	ProposedPrice float64   `json:"proposed_price"`
	CurrentStock  int64     `json:"current_stock"`
}

func (PriceChange) Kind() ChangeType { return TypePriceChange }
func (e PriceChange) Label() string  { return e.ProductName }

// PercentChange is the signed price delta relative to the current price.
// A zero current price yields zero rather than an infinity.
func (e PriceChange) PercentChange() float64 {
	if e.CurrentPrice == 0 {
		return 0
	}
	return (e.ProposedPrice - e.CurrentPrice) / e.CurrentPrice * 100
}

type BulkDiscount struct {
	ProductIDs      []uuid.UUID `json:"product_ids"`
	ProductCount    int64       `json:"product_count"`
	AvgPrice        float64     `json:"avg_price"`
	DiscountPercent float64     `json:"discount_percent"`
}

func (BulkDiscount) Kind() ChangeType { return TypeBulkDiscount }
func (e BulkDiscount) Label() string  { return "bulk discount" }

type ProductRemoval struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Reason      string    `json:"reason"`
}

func (ProductRemoval) Kind() ChangeType { return TypeProductRemoval }
func (e ProductRemoval) Label() string  { return e.ProductName }

type InventoryWriteOff struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitCost    float64   `json:"unit_cost"`
	TotalValue  float64   `json:"total_value"`
	Reason      string    `json:"reason"`
}

func (InventoryWriteOff) Kind() ChangeType { return TypeInventoryWriteOff }
func (e InventoryWriteOff) Label() string  { return e.ProductName }

// EncodeAffectedEntity serializes a variant for storage or transport. The
// kind travels separately (as the request's change type).
func EncodeAffectedEntity(e AffectedEntity) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeAffectedEntity rebuilds the variant matching kind from raw JSON.
func DecodeAffectedEntity(kind ChangeType, data []byte) (AffectedEntity, error) {
	switch kind {
	case TypePriceChange:
		var e PriceChange
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeBulkDiscount:
		var e BulkDiscount
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeProductRemoval:
		var e ProductRemoval
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeInventoryWriteOff:
		var e InventoryWriteOff
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, ErrUnknownEntityKind
	}
}
