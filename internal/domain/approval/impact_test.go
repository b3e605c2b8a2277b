//go:build unit

package approval_test

import (
	"testing"

	"approval-service/internal/domain/approval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestImpactCalculator(t *testing.T) {
	calc := approval.NewImpactCalculator(10)

	t.Run("price change", func(t *testing.T) {
		cases := []struct {
			name         string
			current      float64
			proposed     float64
			stock        int64
			wantRevenue  float64
			wantMargin   float64
			wantCustomer approval.CustomerImpact
		}{
			{
				name:         "moderate increase",
				current:      100,
				proposed:     110,
				stock:        5,
				wantRevenue:  50,
				wantMargin:   10,
				wantCustomer: approval.CustomerImpactMedium,
			},
			{
				name:         "large increase",
				current:      100,
				proposed:     200,
				stock:        20,
				wantRevenue:  2000,
				wantMargin:   100,
				wantCustomer: approval.CustomerImpactHigh,
			},
			{
				name:         "price cut",
				current:      80,
				proposed:     60,
				stock:        10,
				wantRevenue:  -200,
				wantMargin:   -25,
				wantCustomer: approval.CustomerImpactHigh,
			},
			{
				name:         "zero current price yields zero margin",
				current:      0,
				proposed:     50,
				stock:        4,
				wantRevenue:  200,
				wantMargin:   0,
				wantCustomer: approval.CustomerImpactMedium,
			},
			{
				name:         "margin rounded to two decimals",
				current:      3,
				proposed:     3.1,
				stock:        1,
				wantRevenue:  0,
				wantMargin:   3.33,
				wantCustomer: approval.CustomerImpactMedium,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				impact := calc.Calculate(approval.PriceChange{
					ProductID:     uuid.New(),
					ProductName:   "widget",
					CurrentPrice:  c.current,
					ProposedPrice: c.proposed,
					CurrentStock:  c.stock,
				})

				assert.Equal(t, c.wantRevenue, impact.RevenueImpact)
				assert.Equal(t, c.wantMargin, impact.MarginImpact)
				assert.Equal(t, c.wantCustomer, impact.CustomerImpact)
			})
		}
	})

	t.Run("bulk discount", func(t *testing.T) {
		impact := calc.Calculate(approval.BulkDiscount{
			ProductIDs:      []uuid.UUID{uuid.New()},
			ProductCount:    50,
			AvgPrice:        20,
			DiscountPercent: 10,
		})

		// 50 products * 10 units * 20 avg price * 10% discount
		assert.Equal(t, float64(-1000), impact.RevenueImpact)
		assert.Equal(t, float64(-10), impact.MarginImpact)
		assert.Equal(t, approval.CustomerImpactMedium, impact.CustomerImpact)
	})

	t.Run("deep bulk discount escalates customer impact", func(t *testing.T) {
		impact := calc.Calculate(approval.BulkDiscount{
			ProductIDs:      []uuid.UUID{uuid.New()},
			ProductCount:    10,
			AvgPrice:        100,
			DiscountPercent: 25,
		})

		assert.Equal(t, float64(-2500), impact.RevenueImpact)
		assert.Equal(t, approval.CustomerImpactHigh, impact.CustomerImpact)
	})

	t.Run("non-financial changes default to quiet impact", func(t *testing.T) {
		removal := calc.Calculate(approval.ProductRemoval{
			ProductID:   uuid.New(),
			ProductName: "kettle",
			Reason:      "discontinued",
		})
		writeOff := calc.Calculate(approval.InventoryWriteOff{
			ProductID:  uuid.New(),
			Quantity:   3,
			UnitCost:   10,
			TotalValue: 30,
			Reason:     "damaged",
		})

		for _, impact := range []approval.BusinessImpact{removal, writeOff} {
			assert.Zero(t, impact.RevenueImpact)
			assert.Zero(t, impact.MarginImpact)
			assert.Equal(t, approval.CustomerImpactLow, impact.CustomerImpact)
		}
	})
}
