package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = kernel.MustParseBusinessDate("2024-03-01")

func row(orderID, itemID int64, product, qty, price string) order.SourceRow {
	return order.SourceRow{
		OrderID:     orderID,
		OrderDate:   day,
		CustomerID:  orderID * 10,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Phone:       "0400 000 000",
		Address:     "1 Main St",
		PostCode:    "4556",
		ItemID:      itemID,
		ProductName: product,
		Quantity:    qty,
		ListPrice:   price,
	}
}

func TestOrderFormatter_Format(t *testing.T) {
	formatter := services.NewOrderFormatter("1102929")

	t.Run("groups rows of one order and sums items", func(t *testing.T) {
		orders, err := formatter.Format([]order.SourceRow{
			row(1, 1, "A", "2", "5.00"),
			row(1, 2, "B", "1", "3.00"),
		})

		require.NoError(t, err)
		require.Len(t, orders, 1)
		o := orders[0]
		assert.Equal(t, "13.00", o.TotalPrice().StringFixed(2))
		assert.Equal(t, "1102929", o.StoreID())
		assert.Equal(t, int64(10), o.Customer().ID())
		assert.Equal(t, order.Formatted, o.Status())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, "A", o.Items()[0].ProductName())
		assert.Equal(t, "B", o.Items()[1].ProductName())
	})

	t.Run("keeps first-seen order of ids", func(t *testing.T) {
		orders, err := formatter.Format([]order.SourceRow{
			row(3, 1, "A", "1", "1"),
			row(1, 2, "B", "1", "2"),
			row(3, 3, "C", "1", "3"),
			row(2, 4, "D", "1", "4"),
		})

		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, int64(3), orders[0].ID())
		assert.Equal(t, int64(1), orders[1].ID())
		assert.Equal(t, int64(2), orders[2].ID())
		assert.Equal(t, "4.00", orders[0].TotalPrice().StringFixed(2))
	})

	t.Run("count equals distinct ids and totals equal item sums", func(t *testing.T) {
		rows := make([]order.SourceRow, 0)
		for i := int64(1); i <= 30; i++ {
			rows = append(rows, row(i%7+1, i, "P", "3", "2.35"))
		}

		orders, err := formatter.Format(rows)

		require.NoError(t, err)
		assert.Len(t, orders, 7)
		for _, o := range orders {
			sum := decimal.Zero
			for _, item := range o.Items() {
				sum = sum.Add(item.Total())
			}
			assert.True(t, sum.Equal(o.TotalPrice()), "order %d", o.ID())
		}
	})

	t.Run("whole decimal quantity is accepted", func(t *testing.T) {
		orders, err := formatter.Format([]order.SourceRow{row(1, 1, "A", "2.0", "1.50")})
		require.NoError(t, err)
		assert.Equal(t, 2, orders[0].Items()[0].Quantity())
	})

	t.Run("empty input yields no orders", func(t *testing.T) {
		orders, err := formatter.Format(nil)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("missing price is fatal", func(t *testing.T) {
		orders, err := formatter.Format([]order.SourceRow{row(1, 1, "A", "1", "5"), row(1, 2, "B", "1", "")})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, orders)
	})

	t.Run("non-numeric price is fatal", func(t *testing.T) {
		_, err := formatter.Format([]order.SourceRow{row(1, 1, "A", "1", "five")})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "order 1")
	})

	t.Run("fractional quantity is fatal", func(t *testing.T) {
		_, err := formatter.Format([]order.SourceRow{row(1, 1, "A", "1.5", "5")})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
