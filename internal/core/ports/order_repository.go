package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DayAggregate is what the document store reports for one business date.
// TopProduct is empty when OrderCount is 0.
type DayAggregate struct {
	OrderCount      int64
	TotalSales      decimal.Decimal
	TotalCommission decimal.Decimal
	TopProduct      string
}

// OrderRepository persists docketed orders in the document store.
// Orders are unique per (business date, order id).
type OrderRepository interface {
	// Add stores a single order.
	Add(ctx context.Context, o *order.Order) error

	// AddMany stores a day's batch in one call. When some orders already exist the
	// others are still written and errs.ErrDuplicateWrite is returned.
	AddMany(ctx context.Context, orders []*order.Order) error

	// MaxOrderID returns the highest order id stored for date, or 0 when there is none.
	MaxOrderID(ctx context.Context, date kernel.BusinessDate) (int64, error)

	// FindByDate returns the stored orders of a date ordered by order id.
	FindByDate(ctx context.Context, date kernel.BusinessDate) ([]*order.Order, error)

	// SummarizeDay aggregates order count, sales, commission and the product with
	// the highest summed quantity.
	SummarizeDay(ctx context.Context, date kernel.BusinessDate) (DayAggregate, error)
}
