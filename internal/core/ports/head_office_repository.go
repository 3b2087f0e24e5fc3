// Package ports defines the contracts between the fulfillment core and the stores,
// renderer and broker it works with.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CatalogItem is the catalog entry matched by product name.
type CatalogItem struct {
	ID        int64
	ListPrice decimal.Decimal
}

// HeadOfficeRepository reads the head-office relational database.
//
// Lookups that match nothing return errs.ErrObjectNotFound, which callers turn into
// the documented fallback. Any other failure wraps errs.ErrConnectivity.
type HeadOfficeRepository interface {
	// DailyRows returns one row per order item for the business date, ordered by
	// order id and item id.
	DailyRows(ctx context.Context, date kernel.BusinessDate) ([]order.SourceRow, error)

	// FindCatalogItem returns the lowest item id and price listed under productName.
	FindCatalogItem(ctx context.Context, productName string) (CatalogItem, error)

	// FindCustomerID returns the lowest customer id registered under the name.
	FindCustomerID(ctx context.Context, firstName, lastName string) (int64, error)

	// MaxOrderID, MaxItemID and MaxCustomerID return the highest id in use, or 0 on
	// an empty table.
	MaxOrderID(ctx context.Context) (int64, error)
	MaxItemID(ctx context.Context) (int64, error)
	MaxCustomerID(ctx context.Context) (int64, error)
}
