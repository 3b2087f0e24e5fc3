// Package queries contains read-only operations over the head office.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetDailyOrdersQueryIsNotConstructed = errors.New(
		"GetDailyOrdersQuery must be created via NewGetDailyOrdersQuery constructor",
	)
)

// GetDailyOrdersQuery formats the head-office orders of a business date without
// touching the document store. No driver is assigned and no docket is built.
//
// Example:
//
//	query, err := NewGetDailyOrdersQuery(kernel.MustParseBusinessDate("2024-03-01"))
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, session, query)
//	fmt.Printf("%d orders on %s\n", len(orders), query.Date())
type GetDailyOrdersQuery struct {
	date  kernel.BusinessDate
	guard guard.ConstructorGuard
}

func NewGetDailyOrdersQuery(date kernel.BusinessDate) (GetDailyOrdersQuery, error) {
	if err := date.Validate(); err != nil {
		return GetDailyOrdersQuery{}, err
	}
	return GetDailyOrdersQuery{date: date, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyOrdersQueryIsNotConstructed)
}

func (q GetDailyOrdersQuery) Date() kernel.BusinessDate {
	return q.date
}

// DailyOrderItemResponse is one formatted order line.
type DailyOrderItemResponse struct {
	ItemID      int64
	ProductName string
	Quantity    int
	UnitPrice   string
	TotalPrice  string
}

// DailyOrderResponse is one formatted head-office order.
type DailyOrderResponse struct {
	OrderID    int64
	OrderDate  string
	StoreID    string
	CustomerID int64
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	PostCode   string
	Items      []DailyOrderItemResponse
	TotalPrice string
}
