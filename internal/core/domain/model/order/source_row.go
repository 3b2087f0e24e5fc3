package order

import "fulfillment/internal/core/domain/model/kernel"

// SourceRow is one flat head-office row: a single order item joined with its parent
// order and customer. An order with N items arrives as N rows sharing OrderID.
//
// Quantity and ListPrice are carried as the raw text the database returned so that
// coercion and its failures stay in the formatter.
type SourceRow struct {
	OrderID     int64
	OrderDate   kernel.BusinessDate
	CustomerID  int64
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	PostCode    string
	ItemID      int64
	ProductName string
	Quantity    string
	ListPrice   string
}
