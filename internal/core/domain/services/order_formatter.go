package services

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderFormatter groups flat head-office rows into nested order documents.
//
// Business rules:
//   - One Order per distinct order id, in first-seen order
//   - The order is initialised from the customer and date fields of its first row
//   - Every row appends one item, and the running total is recomputed after each append
//   - Quantity must be a positive integer and price a decimal; anything else aborts
//
// Example usage:
//
//	formatter := services.NewOrderFormatter("1102929")
//	orders, err := formatter.Format(rows)
//	if err != nil {
//	    // malformed row, nothing was formatted
//	}
type OrderFormatter struct {
	storeID string
}

func NewOrderFormatter(storeID string) OrderFormatter {
	return OrderFormatter{storeID: storeID}
}

// Format returns one order per distinct OrderID of rows.
func (f OrderFormatter) Format(rows []order.SourceRow) ([]*order.Order, error) {
	byID := make(map[int64]*order.Order)
	result := make([]*order.Order, 0)

	for i, row := range rows {
		o, seen := byID[row.OrderID]
		if !seen {
			customer, err := order.NewCustomer(row.CustomerID, row.FirstName, row.LastName,
				row.Phone, row.Address, row.PostCode)
			if err != nil {
				return nil, rowError(i, row, err)
			}

			o, err = order.NewOrder(row.OrderID, customer, row.OrderDate, f.storeID)
			if err != nil {
				return nil, rowError(i, row, err)
			}

			byID[row.OrderID] = o
			result = append(result, o)
		}

		item, err := itemFromRow(row)
		if err != nil {
			return nil, rowError(i, row, err)
		}

		if err = o.AddItem(item); err != nil {
			return nil, rowError(i, row, err)
		}
	}

	return result, nil
}

func itemFromRow(row order.SourceRow) (order.Item, error) {
	quantity, err := ParseQuantity(row.Quantity)
	if err != nil {
		return order.Item{}, err
	}

	price, err := ParsePrice(row.ListPrice)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(row.ItemID, row.ProductName, quantity, price)
}

// ParseQuantity coerces a quantity to a positive integer. Whole decimals such as "2.0"
// are accepted since numeric columns may come back with a scale.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError("quantity")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	if !d.IsInteger() || !d.IsPositive() {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not a positive integer", raw))
	}

	return int(d.IntPart()), nil
}

// ParsePrice coerces a price to a decimal; a missing price is a data integrity failure.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errs.NewValueIsRequiredError("list price")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("list price", err)
	}

	return d, nil
}

func rowError(index int, row order.SourceRow, err error) error {
	return fmt.Errorf("row %d (order %d, item %d): %w", index, row.OrderID, row.ItemID, err)
}
