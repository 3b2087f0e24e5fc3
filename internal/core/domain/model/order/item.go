package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one order line. Its total is always quantity × unit price.
type Item struct {
	id          int64
	productName string
	quantity    int
	unitPrice   decimal.Decimal
}

// NewItem validates and builds an order line.
//
// Business rules:
//   - product name is required
//   - quantity must be positive
//   - unit price must not be negative
func NewItem(id int64, productName string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	productName = strings.TrimSpace(productName)

	var validationErrs []error
	if productName == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("product name"))
	}
	if quantity <= 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice)))
	}
	if len(validationErrs) > 0 {
		return Item{}, errors.Join(validationErrs...)
	}

	return Item{
		id:          id,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

func (i Item) ID() int64                  { return i.id }
func (i Item) ProductName() string        { return i.productName }
func (i Item) Quantity() int              { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }

// Total is quantity × unit price rounded to currency precision.
func (i Item) Total() decimal.Decimal {
	return kernel.RoundCurrency(i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity))))
}
