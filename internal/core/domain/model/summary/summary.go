package summary

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// NoOrdersProduct is reported as the most popular product of a day without orders.
const NoOrdersProduct = "No Orders"

// ErrDailySummaryIsNotConstructed is returned when using a zero-value DailySummary.
var ErrDailySummaryIsNotConstructed = errors.New("DailySummary must be created via NewDailySummary constructor")

// DailySummary is the end-of-day aggregate for one business date.
type DailySummary struct {
	date               kernel.BusinessDate
	totalOrders        int64
	totalSales         decimal.Decimal
	totalCommission    decimal.Decimal
	mostPopularProduct string
	guard              guard.ConstructorGuard
}

// NewDailySummary validates and rounds the aggregate. A day with orders must name its
// most popular product.
func NewDailySummary(
	date kernel.BusinessDate,
	totalOrders int64,
	totalSales decimal.Decimal,
	totalCommission decimal.Decimal,
	mostPopularProduct string,
) (DailySummary, error) {
	mostPopularProduct = strings.TrimSpace(mostPopularProduct)

	var validationErrs []error
	if err := date.Validate(); err != nil {
		validationErrs = append(validationErrs, err)
	}
	if totalOrders < 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("total orders", fmt.Errorf("%d is negative", totalOrders)))
	}
	if totalSales.IsNegative() {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("total sales", fmt.Errorf("%s is negative", totalSales)))
	}
	if totalCommission.IsNegative() {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("total commission", fmt.Errorf("%s is negative", totalCommission)))
	}
	if totalOrders > 0 && mostPopularProduct == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("most popular product"))
	}
	if len(validationErrs) > 0 {
		return DailySummary{}, errors.Join(validationErrs...)
	}

	if totalOrders == 0 {
		mostPopularProduct = NoOrdersProduct
	}

	return DailySummary{
		date:               date,
		totalOrders:        totalOrders,
		totalSales:         kernel.RoundCurrency(totalSales),
		totalCommission:    kernel.RoundCurrency(totalCommission),
		mostPopularProduct: mostPopularProduct,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// NoOrders is the placeholder summary {0, 0, 0, "No Orders"}.
func NoOrders(date kernel.BusinessDate) (DailySummary, error) {
	return NewDailySummary(date, 0, decimal.Zero, decimal.Zero, NoOrdersProduct)
}

func (s DailySummary) Validate() error {
	return s.guard.Validate(ErrDailySummaryIsNotConstructed)
}

func (s DailySummary) Date() kernel.BusinessDate        { return s.date }
func (s DailySummary) TotalOrders() int64               { return s.totalOrders }
func (s DailySummary) TotalSales() decimal.Decimal      { return s.totalSales }
func (s DailySummary) TotalCommission() decimal.Decimal { return s.totalCommission }
func (s DailySummary) MostPopularProduct() string       { return s.mostPopularProduct }

// HasOrders is false for the placeholder summary.
func (s DailySummary) HasOrders() bool {
	return s.totalOrders > 0
}

// IsEqual compares values, ignoring decimal representation.
func (s DailySummary) IsEqual(other DailySummary) bool {
	return s.date.IsEqual(other.date) &&
		s.totalOrders == other.totalOrders &&
		s.totalSales.Equal(other.totalSales) &&
		s.totalCommission.Equal(other.totalCommission) &&
		s.mostPopularProduct == other.mostPopularProduct
}
