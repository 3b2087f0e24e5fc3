package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDriverAssignmentIsNotConstructed is returned for a zero-value DriverAssignment.
var ErrDriverAssignmentIsNotConstructed = errors.New(
	"DriverAssignment must be created via NewDriverAssignment constructor")

// DriverAssignment is the driver snapshot stored on an order.
type DriverAssignment struct {
	driverID       int64
	driverName     string
	commissionRate decimal.Decimal
	guard          guard.ConstructorGuard
}

// NewDriverAssignment validates the snapshot. The rate is a fraction of the order
// total and must lie in [0, 1].
func NewDriverAssignment(driverID int64, driverName string, commissionRate decimal.Decimal) (DriverAssignment, error) {
	driverName = strings.TrimSpace(driverName)

	var validationErrs []error
	if driverName == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("driver name"))
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("commission rate", commissionRate.String(), 0, 1))
	}
	if driverID < 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is negative", driverID)))
	}
	if len(validationErrs) > 0 {
		return DriverAssignment{}, errors.Join(validationErrs...)
	}

	return DriverAssignment{
		driverID:       driverID,
		driverName:     driverName,
		commissionRate: commissionRate,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (a DriverAssignment) Validate() error {
	return a.guard.Validate(ErrDriverAssignmentIsNotConstructed)
}

func (a DriverAssignment) DriverID() int64                 { return a.driverID }
func (a DriverAssignment) DriverName() string              { return a.driverName }
func (a DriverAssignment) CommissionRate() decimal.Decimal { return a.commissionRate }

func (a DriverAssignment) commissionFor(total decimal.Decimal) decimal.Decimal {
	return kernel.RoundCurrency(a.commissionRate.Mul(total))
}
