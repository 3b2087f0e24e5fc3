package driver

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for driver construction.
var (
	// ErrNameIsRequired is returned when a driver has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using a zero-value Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is static reference data read from the driver registry. It delivers to the
// post codes in its inclusive coverage range [suburbStart, suburbEnd].
//
// Either endpoint may be missing in the registry. A driver without both endpoints never
// covers a post code and is skipped by the nearest-driver fallback.
//
// Example usage:
//
//	start, end := 4550, 4575
//	d, err := driver.NewDriver(3, "Bob", decimal.RequireFromString("0.1"), &start, &end)
//	if err != nil {
//	    return err
//	}
//	d.Covers(kernel.PostCode(4556)) // true
type Driver struct {
	id             int64
	name           string
	commissionRate decimal.Decimal
	suburbStart    *int
	suburbEnd      *int
	guard          guard.ConstructorGuard
}

// NewDriver validates a registry entry. The commission rate is a fraction of the
// order total in [0, 1]; a reversed range is rejected.
func NewDriver(id int64, name string, commissionRate decimal.Decimal, suburbStart, suburbEnd *int) (*Driver, error) {
	name = strings.TrimSpace(name)

	var validationErrs []error
	if name == "" {
		validationErrs = append(validationErrs, ErrNameIsRequired)
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("commission rate", commissionRate.String(), 0, 1))
	}
	if suburbStart != nil && suburbEnd != nil && *suburbStart > *suburbEnd {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"coverage range", fmt.Errorf("start %d is after end %d", *suburbStart, *suburbEnd)))
	}
	if len(validationErrs) > 0 {
		return nil, errors.Join(validationErrs...)
	}

	return &Driver{
		id:             id,
		name:           name,
		commissionRate: commissionRate,
		suburbStart:    copyInt(suburbStart),
		suburbEnd:      copyInt(suburbEnd),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() int64                       { return d.id }
func (d *Driver) Name() string                    { return d.name }
func (d *Driver) CommissionRate() decimal.Decimal { return d.commissionRate }

// CoverageRange returns both endpoints and whether the range is complete.
func (d *Driver) CoverageRange() (start, end int, ok bool) {
	if d.suburbStart == nil || d.suburbEnd == nil {
		return 0, 0, false
	}
	return *d.suburbStart, *d.suburbEnd, true
}

// SuburbStart and SuburbEnd expose the raw endpoints for persistence.
func (d *Driver) SuburbStart() *int { return copyInt(d.suburbStart) }
func (d *Driver) SuburbEnd() *int   { return copyInt(d.suburbEnd) }

// Covers reports whether pc lies inside the coverage range.
func (d *Driver) Covers(pc kernel.PostCode) bool {
	start, end, ok := d.CoverageRange()
	return ok && pc.InRange(start, end)
}

// DistanceTo is min(|start-pc|, |end-pc|); ok is false when an endpoint is missing.
func (d *Driver) DistanceTo(pc kernel.PostCode) (distance int, ok bool) {
	start, end, ok := d.CoverageRange()
	if !ok {
		return 0, false
	}
	return pc.DistanceToRange(start, end), true
}

// Assignment snapshots the driver for an order.
func (d *Driver) Assignment() (order.DriverAssignment, error) {
	return order.NewDriverAssignment(d.id, d.name, d.commissionRate)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
