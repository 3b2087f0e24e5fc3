package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDocketBelongsToAnotherOrder is returned when attaching a docket built for a different order id.
	ErrDocketBelongsToAnotherOrder = errors.New("docket belongs to another order")
)

// Order is the denormalized order document mirrored from the head-office database.
// It is the aggregate root for its items, driver assignment and docket.
//
// Order follows these invariants:
//   - Belongs to exactly one business date and one store
//   - Total price is the sum of item totals accumulated so far
//   - Commission is round(rate × total, 2) and is recomputed whenever an item is added
//     after a driver has been assigned
//   - Once docketed the order is immutable
type Order struct {
	id         int64
	customer   Customer
	date       kernel.BusinessDate
	storeID    string
	items      []Item
	totalPrice decimal.Decimal
	driver     *DriverAssignment
	commission decimal.Decimal
	docket     *Docket
	status     Status

	isConstructed bool
}

// NewOrder creates an empty Formatted order. Items are appended with AddItem.
//
// Example:
//
//	customer, _ := order.NewCustomer(12, "Ada", "Lovelace", "0400 000 000", "1 Main St", "4556")
//	o, err := order.NewOrder(1001, customer, kernel.MustParseBusinessDate("2024-03-01"), "1102929")
//	if err != nil {
//	    return err
//	}
//	_ = o.AddItem(item)
func NewOrder(id int64, customer Customer, date kernel.BusinessDate, storeID string) (*Order, error) {
	o := &Order{
		customer:      customer,
		items:         make([]Item, 0),
		totalPrice:    decimal.Zero,
		commission:    decimal.Zero,
		status:        Formatted,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDate(date),
		o.setStoreID(storeID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read back from the document store. The status is
// derived from what is present: a docket means Docketed, a driver means Assigned.
// The stored commission is kept as-is.
func RestoreOrder(
	id int64,
	customer Customer,
	date kernel.BusinessDate,
	storeID string,
	items []Item,
	driver *DriverAssignment,
	commission decimal.Decimal,
	docket *Docket,
) (*Order, error) {
	o, err := NewOrder(id, customer, date, storeID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		o.appendItem(item)
	}

	o.driver = driver
	o.commission = commission
	o.docket = docket

	switch {
	case docket != nil:
		o.status = Docketed
	case driver != nil:
		o.status = Assigned
	}

	if err = o.status.ValidateCanHaveDriver(driver != nil); err != nil {
		return nil, err
	}
	if docket != nil && docket.OrderID() != id {
		return nil, ErrDocketBelongsToAnotherOrder
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) ID() int64                 { return o.id }
func (o *Order) Customer() Customer        { return o.customer }
func (o *Order) Date() kernel.BusinessDate { return o.date }
func (o *Order) StoreID() string           { return o.storeID }
func (o *Order) Status() Status            { return o.status }

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalPrice is the sum of item totals.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// Driver returns the assignment or nil while the order is Formatted.
func (o *Order) Driver() *DriverAssignment {
	return o.driver
}

// Commission is the driver's cut of the total, zero while unassigned.
func (o *Order) Commission() decimal.Decimal {
	return o.commission
}

// Docket returns the attached docket or nil.
func (o *Order) Docket() *Docket {
	return o.docket
}

// SetCustomer replaces the embedded customer, e.g. once its id has been resolved.
func (o *Order) SetCustomer(customer Customer) error {
	if err := o.status.ValidateAddItem(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

// AddItem appends a line and recomputes the running total, and the commission when a
// driver is already assigned, so both always reflect the items accumulated so far.
func (o *Order) AddItem(item Item) error {
	if err := o.status.ValidateAddItem(); err != nil {
		return err
	}

	o.appendItem(item)
	if o.driver != nil {
		o.commission = o.driver.commissionFor(o.totalPrice)
	}

	return nil
}

// AssignDriver records the driver and computes commission = round(rate × total, 2).
// Reassignment replaces the previous driver.
func (o *Order) AssignDriver(assignment DriverAssignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driver = &assignment
	o.commission = assignment.commissionFor(o.totalPrice)
	return nil
}

// AttachDocket finalizes the order. A docket can be attached only once.
func (o *Order) AttachDocket(docket *Docket) error {
	if docket == nil {
		return errs.NewValueIsRequiredError("docket")
	}
	if docket.OrderID() != o.id {
		return ErrDocketBelongsToAnotherOrder
	}

	newStatus, err := o.status.Docket()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.docket = docket
	return nil
}

func (o *Order) appendItem(item Item) {
	o.items = append(o.items, item)

	total := decimal.Zero
	for _, i := range o.items {
		total = total.Add(i.Total())
	}
	o.totalPrice = total
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setDate(date kernel.BusinessDate) error {
	if err := date.Validate(); err != nil {
		return err
	}
	o.date = date
	return nil
}

func (o *Order) setStoreID(storeID string) error {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return errs.NewValueIsRequiredError("store id")
	}
	o.storeID = storeID
	return nil
}
