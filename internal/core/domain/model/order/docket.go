package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Docket is the customer-facing fulfillment record of an order. It snapshots the
// order at assembly time and carries the rendered artifact verbatim; nothing in the
// domain looks inside the artifact bytes.
type Docket struct {
	number     uuid.UUID
	orderID    int64
	customer   Customer
	date       kernel.BusinessDate
	storeID    string
	items      []Item
	driverName string
	totalPrice decimal.Decimal
	commission decimal.Decimal
	artifact   []byte
}

// Field is one labelled line handed to the document renderer.
type Field struct {
	Label string
	Value string
}

// NewDocket snapshots an Assigned order. The number identifies the docket in
// rendered output and events.
func NewDocket(number uuid.UUID, o *Order, artifact []byte) (*Docket, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Driver() == nil {
		return nil, errs.NewValueIsRequiredError("driver")
	}
	if number == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("docket number")
	}
	if len(artifact) == 0 {
		return nil, errs.NewValueIsRequiredError("docket artifact")
	}

	return &Docket{
		number:     number,
		orderID:    o.ID(),
		customer:   o.Customer(),
		date:       o.Date(),
		storeID:    o.StoreID(),
		items:      o.Items(),
		driverName: o.Driver().DriverName(),
		totalPrice: o.TotalPrice(),
		commission: o.Commission(),
		artifact:   artifact,
	}, nil
}

// RestoreDocket rebuilds a docket stored inside an order document.
func RestoreDocket(number uuid.UUID, o *Order, driverName string, artifact []byte) (*Docket, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if number == uuid.Nil {
		return nil, errors.New("docket number is empty")
	}

	return &Docket{
		number:     number,
		orderID:    o.ID(),
		customer:   o.Customer(),
		date:       o.Date(),
		storeID:    o.StoreID(),
		items:      o.Items(),
		driverName: driverName,
		totalPrice: o.TotalPrice(),
		commission: o.Commission(),
		artifact:   artifact,
	}, nil
}

func (d *Docket) Number() uuid.UUID           { return d.number }
func (d *Docket) OrderID() int64              { return d.orderID }
func (d *Docket) Customer() Customer          { return d.customer }
func (d *Docket) Date() kernel.BusinessDate   { return d.date }
func (d *Docket) StoreID() string             { return d.storeID }
func (d *Docket) DriverName() string          { return d.driverName }
func (d *Docket) TotalPrice() decimal.Decimal { return d.totalPrice }
func (d *Docket) Commission() decimal.Decimal { return d.commission }
func (d *Docket) Artifact() []byte            { return d.artifact }
func (d *Docket) Items() []Item               { return append([]Item(nil), d.items...) }

// DocketFields lists the labelled lines printed on the docket of an Assigned order,
// in print order. Commission is internal and not printed.
func DocketFields(number uuid.UUID, o *Order) []Field {
	c := o.Customer()
	fields := []Field{
		{Label: "Docket", Value: number.String()},
		{Label: "Order", Value: fmt.Sprintf("%d", o.ID())},
		{Label: "Date", Value: o.Date().String()},
		{Label: "Store", Value: o.StoreID()},
		{Label: "Customer", Value: c.FullName()},
		{Label: "Phone", Value: c.Phone()},
		{Label: "Address", Value: c.Address()},
		{Label: "Post Code", Value: c.PostCode()},
	}

	for _, item := range o.Items() {
		fields = append(fields, Field{
			Label: fmt.Sprintf("%d x %s @ %s", item.Quantity(), item.ProductName(), item.UnitPrice().StringFixed(kernel.CurrencyPlaces)),
			Value: item.Total().StringFixed(kernel.CurrencyPlaces),
		})
	}

	driverName := ""
	if o.Driver() != nil {
		driverName = o.Driver().DriverName()
	}

	return append(fields,
		Field{Label: "Driver", Value: driverName},
		Field{Label: "Total", Value: o.TotalPrice().StringFixed(kernel.CurrencyPlaces)},
	)
}
