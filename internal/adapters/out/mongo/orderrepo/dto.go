package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// commissionRatePlaces bounds the rate recovered from a document written without one.
const commissionRatePlaces = 4

// OrderDocument is the stored shape of a docketed order. The driver and the docket are
// flattened onto the order and the field names are the ones the store's docket
// documents have always used, including totalDriverCommision. Money is kept as a
// double and the business date as a YYYY-MM-DD string.
//
// driverCommissionRate, docketNumber and docketPdf are absent on older documents.
type OrderDocument struct {
	OrderID              int64            `bson:"orderId"`
	Customer             CustomerDocument `bson:"customer"`
	OrderDate            string           `bson:"orderDate"`
	StoreID              string           `bson:"storeId"`
	OrderItems           []ItemDocument   `bson:"orderItems"`
	TotalOrderPrice      float64          `bson:"totalOrderPrice"`
	DriverID             *int64           `bson:"driverId,omitempty"`
	DriverName           string           `bson:"driverName,omitempty"`
	DriverCommissionRate *float64         `bson:"driverCommissionRate,omitempty"`
	TotalDriverCommision float64          `bson:"totalDriverCommision"`
	DocketNumber         string           `bson:"docketNumber,omitempty"`
	DocketPdf            []byte           `bson:"docketPdf,omitempty"`
}

type CustomerDocument struct {
	CustomerID int64  `bson:"customerId"`
	FirstName  string `bson:"firstName"`
	LastName   string `bson:"lastName"`
	Phone      string `bson:"phone"`
	Address    string `bson:"address"`
	PostCode   string `bson:"postCode"`
}

type ItemDocument struct {
	ItemID      int64   `bson:"itemId"`
	ProductName string  `bson:"productName"`
	Quantity    int     `bson:"quantity"`
	ItemPrice   float64 `bson:"itemPrice"`
	TotalPrice  float64 `bson:"totalPrice"`
}

func fromDomain(o *order.Order) OrderDocument {
	c := o.Customer()
	doc := OrderDocument{
		OrderID: o.ID(),
		Customer: CustomerDocument{
			CustomerID: c.ID(),
			FirstName:  c.FirstName(),
			LastName:   c.LastName(),
			Phone:      c.Phone(),
			Address:    c.Address(),
			PostCode:   c.PostCode(),
		},
		OrderDate:            o.Date().String(),
		StoreID:              o.StoreID(),
		OrderItems:           make([]ItemDocument, 0, len(o.Items())),
		TotalOrderPrice:      o.TotalPrice().InexactFloat64(),
		TotalDriverCommision: o.Commission().InexactFloat64(),
	}

	for _, item := range o.Items() {
		doc.OrderItems = append(doc.OrderItems, ItemDocument{
			ItemID:      item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			ItemPrice:   item.UnitPrice().InexactFloat64(),
			TotalPrice:  item.Total().InexactFloat64(),
		})
	}

	if a := o.Driver(); a != nil {
		id := a.DriverID()
		rate := a.CommissionRate().InexactFloat64()
		doc.DriverID = &id
		doc.DriverName = a.DriverName()
		doc.DriverCommissionRate = &rate
	}

	if d := o.Docket(); d != nil {
		doc.DocketNumber = d.Number().String()
		doc.DocketPdf = d.Artifact()
	}

	return doc
}

func toDomain(doc OrderDocument) (*order.Order, error) {
	date, err := kernel.ParseBusinessDate(doc.OrderDate)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(
		doc.Customer.CustomerID,
		doc.Customer.FirstName,
		doc.Customer.LastName,
		doc.Customer.Phone,
		doc.Customer.Address,
		doc.Customer.PostCode,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(doc.OrderItems))
	for _, it := range doc.OrderItems {
		item, err := order.NewItem(it.ItemID, it.ProductName, it.Quantity, decimal.NewFromFloat(it.ItemPrice))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	commission := kernel.RoundCurrency(decimal.NewFromFloat(doc.TotalDriverCommision))

	var assignment *order.DriverAssignment
	if doc.DriverID != nil {
		a, err := order.NewDriverAssignment(*doc.DriverID, doc.DriverName, commissionRate(doc, commission))
		if err != nil {
			return nil, err
		}
		assignment = &a
	}

	o, err := order.RestoreOrder(doc.OrderID, customer, date, doc.StoreID, items, assignment, commission, nil)
	if err != nil {
		return nil, err
	}

	// Older documents carry the driver but no docket number; they restore as Assigned.
	if doc.DocketNumber == "" || assignment == nil {
		return o, nil
	}

	number, err := uuid.Parse(doc.DocketNumber)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("docket number", err)
	}

	docket, err := order.RestoreDocket(number, o, doc.DriverName, doc.DocketPdf)
	if err != nil {
		return nil, err
	}

	if err = o.AttachDocket(docket); err != nil {
		return nil, err
	}

	return o, nil
}

// commissionRate returns the stored rate, or commission/total for documents written
// before the rate was kept.
func commissionRate(doc OrderDocument, commission decimal.Decimal) decimal.Decimal {
	if doc.DriverCommissionRate != nil {
		return decimal.NewFromFloat(*doc.DriverCommissionRate)
	}

	total := decimal.NewFromFloat(doc.TotalOrderPrice)
	if !total.IsPositive() {
		return decimal.Zero
	}

	return commission.DivRound(total, commissionRatePlaces)
}
