package http

import (
	"encoding/json"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// NewOrderRequest is the body of POST /api/orders/new.
type NewOrderRequest struct {
	Customer   NewOrderCustomer `json:"customer" validate:"required"`
	OrderItems []NewOrderItem   `json:"orderItems" validate:"required,min=1,dive"`
}

type NewOrderCustomer struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	PostCode  string `json:"postCode" validate:"required"`
}

type NewOrderItem struct {
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
}

func (r NewOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	lines := make([]commands.OrderLine, 0, len(r.OrderItems))
	for _, item := range r.OrderItems {
		lines = append(lines, commands.OrderLine{ProductName: item.ProductName, Quantity: item.Quantity})
	}

	return commands.NewCreateOrderCommand(
		r.Customer.FirstName,
		r.Customer.LastName,
		r.Customer.Phone,
		r.Customer.Address,
		r.Customer.PostCode,
		lines,
	)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type CustomerResponse struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostCode   string `json:"postCode"`
}

type ItemResponse struct {
	ItemID      int64       `json:"itemId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	ItemPrice   json.Number `json:"itemPrice"`
	TotalPrice  json.Number `json:"totalPrice"`
}

// OrderResponse is a formatted order; money is written as a JSON number with two
// decimal places.
type OrderResponse struct {
	OrderID         int64            `json:"orderId"`
	Customer        CustomerResponse `json:"customer"`
	OrderDate       string           `json:"orderDate"`
	StoreID         string           `json:"storeId"`
	OrderItems      []ItemResponse   `json:"orderItems"`
	TotalOrderPrice json.Number      `json:"totalOrderPrice"`
}

// DocketResponse is an order with its driver and docket. The commission key keeps the
// spelling existing clients read.
type DocketResponse struct {
	OrderResponse
	DriverID             int64       `json:"driverId"`
	DriverName           string      `json:"driverName"`
	TotalDriverCommision json.Number `json:"totalDriverCommision"`
	DocketNumber         string      `json:"docketNumber,omitempty"`
	DocketPDF            []byte      `json:"docketPdf,omitempty"`
}

type SummaryTargetResponse struct {
	Target string `json:"target"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SummaryResponse keeps the snake_case keys of the end-of-day report.
type SummaryResponse struct {
	Date             string                  `json:"date"`
	TotalOrders      int64                   `json:"total_orders"`
	TotalSales       json.Number             `json:"total_sales"`
	TotalCommision   json.Number             `json:"total_commision"`
	MostPopularPizza string                  `json:"most_popular_pizza"`
	Targets          []SummaryTargetResponse `json:"targets"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(kernel.CurrencyPlaces))
}

func toOrderResponse(o *order.Order) OrderResponse {
	c := o.Customer()
	resp := OrderResponse{
		OrderID: o.ID(),
		Customer: CustomerResponse{
			CustomerID: c.ID(),
			FirstName:  c.FirstName(),
			LastName:   c.LastName(),
			Phone:      c.Phone(),
			Address:    c.Address(),
			PostCode:   c.PostCode(),
		},
		OrderDate:       o.Date().String(),
		StoreID:         o.StoreID(),
		OrderItems:      make([]ItemResponse, 0, len(o.Items())),
		TotalOrderPrice: money(o.TotalPrice()),
	}

	for _, item := range o.Items() {
		resp.OrderItems = append(resp.OrderItems, ItemResponse{
			ItemID:      item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			ItemPrice:   money(item.UnitPrice()),
			TotalPrice:  money(item.Total()),
		})
	}

	return resp
}

func toDocketResponse(o *order.Order) DocketResponse {
	resp := DocketResponse{
		OrderResponse:        toOrderResponse(o),
		TotalDriverCommision: money(o.Commission()),
	}

	if a := o.Driver(); a != nil {
		resp.DriverID = a.DriverID()
		resp.DriverName = a.DriverName()
	}
	if d := o.Docket(); d != nil {
		resp.DocketNumber = d.Number().String()
		resp.DocketPDF = d.Artifact()
	}

	return resp
}

func toDocketResponses(orders []*order.Order) []DocketResponse {
	resp := make([]DocketResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toDocketResponse(o))
	}
	return resp
}

func toDailyOrderResponses(orders []queries.DailyOrderResponse) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		r := OrderResponse{
			OrderID: o.OrderID,
			Customer: CustomerResponse{
				CustomerID: o.CustomerID,
				FirstName:  o.FirstName,
				LastName:   o.LastName,
				Phone:      o.Phone,
				Address:    o.Address,
				PostCode:   o.PostCode,
			},
			OrderDate:       o.OrderDate,
			StoreID:         o.StoreID,
			OrderItems:      make([]ItemResponse, 0, len(o.Items)),
			TotalOrderPrice: json.Number(o.TotalPrice),
		}
		for _, item := range o.Items {
			r.OrderItems = append(r.OrderItems, ItemResponse{
				ItemID:      item.ItemID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				ItemPrice:   json.Number(item.UnitPrice),
				TotalPrice:  json.Number(item.TotalPrice),
			})
		}
		resp = append(resp, r)
	}
	return resp
}

func toSummaryResponse(result commands.EndOfDayResult) SummaryResponse {
	s := result.Summary
	resp := SummaryResponse{
		Date:             s.Date().String(),
		TotalOrders:      s.TotalOrders(),
		TotalSales:       money(s.TotalSales()),
		TotalCommision:   money(s.TotalCommission()),
		MostPopularPizza: s.MostPopularProduct(),
		Targets:          make([]SummaryTargetResponse, 0, len(result.Targets)),
	}

	for _, t := range result.Targets {
		tr := SummaryTargetResponse{Target: t.Target, Status: string(t.Status)}
		if t.Err != nil {
			tr.Error = t.Err.Error()
		}
		resp.Targets = append(resp.Targets, tr)
	}

	return resp
}
