package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetDailyOrdersQueryHandler reads and formats a day of head-office rows.
//
// Example:
//
//	handler := NewGetDailyOrdersQueryHandler("1102929")
//	orders, err := handler.Handle(ctx, session, query)
//	if err != nil {
//	    return err
//	}
type GetDailyOrdersQueryHandler struct {
	formatter services.OrderFormatter
}

func NewGetDailyOrdersQueryHandler(storeID string) GetDailyOrdersQueryHandler {
	return GetDailyOrdersQueryHandler{formatter: services.NewOrderFormatter(storeID)}
}

// Handle returns the orders in first-seen order of their ids.
func (h GetDailyOrdersQueryHandler) Handle(
	ctx context.Context,
	session ports.Session,
	query GetDailyOrdersQuery,
) ([]DailyOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := session.HeadOffice().DailyRows(ctx, query.Date())
	if err != nil {
		return nil, err
	}

	orders, err := h.formatter.Format(rows)
	if err != nil {
		return nil, err
	}

	responses := make([]DailyOrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toDailyOrderResponse(o))
	}

	return responses, nil
}

func toDailyOrderResponse(o *order.Order) DailyOrderResponse {
	c := o.Customer()
	resp := DailyOrderResponse{
		OrderID:    o.ID(),
		OrderDate:  o.Date().String(),
		StoreID:    o.StoreID(),
		CustomerID: c.ID(),
		FirstName:  c.FirstName(),
		LastName:   c.LastName(),
		Phone:      c.Phone(),
		Address:    c.Address(),
		PostCode:   c.PostCode(),
		Items:      make([]DailyOrderItemResponse, 0, len(o.Items())),
		TotalPrice: o.TotalPrice().StringFixed(kernel.CurrencyPlaces),
	}

	for _, item := range o.Items() {
		resp.Items = append(resp.Items, DailyOrderItemResponse{
			ItemID:      item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().StringFixed(kernel.CurrencyPlaces),
			TotalPrice:  item.Total().StringFixed(kernel.CurrencyPlaces),
		})
	}

	return resp
}
