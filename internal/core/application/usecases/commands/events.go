package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocketCreatedPayload is the body of a docket.created event.
type DocketCreatedPayload struct {
	DocketNumber string `json:"docketNumber"`
	OrderID      int64  `json:"orderId"`
	OrderDate    string `json:"orderDate"`
	StoreID      string `json:"storeId"`
	DriverID     int64  `json:"driverId"`
	DriverName   string `json:"driverName"`
	TotalPrice   string `json:"totalPrice"`
	Commission   string `json:"commission"`
}

// SummaryCreatedPayload is the body of a summary.created event.
type SummaryCreatedPayload struct {
	Date               string `json:"date"`
	TotalOrders        int64  `json:"totalOrders"`
	TotalSales         string `json:"totalSales"`
	TotalCommission    string `json:"totalCommission"`
	MostPopularProduct string `json:"mostPopularProduct"`
}

func docketCreatedEvents(orders []*order.Order, now time.Time) []ports.FulfillmentEvent {
	events := make([]ports.FulfillmentEvent, 0, len(orders))
	for _, o := range orders {
		if o.Docket() == nil || o.Driver() == nil {
			continue
		}
		events = append(events, ports.FulfillmentEvent{
			ID:         uuid.New(),
			Type:       ports.EventDocketCreated,
			Key:        fmt.Sprintf("%s/%d", o.Date(), o.ID()),
			OccurredAt: now,
			Payload: DocketCreatedPayload{
				DocketNumber: o.Docket().Number().String(),
				OrderID:      o.ID(),
				OrderDate:    o.Date().String(),
				StoreID:      o.StoreID(),
				DriverID:     o.Driver().DriverID(),
				DriverName:   o.Driver().DriverName(),
				TotalPrice:   o.TotalPrice().StringFixed(kernel.CurrencyPlaces),
				Commission:   o.Commission().StringFixed(kernel.CurrencyPlaces),
			},
		})
	}
	return events
}

func summaryCreatedEvent(s summary.DailySummary, now time.Time) ports.FulfillmentEvent {
	return ports.FulfillmentEvent{
		ID:         uuid.New(),
		Type:       ports.EventSummaryCreated,
		Key:        s.Date().String(),
		OccurredAt: now,
		Payload: SummaryCreatedPayload{
			Date:               s.Date().String(),
			TotalOrders:        s.TotalOrders(),
			TotalSales:         s.TotalSales().StringFixed(kernel.CurrencyPlaces),
			TotalCommission:    s.TotalCommission().StringFixed(kernel.CurrencyPlaces),
			MostPopularProduct: s.MostPopularProduct(),
		},
	}
}

// publish never fails the calling operation.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, events ...ports.FulfillmentEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish fulfillment events", zap.Int("count", len(events)), zap.Error(err))
	}
}
