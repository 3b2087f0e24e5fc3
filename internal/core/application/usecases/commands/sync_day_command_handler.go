package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logger"

	"go.uber.org/zap"
)

// SyncDayResult holds the orders of the date and whether they were already stored.
type SyncDayResult struct {
	Orders        []*order.Order
	AlreadySynced bool
}

// SyncDayCommandHandler syncs a business date at most once.
//
// When the document store already holds orders for the date they are returned as-is;
// the head office is not read and no docket is rebuilt. Otherwise the day's rows are
// formatted, every order gets a driver and a docket, and the batch is stored in one
// call. A concurrent sync that stored the batch first is detected through the store's
// uniqueness guarantee and the stored orders are returned instead.
//
// Example:
//
//	handler := NewSyncDayCommandHandler("1102929", renderer, publisher, log)
//	cmd, _ := NewSyncDayCommand(kernel.MustParseBusinessDate("2024-03-01"))
//	result, err := handler.Handle(ctx, session, cmd)
//	if err != nil {
//	    // nothing was stored, retry with a fresh session
//	}
type SyncDayCommandHandler struct {
	formatter services.OrderFormatter
	fulfiller fulfiller
	publisher ports.EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewSyncDayCommandHandler(
	storeID string,
	renderer ports.DocumentRenderer,
	publisher ports.EventPublisher,
	log *zap.Logger,
) SyncDayCommandHandler {
	log = logger.Component(log, "sync-day")
	return SyncDayCommandHandler{
		formatter: services.NewOrderFormatter(storeID),
		fulfiller: newFulfiller(renderer, log),
		publisher: publisher,
		now:       time.Now,
		logger:    log,
	}
}

// Handle syncs the date of cmd. Any failure before the batch is stored leaves the
// document store untouched.
func (h SyncDayCommandHandler) Handle(ctx context.Context, session ports.Session, cmd SyncDayCommand) (SyncDayResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncDayResult{}, err
	}

	date := cmd.Date()
	store := session.Orders()

	existing, err := store.FindByDate(ctx, date)
	if err != nil {
		return SyncDayResult{}, err
	}
	if len(existing) > 0 {
		h.logger.Info("business date already synced", zap.Stringer("date", date), zap.Int("orders", len(existing)))
		return SyncDayResult{Orders: existing, AlreadySynced: true}, nil
	}

	rows, err := session.HeadOffice().DailyRows(ctx, date)
	if err != nil {
		return SyncDayResult{}, err
	}

	orders, err := h.formatter.Format(rows)
	if err != nil {
		return SyncDayResult{}, err
	}

	for _, o := range orders {
		if err = h.fulfiller.fulfil(ctx, session.Drivers(), o); err != nil {
			return SyncDayResult{}, err
		}
	}

	if len(orders) == 0 {
		h.logger.Info("no head office orders for business date", zap.Stringer("date", date))
		return SyncDayResult{Orders: orders}, nil
	}

	err = store.AddMany(ctx, orders)
	if errors.Is(err, errs.ErrDuplicateWrite) {
		h.logger.Warn("business date synced concurrently, returning stored orders", zap.Stringer("date", date))
		stored, findErr := store.FindByDate(ctx, date)
		if findErr != nil {
			return SyncDayResult{}, findErr
		}
		return SyncDayResult{Orders: stored, AlreadySynced: true}, nil
	}
	if err != nil {
		return SyncDayResult{}, err
	}

	h.logger.Info("business date synced", zap.Stringer("date", date), zap.Int("orders", len(orders)))
	publish(ctx, h.publisher, h.logger, docketCreatedEvents(orders, h.now())...)

	return SyncDayResult{Orders: orders}, nil
}
