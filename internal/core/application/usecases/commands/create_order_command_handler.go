package commands

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxOrderIDAttempts bounds how often a taken order id is replaced by a fresh one.
const maxOrderIDAttempts = 3

// CreateOrderCommandHandler creates a single order outside the daily batch.
//
// The order id is one past the highest id in the head office and in the document
// store for the day; an id taken by a concurrent call is replaced by the next one.
// Each product is priced from the catalog; an unknown product gets the next free item
// id and a placeholder price.
// The customer id is looked up by name or minted as max+1. The order is stamped with
// the current business date of the store, located, docketed and stored.
//
// The handler is not idempotent: every call mints a new order id.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler("1102929", renderer, publisher, clock, rng, log)
//	o, err := handler.Handle(ctx, session, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.ID(), o.TotalPrice())
type CreateOrderCommandHandler struct {
	storeID   string
	fulfiller fulfiller
	publisher ports.EventPublisher
	clock     func() time.Time
	logger    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCreateOrderCommandHandler wires the handler. clock must return times in the
// store's time zone; rng draws placeholder prices and may be seeded in tests.
func NewCreateOrderCommandHandler(
	storeID string,
	renderer ports.DocumentRenderer,
	publisher ports.EventPublisher,
	clock func() time.Time,
	rng *rand.Rand,
	log *zap.Logger,
) *CreateOrderCommandHandler {
	log = logger.Component(log, "create-order")
	return &CreateOrderCommandHandler{
		storeID:   storeID,
		fulfiller: newFulfiller(renderer, log),
		publisher: publisher,
		clock:     clock,
		logger:    log,
		rng:       rng,
	}
}

// Handle builds and stores the order and returns it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, session ports.Session, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	headOffice := session.HeadOffice()
	store := session.Orders()
	date := kernel.NewBusinessDate(h.clock())

	orderID, err := h.nextOrderID(ctx, headOffice, store, date, 0)
	if err != nil {
		return nil, err
	}

	customerID, err := h.resolveCustomerID(ctx, headOffice, cmd.FirstName(), cmd.LastName())
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(customerID, cmd.FirstName(), cmd.LastName(),
		cmd.Phone(), cmd.Address(), cmd.PostCode())
	if err != nil {
		return nil, err
	}

	resolver := itemResolver{headOffice: headOffice, draw: h.placeholderPrice, logger: h.logger}
	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, itemErr := resolver.resolve(ctx, line)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	for attempt := 1; ; attempt++ {
		o, buildErr := h.build(ctx, session, orderID, customer, date, items)
		if buildErr != nil {
			return nil, buildErr
		}

		err = store.Add(ctx, o)
		if err == nil {
			h.logger.Info("order created",
				zap.Int64("orderId", o.ID()),
				zap.Stringer("date", o.Date()),
				zap.String("total", o.TotalPrice().StringFixed(kernel.CurrencyPlaces)))
			publish(ctx, h.publisher, h.logger, docketCreatedEvents([]*order.Order{o}, h.clock())...)
			return o, nil
		}
		if !errors.Is(err, errs.ErrDuplicateWrite) || attempt == maxOrderIDAttempts {
			return nil, err
		}

		h.logger.Warn("order id taken concurrently, minting another",
			zap.Int64("orderId", orderID), zap.Stringer("date", date))
		if orderID, err = h.nextOrderID(ctx, headOffice, store, date, orderID); err != nil {
			return nil, err
		}
	}
}

// nextOrderID is one past the highest of the head office ids, the ids stored for
// date and taken. Created orders are written to the document store only.
func (h *CreateOrderCommandHandler) nextOrderID(
	ctx context.Context,
	headOffice ports.HeadOfficeRepository,
	store ports.OrderRepository,
	date kernel.BusinessDate,
	taken int64,
) (int64, error) {
	headOfficeMax, err := headOffice.MaxOrderID(ctx)
	if err != nil {
		return 0, err
	}

	storedMax, err := store.MaxOrderID(ctx, date)
	if err != nil {
		return 0, err
	}

	return max(headOfficeMax, storedMax, taken) + 1, nil
}

func (h *CreateOrderCommandHandler) build(
	ctx context.Context,
	session ports.Session,
	id int64,
	customer order.Customer,
	date kernel.BusinessDate,
	items []order.Item,
) (*order.Order, error) {
	o, err := order.NewOrder(id, customer, date, h.storeID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = o.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err = h.fulfiller.fulfil(ctx, session.Drivers(), o); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *CreateOrderCommandHandler) resolveCustomerID(
	ctx context.Context,
	headOffice ports.HeadOfficeRepository,
	firstName, lastName string,
) (int64, error) {
	id, err := headOffice.FindCustomerID(ctx, firstName, lastName)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return 0, err
	}

	maxID, err := headOffice.MaxCustomerID(ctx)
	if err != nil {
		return 0, err
	}

	h.logger.Info("customer not found by name, minting id", zap.Int64("customerId", maxID+1))
	return maxID + 1, nil
}

func (h *CreateOrderCommandHandler) placeholderPrice() decimal.Decimal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return kernel.PlaceholderPrice(h.rng)
}

// itemResolver prices order lines from the catalog. Synthetic ids are handed out
// sequentially from max(item id)+1 so that two unknown products of one order differ.
type itemResolver struct {
	headOffice ports.HeadOfficeRepository
	draw       func() decimal.Decimal
	logger     *zap.Logger

	nextSyntheticID int64
}

func (r *itemResolver) resolve(ctx context.Context, line OrderLine) (order.Item, error) {
	catalogItem, err := r.headOffice.FindCatalogItem(ctx, line.ProductName)
	if err == nil {
		return order.NewItem(catalogItem.ID, line.ProductName, line.Quantity, catalogItem.ListPrice)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return order.Item{}, err
	}

	if r.nextSyntheticID == 0 {
		maxID, maxErr := r.headOffice.MaxItemID(ctx)
		if maxErr != nil {
			return order.Item{}, maxErr
		}
		r.nextSyntheticID = maxID + 1
	}

	id := r.nextSyntheticID
	r.nextSyntheticID++
	price := r.draw()

	r.logger.Info("product not in catalog, using placeholder",
		zap.String("product", line.ProductName),
		zap.Int64("itemId", id),
		zap.String("price", price.StringFixed(kernel.CurrencyPlaces)))

	return order.NewItem(id, line.ProductName, line.Quantity, price)
}
