package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type headOffice struct {
	rows    []order.SourceRow
	catalog map[string]ports.CatalogItem
}

func (h *headOffice) DailyRows(_ context.Context, date kernel.BusinessDate) ([]order.SourceRow, error) {
	var out []order.SourceRow
	for _, r := range h.rows {
		if r.OrderDate.IsEqual(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (h *headOffice) FindCatalogItem(_ context.Context, productName string) (ports.CatalogItem, error) {
	item, ok := h.catalog[productName]
	if !ok {
		return ports.CatalogItem{}, errs.NewObjectNotFoundError("product", productName)
	}
	return item, nil
}

func (h *headOffice) FindCustomerID(_ context.Context, firstName, lastName string) (int64, error) {
	for _, r := range h.rows {
		if strings.EqualFold(r.FirstName, firstName) && strings.EqualFold(r.LastName, lastName) {
			return r.CustomerID, nil
		}
	}
	return 0, errs.NewObjectNotFoundError("customer", firstName+" "+lastName)
}

func (h *headOffice) MaxOrderID(context.Context) (int64, error) {
	var maxID int64
	for _, r := range h.rows {
		maxID = max(maxID, r.OrderID)
	}
	return maxID, nil
}

func (h *headOffice) MaxItemID(context.Context) (int64, error) {
	var maxID int64
	for _, r := range h.rows {
		maxID = max(maxID, r.ItemID)
	}
	return maxID, nil
}

func (h *headOffice) MaxCustomerID(context.Context) (int64, error) {
	var maxID int64
	for _, r := range h.rows {
		maxID = max(maxID, r.CustomerID)
	}
	return maxID, nil
}

type summaryTable struct {
	name string
	mu   sync.Mutex
	rows map[string]summary.DailySummary
}

func (t *summaryTable) Target() string { return t.name }

func (t *summaryTable) WriteSummary(_ context.Context, s summary.DailySummary) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[s.Date().String()]; ok {
		return errs.NewDuplicateWriteError(t.name, s.Date().String())
	}
	t.rows[s.Date().String()] = s
	return nil
}

type orderStore struct {
	mu     sync.Mutex
	orders map[string][]*order.Order
}

func (s *orderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := o.Date().String()
	for _, stored := range s.orders[key] {
		if stored.ID() == o.ID() {
			return errs.NewDuplicateWriteError("orders", o.ID())
		}
	}
	s.orders[key] = append(s.orders[key], o)
	return nil
}

func (s *orderStore) MaxOrderID(_ context.Context, date kernel.BusinessDate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, o := range s.orders[date.String()] {
		maxID = max(maxID, o.ID())
	}
	return maxID, nil
}

func (s *orderStore) AddMany(ctx context.Context, orders []*order.Order) error {
	for _, o := range orders {
		if err := s.Add(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderStore) FindByDate(_ context.Context, date kernel.BusinessDate) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]*order.Order(nil), s.orders[date.String()]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (s *orderStore) SummarizeDay(ctx context.Context, date kernel.BusinessDate) (ports.DayAggregate, error) {
	orders, _ := s.FindByDate(ctx, date)
	agg := ports.DayAggregate{TotalSales: decimal.Zero, TotalCommission: decimal.Zero}
	counts := map[string]int{}
	for _, o := range orders {
		agg.OrderCount++
		agg.TotalSales = agg.TotalSales.Add(o.TotalPrice())
		agg.TotalCommission = agg.TotalCommission.Add(o.Commission())
		for _, item := range o.Items() {
			counts[item.ProductName()] += item.Quantity()
		}
	}
	best := -1
	for name, n := range counts {
		if n > best || (n == best && name < agg.TopProduct) {
			best, agg.TopProduct = n, name
		}
	}
	return agg, nil
}

type registry struct {
	drivers []*driver.Driver
}

func (r *registry) FindCovering(_ context.Context, pc kernel.PostCode) ([]*driver.Driver, error) {
	var out []*driver.Driver
	for _, d := range r.drivers {
		if d.Covers(pc) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *registry) GetAll(context.Context) ([]*driver.Driver, error) {
	return r.drivers, nil
}

type session struct {
	headOffice *headOffice
	targets    []ports.SummaryWriter
	orders     *orderStore
	drivers    *registry
}

func (s *session) HeadOffice() ports.HeadOfficeRepository  { return s.headOffice }
func (s *session) SummaryTargets() []ports.SummaryWriter   { return s.targets }
func (s *session) Orders() ports.OrderRepository           { return s.orders }
func (s *session) Drivers() ports.DriverRegistry           { return s.drivers }
func (s *session) Close(context.Context) error             { return nil }

// factory hands out the same in-memory stores on every Open, or fails while
// failures > 0.
type factory struct {
	mu       sync.Mutex
	session  *session
	opened   int
	failures int
}

func (f *factory) Open(context.Context) (ports.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened++
	if f.failures > 0 {
		f.failures--
		return nil, errs.NewConnectivityError("head office")
	}
	return f.session, nil
}

type renderer struct{}

func (renderer) Render(context.Context, []order.Field) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type publisher struct {
	mu     sync.Mutex
	events []ports.FulfillmentEvent
}

func (p *publisher) Publish(_ context.Context, events ...ports.FulfillmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}
