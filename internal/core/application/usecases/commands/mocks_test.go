package commands_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHeadOffice struct{ mock.Mock }

func (m *MockHeadOffice) DailyRows(ctx context.Context, date kernel.BusinessDate) ([]order.SourceRow, error) {
	args := m.Called(ctx, date)
	rows, _ := args.Get(0).([]order.SourceRow)
	return rows, args.Error(1)
}

func (m *MockHeadOffice) FindCatalogItem(ctx context.Context, productName string) (ports.CatalogItem, error) {
	args := m.Called(ctx, productName)
	item, _ := args.Get(0).(ports.CatalogItem)
	return item, args.Error(1)
}

func (m *MockHeadOffice) FindCustomerID(ctx context.Context, firstName, lastName string) (int64, error) {
	args := m.Called(ctx, firstName, lastName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHeadOffice) MaxOrderID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHeadOffice) MaxItemID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHeadOffice) MaxCustomerID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSummaryWriter struct {
	mock.Mock
	name string
}

func (m *MockSummaryWriter) Target() string { return m.name }

func (m *MockSummaryWriter) WriteSummary(ctx context.Context, s summary.DailySummary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) Render(ctx context.Context, fields []order.Field) ([]byte, error) {
	args := m.Called(ctx, fields)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...ports.FulfillmentEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeOrderStore keeps orders in memory and enforces (date, order id) uniqueness.
type fakeOrderStore struct {
	mu           sync.Mutex
	orders       map[string]map[int64]*order.Order
	addManyCalls int
	addCalls     int
	findErr      error
	addErr       error
	aggregate    *ports.DayAggregate

	// interleave runs once inside the next Add, before the order is stored.
	interleave func(o *order.Order)
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]map[int64]*order.Order)}
}

func (s *fakeOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCalls++
	if s.addErr != nil {
		return s.addErr
	}
	if f := s.interleave; f != nil {
		s.interleave = nil
		f(o)
	}
	return s.put(o)
}

func (s *fakeOrderStore) MaxOrderID(_ context.Context, date kernel.BusinessDate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for id := range s.orders[date.String()] {
		maxID = max(maxID, id)
	}
	return maxID, nil
}

func (s *fakeOrderStore) AddMany(_ context.Context, orders []*order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addManyCalls++
	if s.addErr != nil {
		return s.addErr
	}
	var dupErr error
	for _, o := range orders {
		if err := s.put(o); err != nil {
			dupErr = err
		}
	}
	return dupErr
}

func (s *fakeOrderStore) put(o *order.Order) error {
	day := s.orders[o.Date().String()]
	if day == nil {
		day = make(map[int64]*order.Order)
		s.orders[o.Date().String()] = day
	}
	if _, ok := day[o.ID()]; ok {
		return errs.NewDuplicateWriteError("orders", o.ID())
	}
	day[o.ID()] = o
	return nil
}

func (s *fakeOrderStore) FindByDate(_ context.Context, date kernel.BusinessDate) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	result := make([]*order.Order, 0)
	for _, o := range s.orders[date.String()] {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

// SummarizeDay mirrors the store's aggregation over the in-memory orders.
func (s *fakeOrderStore) SummarizeDay(ctx context.Context, date kernel.BusinessDate) (ports.DayAggregate, error) {
	if s.aggregate != nil {
		return *s.aggregate, nil
	}
	orders, err := s.FindByDate(ctx, date)
	if err != nil {
		return ports.DayAggregate{}, err
	}

	agg := ports.DayAggregate{TotalSales: decimal.Zero, TotalCommission: decimal.Zero}
	quantities := make(map[string]int)
	for _, o := range orders {
		agg.OrderCount++
		agg.TotalSales = agg.TotalSales.Add(o.TotalPrice())
		agg.TotalCommission = agg.TotalCommission.Add(o.Commission())
		for _, item := range o.Items() {
			quantities[item.ProductName()] += item.Quantity()
		}
	}
	best := -1
	for name, qty := range quantities {
		if qty > best || (qty == best && name < agg.TopProduct) {
			best, agg.TopProduct = qty, name
		}
	}
	return agg, nil
}

// fakeRegistry serves drivers in slice order.
type fakeRegistry struct {
	drivers     []*driver.Driver
	getAllCalls int
	coveringErr error
}

func (r *fakeRegistry) FindCovering(_ context.Context, pc kernel.PostCode) ([]*driver.Driver, error) {
	if r.coveringErr != nil {
		return nil, r.coveringErr
	}
	result := make([]*driver.Driver, 0)
	for _, d := range r.drivers {
		if d.Covers(pc) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *fakeRegistry) GetAll(_ context.Context) ([]*driver.Driver, error) {
	r.getAllCalls++
	return r.drivers, nil
}

type fakeSession struct {
	headOffice *MockHeadOffice
	targets    []ports.SummaryWriter
	orders     *fakeOrderStore
	drivers    *fakeRegistry
}

func (s *fakeSession) HeadOffice() ports.HeadOfficeRepository { return s.headOffice }
func (s *fakeSession) SummaryTargets() []ports.SummaryWriter  { return s.targets }
func (s *fakeSession) Orders() ports.OrderRepository          { return s.orders }
func (s *fakeSession) Drivers() ports.DriverRegistry          { return s.drivers }
func (s *fakeSession) Close(_ context.Context) error          { return nil }

var testDay = kernel.MustParseBusinessDate("2024-03-01")

func intPtr(v int) *int { return &v }

func mustDriver(t *testing.T, id int64, name, rate string, start, end int) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(id, name, decimal.RequireFromString(rate), intPtr(start), intPtr(end))
	require.NoError(t, err)
	return d
}

func sourceRow(orderID, itemID int64, postCode, product, qty, price string) order.SourceRow {
	return order.SourceRow{
		OrderID:     orderID,
		OrderDate:   testDay,
		CustomerID:  orderID + 100,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Phone:       "0400 000 000",
		Address:     "1 Main St",
		PostCode:    postCode,
		ItemID:      itemID,
		ProductName: product,
		Quantity:    qty,
		ListPrice:   price,
	}
}

func newSession(t *testing.T) *fakeSession {
	t.Helper()
	return &fakeSession{
		headOffice: new(MockHeadOffice),
		orders:     newFakeOrderStore(),
		drivers: &fakeRegistry{drivers: []*driver.Driver{
			mustDriver(t, 1, "Bob", "0.1", 4000, 4099),
			mustDriver(t, 2, "Eve", "0.2", 4500, 4599),
		}},
	}
}

func stubRenderer() *MockRenderer {
	r := new(MockRenderer)
	r.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)
	return r
}
