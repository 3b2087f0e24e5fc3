package commands_test

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brisbane = time.FixedZone("AEST", 10*60*60)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 23, 30, 0, 0, brisbane)
}

func newCreateOrderHandler(seed uint64) *commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler("1102929", stubRenderer(), nil, fixedClock,
		rand.New(rand.NewPCG(seed, seed)), nil)
}

func TestCreateOrderCommandHandler_Handle_KnownProductsAndCustomer(t *testing.T) {
	ctx := t.Context()
	session := newSession(t)
	ho := session.headOffice
	ho.On("MaxOrderID", ctx).Return(int64(41), nil).Once()
	ho.On("FindCustomerID", ctx, "Ada", "Lovelace").Return(int64(12), nil).Once()
	ho.On("FindCatalogItem", ctx, "A").Return(ports.CatalogItem{ID: 3, ListPrice: decimal.RequireFromString("5.00")}, nil).Once()
	ho.On("FindCatalogItem", ctx, "B").Return(ports.CatalogItem{ID: 4, ListPrice: decimal.RequireFromString("3.00")}, nil).Once()

	cmd, err := commands.NewCreateOrderCommand("Ada", "Lovelace", "0400", "1 Main St", "4050",
		[]commands.OrderLine{{ProductName: "A", Quantity: 2}, {ProductName: "B", Quantity: 1}})
	require.NoError(t, err)

	o, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID())
	assert.Equal(t, int64(12), o.Customer().ID())
	assert.Equal(t, "2024-03-01", o.Date().String())
	assert.Equal(t, "1102929", o.StoreID())
	assert.Equal(t, "13.00", o.TotalPrice().StringFixed(2))
	assert.Equal(t, "1.30", o.Commission().StringFixed(2))
	assert.Equal(t, order.Docketed, o.Status())
	assert.Equal(t, int64(3), o.Items()[0].ID())
	assert.Equal(t, 1, session.orders.addCalls)
	ho.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_OrderIDs(t *testing.T) {
	ctx := t.Context()

	setup := func(t *testing.T) *fakeSession {
		session := newSession(t)
		ho := session.headOffice
		ho.On("MaxOrderID", ctx).Return(int64(41), nil)
		ho.On("FindCustomerID", ctx, "Ada", "Lovelace").Return(int64(12), nil)
		ho.On("FindCatalogItem", ctx, "A").Return(ports.CatalogItem{ID: 3, ListPrice: decimal.RequireFromString("5.00")}, nil)
		return session
	}

	cmd, err := commands.NewCreateOrderCommand("Ada", "Lovelace", "0400", "1 Main St", "4050",
		[]commands.OrderLine{{ProductName: "A", Quantity: 1}})
	require.NoError(t, err)

	t.Run("second order of the day gets the next id", func(t *testing.T) {
		session := setup(t)
		handler := newCreateOrderHandler(1)

		first, err := handler.Handle(ctx, session, cmd)
		require.NoError(t, err)
		second, err := handler.Handle(ctx, session, cmd)
		require.NoError(t, err)

		assert.Equal(t, int64(42), first.ID())
		assert.Equal(t, int64(43), second.ID())
		stored, err := session.orders.FindByDate(ctx, testDay)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("stored orders above the head office maximum are skipped", func(t *testing.T) {
		session := setup(t)
		existing, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)
		require.NoError(t, err)
		require.Equal(t, int64(42), existing.ID())

		o, err := newCreateOrderHandler(2).Handle(ctx, session, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(43), o.ID())
	})

	t.Run("id taken concurrently is replaced", func(t *testing.T) {
		session := setup(t)
		session.orders.interleave = func(o *order.Order) {
			require.NoError(t, session.orders.put(o))
		}

		o, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(43), o.ID())
		assert.Equal(t, order.Docketed, o.Status())
		assert.Equal(t, 2, session.orders.addCalls)
	})

	t.Run("gives up when every minted id is rejected", func(t *testing.T) {
		session := setup(t)
		session.orders.addErr = errs.NewDuplicateWriteError("orders", 42)

		_, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

		require.ErrorIs(t, err, errs.ErrDuplicateWrite)
		assert.Equal(t, 3, session.orders.addCalls)
	})
}

func TestCreateOrderCommandHandler_Handle_Fallbacks(t *testing.T) {
	ctx := t.Context()

	setup := func(t *testing.T) *fakeSession {
		session := newSession(t)
		ho := session.headOffice
		ho.On("MaxOrderID", ctx).Return(int64(0), nil)
		ho.On("FindCustomerID", ctx, "New", "Person").Return(int64(0), errs.NewObjectNotFoundError("customer", "New Person"))
		ho.On("MaxCustomerID", ctx).Return(int64(99), nil)
		ho.On("FindCatalogItem", ctx, "Mystery").Return(ports.CatalogItem{}, errs.NewObjectNotFoundError("product", "Mystery"))
		ho.On("FindCatalogItem", ctx, "Enigma").Return(ports.CatalogItem{}, errs.NewObjectNotFoundError("product", "Enigma"))
		ho.On("MaxItemID", ctx).Return(int64(500), nil)
		return session
	}

	cmd, err := commands.NewCreateOrderCommand("New", "Person", "", "", "4700",
		[]commands.OrderLine{{ProductName: "Mystery", Quantity: 3}, {ProductName: "Enigma", Quantity: 1}})
	require.NoError(t, err)

	t.Run("synthetic ids, minted customer and placeholder prices", func(t *testing.T) {
		session := setup(t)

		o, err := newCreateOrderHandler(7).Handle(ctx, session, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(1), o.ID())
		assert.Equal(t, int64(100), o.Customer().ID())
		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(501), items[0].ID())
		assert.Equal(t, int64(502), items[1].ID())
		for _, item := range items {
			assert.True(t, item.UnitPrice().GreaterThanOrEqual(kernel.PlaceholderPriceMin))
			assert.True(t, item.UnitPrice().LessThan(kernel.PlaceholderPriceMax))
		}
		expected := items[0].Total().Add(items[1].Total())
		assert.True(t, expected.Equal(o.TotalPrice()))
		// nearest driver for a post code in no range
		assert.Equal(t, "Eve", o.Driver().DriverName())
		session.headOffice.AssertNumberOfCalls(t, "MaxItemID", 1)
	})

	t.Run("same seed gives the same price", func(t *testing.T) {
		first, err := newCreateOrderHandler(7).Handle(ctx, setup(t), cmd)
		require.NoError(t, err)
		second, err := newCreateOrderHandler(7).Handle(ctx, setup(t), cmd)
		require.NoError(t, err)

		assert.True(t, first.TotalPrice().Equal(second.TotalPrice()))
	})
}

func TestCreateOrderCommandHandler_Handle_Errors(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand("Ada", "Lovelace", "", "", "4050",
		[]commands.OrderLine{{ProductName: "A", Quantity: 1}})
	require.NoError(t, err)

	t.Run("catalog connectivity failure is not a fallback", func(t *testing.T) {
		session := newSession(t)
		ho := session.headOffice
		ho.On("MaxOrderID", ctx).Return(int64(1), nil)
		ho.On("FindCustomerID", ctx, "Ada", "Lovelace").Return(int64(5), nil)
		ho.On("FindCatalogItem", ctx, "A").Return(ports.CatalogItem{}, errs.NewConnectivityError("head office"))

		_, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

		require.ErrorIs(t, err, errs.ErrConnectivity)
		ho.AssertNotCalled(t, "MaxItemID", ctx)
		assert.Equal(t, 0, session.orders.addCalls)
	})

	t.Run("customer lookup failure is not a fallback", func(t *testing.T) {
		session := newSession(t)
		ho := session.headOffice
		ho.On("MaxOrderID", ctx).Return(int64(1), nil)
		ho.On("FindCustomerID", ctx, "Ada", "Lovelace").Return(int64(0), errors.New("broken pipe"))

		_, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

		require.Error(t, err)
		ho.AssertNotCalled(t, "MaxCustomerID", ctx)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		session := newSession(t)
		session.orders.addErr = errs.NewConnectivityError("document store")
		ho := session.headOffice
		ho.On("MaxOrderID", ctx).Return(int64(1), nil)
		ho.On("FindCustomerID", ctx, "Ada", "Lovelace").Return(int64(5), nil)
		ho.On("FindCatalogItem", ctx, "A").Return(ports.CatalogItem{ID: 1, ListPrice: decimal.NewFromInt(5)}, nil)

		_, err := newCreateOrderHandler(1).Handle(ctx, session, cmd)

		require.ErrorIs(t, err, errs.ErrConnectivity)
	})

	t.Run("not constructed command", func(t *testing.T) {
		_, err := newCreateOrderHandler(1).Handle(ctx, newSession(t), commands.CreateOrderCommand{})
		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
