package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanmo666/order-management-system/internal/entity"
)

func draftOrder(id, customerID string, items ...entity.OrderItem) *entity.Order {
	return &entity.Order{
		OrderID:  id,
		Customer: &entity.Customer{ID: customerID, Name: "customer " + customerID},
		Items:    items,
	}
}

func TestCreateOrderDecrementsBothBooks(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 10)
	e.addCustomer(t, "C-1")

	order := draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 3})
	require.NoError(t, e.processor.CreateOrder(ctx, order))

	e.requireConsistent(t, "P-100", 7)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, 75.0, order.TotalAmount)
	assert.Equal(t, "product P-100", order.Items[0].ProductName)
	assert.Equal(t, 25.0, order.Items[0].Price)
	assert.False(t, order.CreateTime.IsZero())

	stored, err := e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, 75.0, stored.TotalAmount)
}

func TestCreateOrderInsufficientStockChangesNothing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 2)
	e.addCustomer(t, "C-1")

	order := draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 5})
	err := e.processor.CreateOrder(ctx, order)
	require.Error(t, err)
	assert.True(t, entity.IsBusiness(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	e.requireConsistent(t, "P-100", 2)
	_, err = e.processor.GetByID(ctx, "O-1")
	assert.True(t, entity.IsValidation(err))
}

func TestCreateOrderMultiItemFailureLeavesAllStockUntouched(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 10)
	e.addProduct(t, "P-200", 10.0, 1)
	e.addCustomer(t, "C-1")

	order := draftOrder("O-1", "C-1",
		entity.OrderItem{ProductID: "P-100", Quantity: 2},
		entity.OrderItem{ProductID: "P-200", Quantity: 5},
	)
	err := e.processor.CreateOrder(ctx, order)
	require.Error(t, err)
	assert.True(t, entity.IsBusiness(err))

	// The sufficient product must not have been decremented either.
	e.requireConsistent(t, "P-100", 10)
	e.requireConsistent(t, "P-200", 1)
}

func TestCreateOrderSumsDuplicateProductItems(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 5)
	e.addCustomer(t, "C-1")

	// 3+3 exceeds the stock of 5 even though each line alone fits.
	order := draftOrder("O-1", "C-1",
		entity.OrderItem{ProductID: "P-100", Quantity: 3},
		entity.OrderItem{ProductID: "P-100", Quantity: 3},
	)
	err := e.processor.CreateOrder(ctx, order)
	require.Error(t, err)
	assert.True(t, entity.IsBusiness(err))
	e.requireConsistent(t, "P-100", 5)

	// 2+3 fits exactly.
	order = draftOrder("O-2", "C-1",
		entity.OrderItem{ProductID: "P-100", Quantity: 2},
		entity.OrderItem{ProductID: "P-100", Quantity: 3},
	)
	require.NoError(t, e.processor.CreateOrder(ctx, order))
	e.requireConsistent(t, "P-100", 0)
}

func TestCreateOrderValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 5)
	e.addCustomer(t, "C-1")

	cases := []struct {
		name  string
		order *entity.Order
	}{
		{"nil order", nil},
		{"blank order id", draftOrder("", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})},
		{"no customer", &entity.Order{OrderID: "O-1", Items: []entity.OrderItem{{ProductID: "P-100", Quantity: 1}}}},
		{"no items", draftOrder("O-1", "C-1")},
		{"zero quantity", draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 0})},
		{"negative quantity", draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: -2})},
		{"unknown product", draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-999", Quantity: 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.processor.CreateOrder(ctx, tc.order)
			require.Error(t, err)
			assert.True(t, entity.IsValidation(err))
		})
	}
	e.requireConsistent(t, "P-100", 5)
}

func TestCreateOrderRejectsDuplicateID(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))

	err := e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1}))
	require.Error(t, err)
	assert.True(t, entity.IsValidation(err))
	e.requireConsistent(t, "P-100", 9)
}

func TestCreateOrderCreditsRegisteredCustomer(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 20.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 2})))
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-2", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))

	c, err := e.registry.GetByID(ctx, "C-1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, c.TotalSpent)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 3})))
	e.requireConsistent(t, "P-100", 7)

	require.NoError(t, e.processor.CancelOrder(ctx, "O-1"))
	e.requireConsistent(t, "P-100", 10)

	order, err := e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, order.Status)
}

func TestCancelOrderOnlyFromPending(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 3})))
	require.NoError(t, e.processor.UpdateOrderStatus(ctx, "O-1", entity.StatusPaid))

	err := e.processor.CancelOrder(ctx, "O-1")
	require.Error(t, err)
	assert.True(t, entity.IsBusiness(err))

	// Stock stays decremented and the order keeps its status.
	e.requireConsistent(t, "P-100", 7)
	order, err := e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, order.Status)
}

func TestUpdateOrderStatusStateMachine(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))

	// PENDING -> SHIPPED skips PAID and must fail without changing the
	// stored status.
	err := e.processor.UpdateOrderStatus(ctx, "O-1", entity.StatusShipped)
	require.Error(t, err)
	assert.True(t, entity.IsBusiness(err))
	order, err := e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, order.Status)

	for _, next := range []entity.Status{entity.StatusPaid, entity.StatusShipped, entity.StatusCompleted} {
		require.NoError(t, e.processor.UpdateOrderStatus(ctx, "O-1", next))
	}
	order, err = e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, order.Status)

	// COMPLETED is terminal.
	err = e.processor.UpdateOrderStatus(ctx, "O-1", entity.StatusPaid)
	assert.True(t, entity.IsBusiness(err))
}

func TestUpdateOrderStatusUnknownValues(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 25.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))

	assert.True(t, entity.IsValidation(e.processor.UpdateOrderStatus(ctx, "O-1", "SHOUTED")))
	assert.True(t, entity.IsValidation(e.processor.UpdateOrderStatus(ctx, "O-404", entity.StatusPaid)))
	assert.True(t, entity.IsValidation(e.processor.UpdateOrderStatus(ctx, "", entity.StatusPaid)))
}

func TestSearchOrders(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 100)
	e.addCustomer(t, "C-1")
	e.addCustomer(t, "C-2")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-2", "C-2", entity.OrderItem{ProductID: "P-100", Quantity: 1})))
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-3", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 1})))
	require.NoError(t, e.processor.UpdateOrderStatus(ctx, "O-3", entity.StatusPaid))

	byCustomer, err := e.processor.SearchOrders(ctx, "C-1", "")
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)

	byStatus, err := e.processor.SearchOrders(ctx, "", entity.StatusPaid)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "O-3", byStatus[0].OrderID)

	both, err := e.processor.SearchOrders(ctx, "C-1", entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "O-1", both[0].OrderID)
}

func TestOrderStatistics(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	empty, err := e.processor.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalOrders)
	assert.Equal(t, 0.0, empty.AverageAmount)

	e.addProduct(t, "P-100", 10.0, 100)
	e.addCustomer(t, "C-1")
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 2})))
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-2", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 4})))
	require.NoError(t, e.processor.CancelOrder(ctx, "O-2"))

	stats, err := e.processor.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 60.0, stats.TotalSales)
	assert.Equal(t, 30.0, stats.AverageAmount)
	assert.Equal(t, 1, stats.ByStatus[entity.StatusPending])
	assert.Equal(t, 1, stats.ByStatus[entity.StatusCancelled])
}

func TestHotProducts(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 100)
	e.addProduct(t, "P-200", 10.0, 100)
	e.addProduct(t, "P-300", 10.0, 100)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1",
			entity.OrderItem{ProductID: "P-200", Quantity: 5},
			entity.OrderItem{ProductID: "P-100", Quantity: 2})))
	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-2", "C-1",
			entity.OrderItem{ProductID: "P-300", Quantity: 2},
			entity.OrderItem{ProductID: "P-100", Quantity: 1})))

	// P-200 sold 5, P-100 3, P-300 2.
	top, err := e.processor.HotProducts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "P-200", top[0].ID)
	assert.Equal(t, "P-100", top[1].ID)
	assert.Equal(t, "P-300", top[2].ID)

	// Truncation.
	top, err = e.processor.HotProducts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "P-200", top[0].ID)

	none, err := e.processor.HotProducts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHotProductsTieBreaksByProductID(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-200", 10.0, 100)
	e.addProduct(t, "P-100", 10.0, 100)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1",
			entity.OrderItem{ProductID: "P-200", Quantity: 3},
			entity.OrderItem{ProductID: "P-100", Quantity: 3})))

	top, err := e.processor.HotProducts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "P-100", top[0].ID)
	assert.Equal(t, "P-200", top[1].ID)
}

func TestOrderItemCount(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 100)
	e.addProduct(t, "P-200", 10.0, 100)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1",
			entity.OrderItem{ProductID: "P-100", Quantity: 1},
			entity.OrderItem{ProductID: "P-200", Quantity: 2})))

	n, err := e.processor.OrderItemCount(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = e.processor.OrderItemCount(ctx, "O-404")
	assert.True(t, entity.IsValidation(err))
}

func TestConcurrentCancelRestoresStockOnce(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 10)
	e.addCustomer(t, "C-1")

	require.NoError(t, e.processor.CreateOrder(ctx,
		draftOrder("O-1", "C-1", entity.OrderItem{ProductID: "P-100", Quantity: 4})))
	e.requireConsistent(t, "P-100", 6)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.processor.CancelOrder(ctx, "O-1")
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.True(t, entity.IsBusiness(err), "unexpected error kind: %v", err)
	}
	assert.Equal(t, 1, ok)
	e.requireConsistent(t, "P-100", 10)

	order, err := e.processor.GetByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, order.Status)
}

func TestConcurrentSameOrderIDCreatesOnce(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 20)
	e.addCustomer(t, "C-1")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.processor.CreateOrder(ctx, draftOrder("O-1", "C-1",
				entity.OrderItem{ProductID: "P-100", Quantity: 2}))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.True(t, entity.IsValidation(err), "unexpected error kind: %v", err)
	}
	assert.Equal(t, 1, ok)
	// Only the winning submission decremented stock.
	e.requireConsistent(t, "P-100", 18)
}

func TestConcurrentCreateOrderNeverOversells(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addProduct(t, "P-100", 10.0, 6)
	e.addCustomer(t, "C-1")

	// 8 orders of 2 against a stock of 6: exactly 3 can succeed.
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.processor.CreateOrder(ctx, draftOrder(
				fmt.Sprintf("O-%d", i), "C-1",
				entity.OrderItem{ProductID: "P-100", Quantity: 2}))
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.True(t, entity.IsBusiness(err), "unexpected error kind: %v", err)
		rejected++
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, 5, rejected)
	e.requireConsistent(t, "P-100", 0)
}
