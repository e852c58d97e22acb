package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuanmo666/order-management-system/internal/adapter/memstore"
	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/keylock"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

// env wires the three services over fresh in-memory stores, the way
// run.go does at process start.
type env struct {
	products    *memstore.ProductStore
	inventories *memstore.InventoryStore
	orders      *memstore.OrderStore
	customers   *memstore.CustomerStore

	catalog   *usecase.ProductCatalog
	ledger    *usecase.InventoryLedger
	registry  *usecase.CustomerRegistry
	processor *usecase.OrderProcessor
}

func newEnv() *env {
	e := &env{
		products:    memstore.NewProductStore(),
		inventories: memstore.NewInventoryStore(),
		orders:      memstore.NewOrderStore(),
		customers:   memstore.NewCustomerStore(),
	}
	locks := keylock.NewRegistry()
	events := usecase.NopPublisher{}
	e.catalog = usecase.NewProductCatalog(e.products, e.inventories, locks)
	e.ledger = usecase.NewInventoryLedger(e.inventories, e.products, locks, events)
	e.registry = usecase.NewCustomerRegistry(e.customers)
	e.processor = usecase.NewOrderProcessor(e.orders, e.products, e.inventories, e.customers, locks, events)
	return e
}

// addProduct stores a product with a paired inventory record at the same
// quantity.
func (e *env) addProduct(t *testing.T, id string, price float64, stock int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.catalog.AddProduct(ctx, &entity.Product{
		ID:       id,
		Name:     "product " + id,
		Price:    price,
		Category: "test",
		Stock:    stock,
	}))
	inv := entity.NewInventory(id)
	inv.Quantity = stock
	require.NoError(t, e.ledger.AddInventory(ctx, inv))
}

func (e *env) addCustomer(t *testing.T, id string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{ID: id, Name: "customer " + id}
	require.NoError(t, e.registry.AddCustomer(context.Background(), c))
	return c
}

// requireConsistent asserts the dual-bookkeeping invariant for one
// product.
func (e *env) requireConsistent(t *testing.T, productID string, want int) {
	t.Helper()
	ctx := context.Background()
	p, err := e.catalog.GetByID(ctx, productID)
	require.NoError(t, err)
	inv, err := e.ledger.GetByProductID(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, want, p.Stock, "product stock")
	require.Equal(t, want, inv.Quantity, "inventory quantity")
}
