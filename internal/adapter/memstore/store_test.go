package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanmo666/order-management-system/internal/entity"
)

func TestProductStoreDetachesValues(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore()

	p := &entity.Product{ID: "P-1", Name: "beans", Price: 10, Category: "coffee", Stock: 5}
	require.NoError(t, s.Add(ctx, p))

	// Mutating the value passed in must not reach the store.
	p.Stock = 99
	got, err := s.FindByID(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	// Mutating a value read out must not reach the store either.
	got.Stock = 42
	again, err := s.FindByID(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)
}

func TestProductStoreMissingIsNilNil(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore()

	got, err := s.FindByID(ctx, "P-404")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := s.Exists(ctx, "P-404")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductStoreFindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore()

	for _, id := range []string{"P-3", "P-1", "P-2"} {
		require.NoError(t, s.Add(ctx, &entity.Product{ID: id, Name: id, Price: 1, Category: "c"}))
	}
	require.NoError(t, s.Delete(ctx, "P-1"))
	require.NoError(t, s.Add(ctx, &entity.Product{ID: "P-1", Name: "P-1", Price: 1, Category: "c"}))

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "P-3", all[0].ID)
	assert.Equal(t, "P-2", all[1].ID)
	assert.Equal(t, "P-1", all[2].ID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOrderStoreDeepCopiesItemsAndCustomer(t *testing.T) {
	ctx := context.Background()
	s := NewOrderStore()

	o := &entity.Order{
		OrderID:  "O-1",
		Customer: &entity.Customer{ID: "C-1", Name: "alice"},
		Items: []entity.OrderItem{
			{ProductID: "P-1", Quantity: 2, Price: 5},
		},
		Status: entity.StatusPending,
	}
	require.NoError(t, s.Add(ctx, o))

	got, err := s.FindByID(ctx, "O-1")
	require.NoError(t, err)
	got.Items[0].Quantity = 99
	got.Customer.Name = "mallory"

	again, err := s.FindByID(ctx, "O-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)
	assert.Equal(t, "alice", again.Customer.Name)
}

func TestStoreUpdateAndDeleteRequireExistence(t *testing.T) {
	ctx := context.Background()
	s := NewInventoryStore()

	err := s.Update(ctx, &entity.Inventory{ProductID: "P-1", Quantity: 1, MinThreshold: 1, MaxCapacity: 10})
	assert.True(t, entity.IsValidation(err))
	assert.True(t, entity.IsValidation(s.Delete(ctx, "P-1")))

	inv := entity.NewInventory("P-1")
	require.NoError(t, s.Add(ctx, inv))
	assert.True(t, entity.IsValidation(s.Add(ctx, inv)))
}
