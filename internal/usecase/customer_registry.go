package usecase

import (
	"context"
	"strings"

	"github.com/xuanmo666/order-management-system/internal/entity"
)

// CustomerRegistry is thin CRUD over customer records; order creation
// credits TotalSpent through the OrderProcessor, not here.
type CustomerRegistry struct {
	customers CustomerRepo
}

func NewCustomerRegistry(customers CustomerRepo) *CustomerRegistry {
	return &CustomerRegistry{customers: customers}
}

func (s *CustomerRegistry) AddCustomer(ctx context.Context, c *entity.Customer) error {
	if c == nil {
		return entity.Validationf("customer required")
	}
	if strings.TrimSpace(c.ID) == "" {
		return entity.Validationf("customer id required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return entity.Validationf("customer name required")
	}
	exists, err := s.customers.Exists(ctx, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return entity.Validationf("customer id already exists: %s", c.ID)
	}
	return s.customers.Add(ctx, c)
}

func (s *CustomerRegistry) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.Validationf("customer id required")
	}
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, entity.Validationf("customer not found: %s", id)
	}
	return c, nil
}

func (s *CustomerRegistry) GetAll(ctx context.Context) ([]*entity.Customer, error) {
	return s.customers.FindAll(ctx)
}
