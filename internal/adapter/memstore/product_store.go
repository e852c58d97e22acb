package memstore

import (
	"context"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type ProductStore struct {
	c *collection[*entity.Product]
}

func NewProductStore() *ProductStore {
	return &ProductStore{c: newCollection(func(p *entity.Product) *entity.Product {
		cp := *p
		return &cp
	})}
}

func (s *ProductStore) Add(ctx context.Context, p *entity.Product) error {
	if !s.c.add(p.ID, p) {
		return entity.Validationf("product id already exists: %s", p.ID)
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, p *entity.Product) error {
	if !s.c.update(p.ID, p) {
		return entity.Validationf("product not found: %s", p.ID)
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if !s.c.delete(id) {
		return entity.Validationf("product not found: %s", id)
	}
	return nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := s.c.get(id)
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (s *ProductStore) FindAll(ctx context.Context) ([]*entity.Product, error) {
	return s.c.all(), nil
}

func (s *ProductStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.c.exists(id), nil
}

func (s *ProductStore) Count(ctx context.Context) (int, error) {
	return s.c.count(), nil
}

var _ usecase.ProductRepo = (*ProductStore)(nil)
