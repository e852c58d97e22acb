// Package seed loads demo data on an empty store so a fresh dev instance
// has something to browse and order against.
package seed

import (
	"context"
	"fmt"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/logging"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type demoProduct struct {
	id       string
	name     string
	price    float64
	category string
}

var demoProducts = []demoProduct{
	{"P-001", "iPhone 15", 7999.00, "Phones"},
	{"P-002", "Huawei MateBook", 6999.00, "Laptops"},
	{"P-003", "Lenovo Legion", 8999.00, "Laptops"},
	{"P-004", "Mi Band 8", 299.00, "Wearables"},
	{"P-005", "Sony WH-1000XM5", 1299.00, "Audio"},
	{"P-006", "Samsung 27\" 4K Monitor", 1999.00, "Displays"},
	{"P-007", "Dell Mechanical Keyboard", 299.00, "Peripherals"},
	{"P-008", "Logitech Wireless Mouse", 199.00, "Peripherals"},
}

var demoCustomers = []*entity.Customer{
	{ID: "C-demo0001", Name: "Alice Zhang", Phone: "555-0101"},
	{ID: "C-demo0002", Name: "Bob Liu", Phone: "555-0102"},
}

// Run is a no-op when any products already exist.
func Run(ctx context.Context, catalog *usecase.ProductCatalog, ledger *usecase.InventoryLedger,
	customers *usecase.CustomerRegistry) error {
	l := logging.FromCtx(ctx)

	existing, err := catalog.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list products: %w", err)
	}
	if len(existing) > 0 {
		l.Info("seed skipped, products already present", "count", len(existing))
		return nil
	}

	for i, dp := range demoProducts {
		stock := 50 + i*10
		p := &entity.Product{
			ID:       dp.id,
			Name:     dp.name,
			Price:    dp.price,
			Category: dp.category,
			Stock:    stock,
		}
		if err := catalog.AddProduct(ctx, p); err != nil {
			return fmt.Errorf("seed: add product %s: %w", dp.id, err)
		}
		inv := entity.NewInventory(dp.id)
		inv.Quantity = stock
		inv.MaxCapacity = 200
		if err := ledger.AddInventory(ctx, inv); err != nil {
			return fmt.Errorf("seed: add inventory %s: %w", dp.id, err)
		}
	}

	for _, c := range demoCustomers {
		if err := customers.AddCustomer(ctx, c); err != nil {
			return fmt.Errorf("seed: add customer %s: %w", c.ID, err)
		}
	}

	l.Info("seeded demo data", "products", len(demoProducts), "customers", len(demoCustomers))
	return nil
}
