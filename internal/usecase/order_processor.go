package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/keylock"
	"github.com/xuanmo666/order-management-system/internal/logging"
)

// OrderProcessor drives the order lifecycle. It is the only service that
// spans the catalog and the ledger: creation and cancellation move both
// stock figures together, under one lock span per involved product, so a
// failed order never leaves a partial decrement behind.
type OrderProcessor struct {
	orders      OrderRepo
	products    ProductRepo
	inventories InventoryRepo
	customers   CustomerRepo
	locks       *keylock.Registry
	events      EventPublisher
}

func NewOrderProcessor(orders OrderRepo, products ProductRepo, inventories InventoryRepo,
	customers CustomerRepo, locks *keylock.Registry, events EventPublisher) *OrderProcessor {
	return &OrderProcessor{
		orders:      orders,
		products:    products,
		inventories: inventories,
		customers:   customers,
		locks:       locks,
		events:      events,
	}
}

// orderLockKey keeps order locks in their own key space of the shared
// registry, alongside product ids and customer keys.
func orderLockKey(orderID string) string { return "order:" + orderID }

// CreateOrder validates the draft, checks availability for every item while
// holding the locks of all involved products, and only then decrements
// stock. A duplicate product across items is checked against its summed
// quantity, so the decrement phase cannot fail. The order lock is held for
// the whole span so two submissions of the same id cannot both pass the
// duplicate check.
func (s *OrderProcessor) CreateOrder(ctx context.Context, order *entity.Order) error {
	if err := s.validateDraft(order); err != nil {
		return err
	}

	unlockOrder := s.locks.Lock(orderLockKey(order.OrderID))
	defer unlockOrder()

	exists, err := s.orders.Exists(ctx, order.OrderID)
	if err != nil {
		return err
	}
	if exists {
		return entity.Validationf("order id already exists: %s", order.OrderID)
	}

	productIDs := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	unlock := s.locks.LockAll(productIDs)
	defer unlock()

	// Phase 1: resolve products and verify availability for the whole
	// order before touching anything.
	required := make(map[string]int, len(order.Items))
	for _, it := range order.Items {
		required[it.ProductID] += it.Quantity
	}
	resolved := make(map[string]*entity.Product, len(required))
	for pid, qty := range required {
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return err
		}
		if p == nil {
			ordersRejected.WithLabelValues("unknown_product").Inc()
			return entity.Validationf("product not found: %s", pid)
		}
		if p.Stock < qty {
			ordersRejected.WithLabelValues("insufficient_stock").Inc()
			return entity.Businessf("insufficient stock: %s holds %d, requested %d",
				p.Name, p.Stock, qty)
		}
		resolved[pid] = p
	}

	// Phase 2: commit the decrements and snapshot item fields.
	for pid, qty := range required {
		p := resolved[pid]
		p.Stock -= qty
		if err := s.products.Update(ctx, p); err != nil {
			return err
		}
		if err := s.applyInventoryDelta(ctx, pid, -qty); err != nil {
			return err
		}
	}
	for i := range order.Items {
		it := &order.Items[i]
		p := resolved[it.ProductID]
		if it.ProductName == "" {
			it.ProductName = p.Name
		}
		if it.Price == 0 {
			it.Price = p.Price
		}
	}

	order.CalculateTotal()
	if err := s.creditCustomer(ctx, order); err != nil {
		return err
	}

	order.Status = entity.StatusPending
	if order.CreateTime.IsZero() {
		order.CreateTime = time.Now()
	}
	if err := s.orders.Add(ctx, order); err != nil {
		return err
	}

	ordersCreated.Inc()
	if err := s.events.PublishOrderCreated(ctx, OrderCreatedMsg{
		OrderID:     order.OrderID,
		CustomerID:  order.Customer.ID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		At:          order.CreateTime,
	}); err != nil {
		logging.FromCtx(ctx).Warn("publish order created event", "order_id", order.OrderID, "err", err)
	}
	return nil
}

func (s *OrderProcessor) validateDraft(order *entity.Order) error {
	if order == nil {
		return entity.Validationf("order required")
	}
	if strings.TrimSpace(order.OrderID) == "" {
		return entity.Validationf("order id required")
	}
	if order.Customer == nil {
		return entity.Validationf("order must reference a customer")
	}
	if len(order.Items) == 0 {
		return entity.Validationf("order must contain at least one item")
	}
	for _, it := range order.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return entity.Validationf("order item product id required")
		}
		if it.Quantity <= 0 {
			return entity.Validationf("order item quantity must be positive, got %d", it.Quantity)
		}
	}
	return nil
}

// creditCustomer adds the order total to the canonical customer record when
// one is registered, mutating the in-order reference otherwise.
func (s *OrderProcessor) creditCustomer(ctx context.Context, order *entity.Order) error {
	// Distinct key space from product ids; serializes concurrent credits
	// to the same customer.
	unlock := s.locks.Lock("customer:" + order.Customer.ID)
	defer unlock()

	canonical, err := s.customers.FindByID(ctx, order.Customer.ID)
	if err != nil {
		return err
	}
	if canonical == nil {
		order.Customer.AddSpent(order.TotalAmount)
		return nil
	}
	canonical.AddSpent(order.TotalAmount)
	if err := s.customers.Update(ctx, canonical); err != nil {
		return err
	}
	order.Customer = canonical
	return nil
}

// UpdateOrderStatus applies the status state machine and persists the
// result. An illegal transition fails with BusinessError and changes
// nothing. The order lock spans the read-check-write so concurrent
// transitions on the same order serialize.
func (s *OrderProcessor) UpdateOrderStatus(ctx context.Context, orderID string, newStatus entity.Status) error {
	if strings.TrimSpace(orderID) == "" {
		return entity.Validationf("order id required")
	}

	unlockOrder := s.locks.Lock(orderLockKey(orderID))
	defer unlockOrder()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return entity.Validationf("order not found: %s", orderID)
	}
	if err := order.ChangeStatus(newStatus); err != nil {
		return err
	}
	return s.orders.Update(ctx, order)
}

// CancelOrder is only legal while the order is PENDING. It restores both
// stock figures for every item and marks the order CANCELLED. The order
// lock is held from the status check to the status write; a second cancel
// racing the first sees CANCELLED and cannot restore the stock twice.
func (s *OrderProcessor) CancelOrder(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return entity.Validationf("order id required")
	}

	unlockOrder := s.locks.Lock(orderLockKey(orderID))
	defer unlockOrder()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return entity.Validationf("order not found: %s", orderID)
	}
	if order.Status != entity.StatusPending {
		return entity.Businessf("only pending orders may be cancelled, order %s is %s",
			orderID, order.Status)
	}

	productIDs := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	unlock := s.locks.LockAll(productIDs)
	defer unlock()

	restored := make(map[string]int, len(order.Items))
	for _, it := range order.Items {
		restored[it.ProductID] += it.Quantity
	}
	for pid, qty := range restored {
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return err
		}
		if p != nil {
			p.Stock += qty
			if err := s.products.Update(ctx, p); err != nil {
				return err
			}
		}
		if err := s.applyInventoryDelta(ctx, pid, qty); err != nil {
			return err
		}
	}

	order.Status = entity.StatusCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	ordersCancelled.Inc()
	if err := s.events.PublishOrderCancelled(ctx, OrderCancelledMsg{
		OrderID: orderID,
		At:      time.Now(),
	}); err != nil {
		logging.FromCtx(ctx).Warn("publish order cancelled event", "order_id", orderID, "err", err)
	}
	return nil
}

// applyInventoryDelta shifts the ledger quantity, flooring at zero; a
// product without a paired record is tolerated. Caller holds the product
// lock.
func (s *OrderProcessor) applyInventoryDelta(ctx context.Context, productID string, delta int) error {
	inv, err := s.inventories.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if inv == nil {
		logging.FromCtx(ctx).Warn("no inventory record paired with product", "product_id", productID)
		return nil
	}
	inv.Quantity += delta
	if inv.Quantity < 0 {
		inv.Quantity = 0
	}
	return s.inventories.Update(ctx, inv)
}

func (s *OrderProcessor) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, entity.Validationf("order id required")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, entity.Validationf("order not found: %s", orderID)
	}
	return order, nil
}

func (s *OrderProcessor) GetAll(ctx context.Context) ([]*entity.Order, error) {
	return s.orders.FindAll(ctx)
}

// SearchOrders filters by customer id and status; omitted filters are not
// applied.
func (s *OrderProcessor) SearchOrders(ctx context.Context, customerID string, status entity.Status) ([]*entity.Order, error) {
	all, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(all))
	for _, o := range all {
		if customerID != "" && (o.Customer == nil || o.Customer.ID != customerID) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type OrderStatistics struct {
	TotalOrders   int                   `json:"totalOrders"`
	TotalSales    float64               `json:"totalSales"`
	ByStatus      map[entity.Status]int `json:"byStatus"`
	AverageAmount float64               `json:"averageAmount"`
}

// Statistics aggregates over all orders regardless of status.
func (s *OrderProcessor) Statistics(ctx context.Context) (OrderStatistics, error) {
	all, err := s.orders.FindAll(ctx)
	if err != nil {
		return OrderStatistics{}, err
	}
	stats := OrderStatistics{ByStatus: make(map[entity.Status]int)}
	for _, o := range all {
		stats.TotalOrders++
		stats.TotalSales += o.TotalAmount
		stats.ByStatus[o.Status]++
	}
	if stats.TotalOrders > 0 {
		stats.AverageAmount = stats.TotalSales / float64(stats.TotalOrders)
	}
	return stats, nil
}

// HotProducts ranks products by total quantity sold across every order,
// any status, descending; ties break by product id so the order is
// deterministic. The result is truncated to limit.
func (s *OrderProcessor) HotProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		return []*entity.Product{}, nil
	}
	all, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sold := make(map[string]int)
	for _, o := range all {
		for _, it := range o.Items {
			sold[it.ProductID] += it.Quantity
		}
	}

	ids := make([]string, 0, len(sold))
	for pid := range sold {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool {
		if sold[ids[i]] != sold[ids[j]] {
			return sold[ids[i]] > sold[ids[j]]
		}
		return ids[i] < ids[j]
	})

	out := make([]*entity.Product, 0, limit)
	for _, pid := range ids {
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// OrderItemCount returns the number of line items on an order.
func (s *OrderProcessor) OrderItemCount(ctx context.Context, orderID string) (int, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return len(order.Items), nil
}
