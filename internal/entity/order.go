package entity

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the order status state machine. CANCELLED and COMPLETED
// are terminal and accept nothing.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the state machine permits s -> to.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem snapshots the product name and unit price at order time so
// later catalog edits do not change a committed order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

func (it *OrderItem) CalculateSubtotal() {
	it.Subtotal = it.Price * float64(it.Quantity)
}

type Order struct {
	OrderID     string      `json:"orderId"`
	Customer    *Customer   `json:"customer"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      Status      `json:"status"`
	CreateTime  time.Time   `json:"createTime"`
}

// CalculateTotal recomputes every item subtotal and the order total.
func (o *Order) CalculateTotal() {
	total := 0.0
	for i := range o.Items {
		o.Items[i].CalculateSubtotal()
		total += o.Items[i].Subtotal
	}
	o.TotalAmount = total
}

// ChangeStatus applies the state machine, leaving the status untouched on
// an illegal transition.
func (o *Order) ChangeStatus(to Status) error {
	if !to.Valid() {
		return Validationf("unknown order status: %s", to)
	}
	if !o.Status.CanTransition(to) {
		return Businessf("illegal status transition: %s -> %s", o.Status, to)
	}
	o.Status = to
	return nil
}
