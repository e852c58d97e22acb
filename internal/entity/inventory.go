package entity

const (
	DefaultMinThreshold = 10
	DefaultMaxCapacity  = 1000
)

// Inventory is the ledger record for one product, keyed 1:1 by product id.
type Inventory struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	MinThreshold int    `json:"minThreshold"`
	MaxCapacity  int    `json:"maxCapacity"`
}

// NewInventory returns a zero-quantity record with the default threshold
// and capacity.
func NewInventory(productID string) *Inventory {
	return &Inventory{
		ProductID:    productID,
		MinThreshold: DefaultMinThreshold,
		MaxCapacity:  DefaultMaxCapacity,
	}
}

// NeedsWarning reports whether the record is below its low-stock threshold.
func (i *Inventory) NeedsWarning() bool {
	return i.Quantity < i.MinThreshold
}

// OverCapacity reports whether adding amount would exceed MaxCapacity.
func (i *Inventory) OverCapacity(amount int) bool {
	return i.Quantity+amount > i.MaxCapacity
}

func (i *Inventory) Increase(amount int) error {
	if amount <= 0 {
		return Validationf("increase amount must be positive, got %d", amount)
	}
	if i.OverCapacity(amount) {
		return Businessf("over capacity: %s holds %d, adding %d exceeds %d",
			i.ProductID, i.Quantity, amount, i.MaxCapacity)
	}
	i.Quantity += amount
	return nil
}

func (i *Inventory) Decrease(amount int) error {
	if amount <= 0 {
		return Validationf("decrease amount must be positive, got %d", amount)
	}
	if i.Quantity < amount {
		return Businessf("insufficient stock: %s holds %d, requested %d",
			i.ProductID, i.Quantity, amount)
	}
	i.Quantity -= amount
	return nil
}
