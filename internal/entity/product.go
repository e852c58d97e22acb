package entity

// Product is a catalog record. Stock is the denormalized on-hand count and
// must match the paired Inventory.Quantity after every committed operation.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

func (p *Product) IncreaseStock(amount int) {
	p.Stock += amount
}

// DecreaseStock reports whether stock was sufficient; it leaves the count
// unchanged when it is not.
func (p *Product) DecreaseStock(amount int) bool {
	if p.Stock < amount {
		return false
	}
	p.Stock -= amount
	return true
}
