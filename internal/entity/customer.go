package entity

// Customer may be referenced by many orders; TotalSpent only ever grows.
type Customer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	TotalSpent float64 `json:"totalSpent"`
}

func (c *Customer) AddSpent(amount float64) {
	c.TotalSpent += amount
}
