package model

import "github.com/shopspring/decimal"

// Product is a point-in-time catalog read, not a stock reservation.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	InventoryCount int             `json:"inventory_count"`
}

// Available reports whether the snapshot covers the requested quantity.
func (p Product) Available(quantity int) bool {
	return p.InventoryCount >= quantity
}
