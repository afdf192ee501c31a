package entity

import "github.com/shopspring/decimal"

// Product is read-only from the storefront's point of view.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Features    []string        `json:"features"`
	InStock     bool            `json:"inStock"`
	Rating      float64         `json:"rating"`
}

// CartLine is a product snapshot plus the quantity held in the cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
