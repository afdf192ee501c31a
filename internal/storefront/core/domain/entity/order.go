package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is written once at checkout and never mutated afterwards, except by
// the compensation that cancels an order whose lines could not be stored.
type Order struct {
	ID            int64
	Session       string
	TotalAmount   decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        Status
	CreatedAt     time.Time
}

type OrderLine struct {
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}
