package postgrest

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

type productRow struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Features    []string        `json:"features"`
	InStock     bool            `json:"in_stock"`
	Rating      float64         `json:"rating"`
}

func (r productRow) toEntity() entity.Product {
	return entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Features:    r.Features,
		InStock:     r.InStock,
		Rating:      r.Rating,
	}
}

type cartRow struct {
	ProductID   int64       `json:"product_id"`
	Quantity    int         `json:"quantity"`
	UserSession string      `json:"user_session"`
	Products    *productRow `json:"products,omitempty"`
}

type orderRow struct {
	ID            int64           `json:"id,omitempty"`
	UserSession   string          `json:"user_session"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Status        entity.Status   `json:"status"`
}

type orderItemRow struct {
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type bookingRow struct {
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	ServiceType   string        `json:"service_type"`
	Description   *string       `json:"description"`
	PreferredDate string        `json:"preferred_date"`
	PreferredTime string        `json:"preferred_time"`
	Address       string        `json:"address"`
	Status        entity.Status `json:"status"`
}

type feedbackRow struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Message       string `json:"message"`
	Rating        int    `json:"rating"`
}
