package httpx

import "github.com/jcmexdev/storefront/internal/storefront/core/forms"

type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SessionResponse struct {
	Session string `json:"session"`
}

type CheckoutResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

type SubmittedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Remote string `json:"remote"`
}

type ErrorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Fields  []forms.FieldError `json:"fields,omitempty"`
}
