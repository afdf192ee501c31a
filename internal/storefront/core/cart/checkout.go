package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/coordinator"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/forms"
)

// Reason classifies a failed checkout so callers can pick a status code
// without parsing the message.
type Reason string

const (
	ReasonInvalid   Reason = "invalid_customer"
	ReasonCartEmpty Reason = "cart_empty"
	ReasonRemote    Reason = "remote_error"
)

// CheckoutResult is the outcome of Checkout. Failures are reported here
// rather than as Go errors.
type CheckoutResult struct {
	Success bool               `json:"success"`
	OrderID int64              `json:"orderId,omitempty"`
	Reason  Reason             `json:"reason,omitempty"`
	Error   string             `json:"error,omitempty"`
	Fields  []forms.FieldError `json:"fields,omitempty"`
}

type checkoutPayload struct {
	Session string                `json:"session"`
	Total   decimal.Decimal       `json:"total"`
	Lines   []checkoutLinePayload `json:"lines"`
}

type checkoutLinePayload struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Checkout turns the cart into an order plus one order line per cart line,
// then clears the cart. Unit prices come from the cart snapshot, not from the
// catalog. If the lines cannot be stored the order is marked cancelled; the
// order row itself is kept.
func (s *Store) Checkout(ctx context.Context, info forms.CustomerInfo) CheckoutResult {
	if err := info.Validate(); err != nil {
		res := CheckoutResult{Reason: ReasonInvalid, Error: err.Error()}
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			res.Error = verr.Message()
			res.Fields = verr.Fields
		}
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return CheckoutResult{Reason: ReasonCartEmpty, Error: "Cart is empty"}
	}

	order := &entity.Order{
		Session:       s.session,
		TotalAmount:   s.total,
		CustomerName:  info.Name,
		CustomerEmail: info.Email,
		CustomerPhone: info.Phone,
		Status:        entity.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	lines := make([]entity.OrderLine, len(s.items))
	payload := checkoutPayload{Session: s.session, Total: s.total, Lines: make([]checkoutLinePayload, len(s.items))}
	for i, l := range s.items {
		lines[i] = entity.OrderLine{ProductID: l.ID, Quantity: l.Quantity, Price: l.Price}
		payload.Lines[i] = checkoutLinePayload{ProductID: l.ID, Quantity: l.Quantity, Price: l.Price}
	}
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode checkout payload, journaling without it", "session", s.session, "error", err)
		rawPayload = []byte("{}")
	}

	orderStep := coordinator.NewInsertOrderStep(s.remote, order)
	steps := []coordinator.Step{
		orderStep,
		coordinator.NewInsertOrderLinesStep(s.remote, orderStep, lines),
	}

	// A client that disconnects mid-checkout must not leave a pending order
	// without lines, so the run outlives the request.
	runCtx := context.WithoutCancel(ctx)
	if err := coordinator.NewOrchestrator(uuid.NewString(), string(rawPayload), steps, s.journal).Start(runCtx); err != nil {
		return CheckoutResult{Reason: ReasonRemote, Error: err.Error()}
	}

	s.clearLocked(runCtx)
	return CheckoutResult{Success: true, OrderID: orderStep.OrderID()}
}
