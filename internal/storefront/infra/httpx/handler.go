package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
	"github.com/jcmexdev/storefront/internal/storefront/core/cart"
	"github.com/jcmexdev/storefront/internal/storefront/core/catalog"
	"github.com/jcmexdev/storefront/internal/storefront/core/forms"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
	"github.com/jcmexdev/storefront/internal/storefront/core/session"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx/middlewares"
)

// SyncHeader is set to "failed" when a cart mutation could not be mirrored
// to the remote store. The local change stands either way.
const SyncHeader = "X-Cart-Sync"

const maxBodyBytes = 1 << 20

// Handler serves the storefront JSON API. A cart.Store is built per request
// for the caller's browser scope.
type Handler struct {
	catalog *catalog.Catalog
	forms   *forms.Service
	remote  ports.RemoteStore
	journal journal.Repository // nil: checkout runs are not journaled
}

func NewHandler(cat *catalog.Catalog, fs *forms.Service, remote ports.RemoteStore, repo journal.Repository) *Handler {
	return &Handler{
		catalog: cat,
		forms:   fs,
		remote:  remote,
		journal: repo,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Remote: "ok"}
	if err := h.remote.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "remote store ping failed", "error", err)
		resp.Remote = "unreachable"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	local, ok := h.local(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Session: session.GetOrCreate(r.Context(), local)})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List(r.Context(), r.URL.Query().Get("category")))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r, "id")
	if !ok {
		return
	}

	p, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.State())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if !quantityInRange(w, req.Quantity, cart.MinLineQuantity) {
		return
	}

	p, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}

	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	state, err := c.AddItem(r.Context(), p, req.Quantity)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_quantity", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateQuantity sets a line's quantity; 0 removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !quantityInRange(w, req.Quantity, 0) {
		return
	}

	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.UpdateQuantity(r.Context(), id, req.Quantity))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.RemoveItem(r.Context(), id))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Clear(r.Context()))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var info forms.CustomerInfo
	if !decodeJSON(w, r, &info) {
		return
	}
	c, ok := h.cart(w, r)
	if !ok {
		return
	}

	res := c.Checkout(r.Context(), info)
	if res.Success {
		slog.InfoContext(r.Context(), "order placed", "order_id", res.OrderID, "session", c.Session())
		writeJSON(w, http.StatusCreated, CheckoutResponse{Success: true, OrderID: res.OrderID})
		return
	}

	status := http.StatusBadGateway
	switch res.Reason {
	case cart.ReasonInvalid:
		status = http.StatusUnprocessableEntity
	case cart.ReasonCartEmpty:
		status = http.StatusConflict
	}
	writeJSON(w, status, ErrorResponse{Error: string(res.Reason), Message: res.Error, Fields: res.Fields})
}

func (h *Handler) ServiceTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, forms.ServiceTypes)
}

func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req forms.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.forms.SubmitBooking(r.Context(), req); err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SubmittedResponse{
		Success: true,
		Message: "Booking request submitted successfully! We'll contact you soon to confirm.",
	})
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req forms.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.forms.SubmitFeedback(r.Context(), req); err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SubmittedResponse{
		Success: true,
		Message: "Thank you for your feedback!",
	})
}

func (h *Handler) local(w http.ResponseWriter, r *http.Request) (ports.LocalStore, bool) {
	local := middlewares.LocalStore(r.Context())
	if local == nil {
		writeError(w, http.StatusInternalServerError, "no_scope", "browser scope not resolved")
		return nil, false
	}
	return local, true
}

// cart loads the caller's cart. Remote mirror failures during the request
// are surfaced through SyncHeader.
func (h *Handler) cart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	local, ok := h.local(w, r)
	if !ok {
		return nil, false
	}

	token := session.GetOrCreate(r.Context(), local)
	c := cart.NewStore(token, local, h.remote,
		cart.WithJournal(h.journal),
		cart.WithSyncObserver(func(ev cart.SyncEvent) {
			if ev.Err != nil {
				w.Header().Set(SyncHeader, "failed")
			}
		}),
	)
	c.Load(r.Context())
	return c, true
}

func productIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return 0, false
	}
	return id, true
}

func quantityInRange(w http.ResponseWriter, qty, lowest int) bool {
	if qty >= lowest && qty <= cart.MaxLineQuantity {
		return true
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "invalid_quantity",
		Message: "Quantity must be between " + strconv.Itoa(cart.MinLineQuantity) + " and " + strconv.Itoa(cart.MaxLineQuantity),
		Fields:  []forms.FieldError{{Field: "quantity", Code: forms.CodeRange}},
	})
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeFormError(w http.ResponseWriter, err error) {
	var verr *forms.ValidationError
	var serr *forms.SubmitError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid_input",
			Message: verr.Message(),
			Fields:  verr.Fields,
		})
	case errors.As(err, &serr):
		writeError(w, http.StatusBadGateway, "submit_failed", serr.Message)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
