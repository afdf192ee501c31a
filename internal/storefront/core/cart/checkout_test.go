package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/core/cart"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/forms"
)

var customer = forms.CustomerInfo{Name: "Ada Obi", Email: "ada@example.com", Phone: "0800"}

type memJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (m *memJournal) Save(_ context.Context, e *journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memJournal) statuses() []journal.Status {
	out := make([]journal.Status, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Status
	}
	return out
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()
	s, backend, _ := newStore(t)

	res := s.Checkout(context.Background(), customer)
	assert.False(t, res.Success)
	assert.Equal(t, cart.ReasonCartEmpty, res.Reason)
	assert.Equal(t, "Cart is empty", res.Error)
	assert.Empty(t, backend.Calls())
}

func TestCheckoutInvalidCustomer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, backend, _ := newStore(t)
	_, _ = s.AddItem(ctx, phone, 1)
	callsBefore := len(backend.Calls())

	res := s.Checkout(ctx, forms.CustomerInfo{Name: "Ada"})
	assert.False(t, res.Success)
	assert.Equal(t, cart.ReasonInvalid, res.Reason)
	assert.Equal(t, "Please fill in all required fields", res.Error)
	assert.Contains(t, res.Fields, forms.FieldError{Field: "email", Code: forms.CodeRequired})
	assert.Contains(t, res.Fields, forms.FieldError{Field: "phone", Code: forms.CodeRequired})
	assert.Len(t, backend.Calls(), callsBefore)
	assert.Len(t, s.State().Items, 1)
}

func TestCheckoutSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := newFakeBackend()
	j := &memJournal{}
	s := cart.NewStore("session_1_abc", cache.NewMemoryCache().Scope("b"), backend, cart.WithJournal(j))

	_, err := s.AddItem(ctx, phone, 1)
	require.NoError(t, err)

	res := s.Checkout(ctx, customer)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, int64(42), res.OrderID)

	assert.Empty(t, s.State().Items)
	assert.Zero(t, s.State().ItemCount)

	require.Len(t, backend.orders, 1)
	order := backend.orders[0]
	assert.Equal(t, "session_1_abc", order.Session)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("899.99")))
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, "Ada Obi", order.CustomerName)

	require.Len(t, backend.lines, 1)
	assert.Equal(t, entity.OrderLine{OrderID: 42, ProductID: 1, Quantity: 1, Price: phone.Price}, backend.lines[0])

	assert.Equal(t, []string{"upsert", "insert_order", "insert_order_lines", "clear"}, backend.Calls())
	assert.Equal(t, []journal.Status{
		journal.StatusStarted,
		journal.StatusStepDone,
		journal.StatusStepDone,
		journal.StatusCompleted,
	}, j.statuses())
	assert.True(t, json.Valid([]byte(j.entries[0].Payload)))
	assert.Contains(t, j.entries[0].Payload, `"session":"session_1_abc"`)
}

func TestCheckoutUsesCartPrices(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, backend, _ := newStore(t)

	stale := phone
	stale.Price = decimal.RequireFromString("799.00")
	_, _ = s.AddItem(ctx, stale, 2)

	res := s.Checkout(ctx, customer)
	require.True(t, res.Success)
	assert.True(t, backend.lines[0].Price.Equal(decimal.RequireFromString("799.00")))
	assert.True(t, backend.orders[0].TotalAmount.Equal(decimal.RequireFromString("1598.00")))
}

func TestCheckoutOrderInsertFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, backend, _ := newStore(t)
	backend.orderErr = errors.New(`new row violates row-level security policy for table "orders"`)
	_, _ = s.AddItem(ctx, phone, 1)

	res := s.Checkout(ctx, customer)
	assert.False(t, res.Success)
	assert.Equal(t, cart.ReasonRemote, res.Reason)
	assert.Contains(t, res.Error, "row-level security")
	assert.Len(t, s.State().Items, 1, "cart is kept for another attempt")
	assert.NotContains(t, backend.Calls(), "insert_order_lines")
}

func TestCheckoutLineInsertFailsCancelsOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := newFakeBackend()
	backend.linesErr = errors.New("insert or update on table \"order_items\" violates foreign key constraint")
	j := &memJournal{}
	s := cart.NewStore("s", cache.NewMemoryCache().Scope("b"), backend, cart.WithJournal(j))
	_, _ = s.AddItem(ctx, book, 1)

	res := s.Checkout(ctx, customer)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "foreign key")
	assert.Equal(t, entity.StatusCancelled, backend.statuses[42])
	assert.Len(t, s.State().Items, 1)
	assert.Equal(t, journal.StatusFailed, j.entries[len(j.entries)-1].Status)
}

func TestCheckoutCompensationFailureStillReportsStepError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := newFakeBackend()
	backend.linesErr = errors.New("lines down")
	backend.statusErr = errors.New("status down")
	j := &memJournal{}
	s := cart.NewStore("s", cache.NewMemoryCache().Scope("b"), backend, cart.WithJournal(j))
	_, _ = s.AddItem(ctx, book, 1)

	res := s.Checkout(ctx, customer)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "lines down")

	last := j.entries[len(j.entries)-1]
	assert.Contains(t, last.ErrorMessages, "compensation of insert_order failed")
}

// disconnectingBackend cancels the request context as soon as the order row
// is written and rejects later calls on a done context.
type disconnectingBackend struct {
	*fakeBackend
	cancel context.CancelFunc
}

func (b *disconnectingBackend) InsertOrder(ctx context.Context, o *entity.Order) (int64, error) {
	id, err := b.fakeBackend.InsertOrder(ctx, o)
	b.cancel()
	return id, err
}

func (b *disconnectingBackend) InsertOrderLines(ctx context.Context, lines []entity.OrderLine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.fakeBackend.InsertOrderLines(ctx, lines)
}

func (b *disconnectingBackend) UpdateOrderStatus(ctx context.Context, id int64, status entity.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.fakeBackend.UpdateOrderStatus(ctx, id, status)
}

func TestCheckoutSurvivesClientDisconnect(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := &disconnectingBackend{fakeBackend: newFakeBackend(), cancel: cancel}
	j := &memJournal{}
	s := cart.NewStore("s", cache.NewMemoryCache().Scope("b"), backend, cart.WithJournal(j))
	_, _ = s.AddItem(ctx, book, 1)

	res := s.Checkout(ctx, customer)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, int64(42), res.OrderID)
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	require.Len(t, backend.lines, 1)
	assert.Equal(t, int64(42), backend.lines[0].OrderID)
	assert.Empty(t, backend.statuses, "the order is complete, nothing to cancel")
	assert.Equal(t, journal.StatusCompleted, j.entries[len(j.entries)-1].Status)
	assert.Empty(t, s.State().Items)
}
