// Package cart holds the shopping cart of one browser session.
//
// Local state is authoritative. Every mutation is a two-phase update: the
// change is committed to memory and the local store first, then mirrored to
// the remote store on a best-effort basis. A failed mirror is logged and
// reported to the sync observer but never undoes the local change, so local
// and remote carts can drift apart.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

// Bounds the storefront UI offers for a line quantity. The store itself only
// enforces the structural minimum in AddItem.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// Backend is the part of the remote store the cart talks to.
type Backend interface {
	ports.CartRepository
	ports.OrderRepository
}

// State is a snapshot of the cart. Total and ItemCount are always derived
// from Items.
type State struct {
	Items     []entity.CartLine `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}

// SyncOp names the remote call a mutation mirrored to.
type SyncOp string

const (
	SyncUpsert SyncOp = "upsert"
	SyncUpdate SyncOp = "update"
	SyncDelete SyncOp = "delete"
	SyncClear  SyncOp = "clear"
)

// SyncEvent describes the outcome of one remote mirror attempt.
type SyncEvent struct {
	Op        SyncOp
	Session   string
	ProductID int64
	Quantity  int
	Err       error
}

// Store is one browser's cart. The local store is authoritative: every
// mutation is committed there first and mirrored to the remote backend on a
// best-effort basis. A Store is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	session  string
	local    ports.LocalStore
	remote   Backend
	journal  journal.Repository
	observer func(SyncEvent)

	items     []entity.CartLine
	total     decimal.Decimal
	itemCount int
}

// Option configures a Store at construction.
type Option func(*Store)

// WithJournal records checkout step transitions in repo.
func WithJournal(repo journal.Repository) Option {
	return func(s *Store) { s.journal = repo }
}

// WithSyncObserver is called after every remote mirror attempt, successful
// or not.
func WithSyncObserver(fn func(SyncEvent)) Option {
	return func(s *Store) { s.observer = fn }
}

// NewStore returns an empty cart for session. Call Load to restore the last
// known contents.
func NewStore(session string, local ports.LocalStore, remote Backend, opts ...Option) *Store {
	s := &Store{
		session: session,
		local:   local,
		remote:  remote,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Session() string { return s.session }

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Load restores the cart. A cached line list wins outright; the remote store
// is only consulted when the cache has no entry. Remote failures, including a
// missing table, leave the cart empty and are not returned. When the cache
// cannot be read at all, the remote lines are shown but never written back,
// so the cached entry survives the failed read.
func (s *Store) Load(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.local.Get(ctx, ports.KeyCartItems)
	if err != nil {
		slog.WarnContext(ctx, "failed to read cached cart, falling back to remote", "session", s.session, "error", err)
		s.setItems(s.fetchRemote(ctx))
		return s.snapshot()
	}
	if ok {
		var items []entity.CartLine
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			slog.WarnContext(ctx, "cached cart is unreadable, starting empty", "session", s.session, "error", err)
			items = nil
		}
		s.setItems(items)
		return s.snapshot()
	}

	s.setItems(s.fetchRemote(ctx))
	s.persist(ctx)
	return s.snapshot()
}

func (s *Store) fetchRemote(ctx context.Context) []entity.CartLine {
	items, err := s.remote.ListCartLines(ctx, s.session)
	if err != nil {
		slog.WarnContext(ctx, "failed to load cart from remote store", "session", s.session, "error", err)
		return nil
	}
	return items
}

// AddItem merges quantity into the product's line, appending a new line when
// the product is not in the cart yet.
func (s *Store) AddItem(ctx context.Context, product entity.Product, quantity int) (State, error) {
	if quantity < MinLineQuantity {
		return s.State(), ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newQty := quantity
	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity += quantity
		newQty = s.items[i].Quantity
	} else {
		s.items = append(s.items, entity.CartLine{Product: product, Quantity: quantity})
	}
	s.commit(ctx)

	s.sync(ctx, SyncEvent{Op: SyncUpsert, ProductID: product.ID, Quantity: newQty}, func() error {
		return s.remote.UpsertCartLine(ctx, s.session, product.ID, newQty)
	})
	return s.snapshot(), nil
}

// UpdateQuantity sets a line's quantity. Zero or negative quantities remove
// the line. No upper bound is applied here.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.items[i].Quantity = quantity
	}
	s.commit(ctx)

	s.sync(ctx, SyncEvent{Op: SyncUpdate, ProductID: productID, Quantity: quantity}, func() error {
		return s.remote.UpdateCartLineQuantity(ctx, s.session, productID, quantity)
	})
	return s.snapshot()
}

// RemoveItem drops the product's line. Removing an absent product leaves the
// state unchanged.
func (s *Store) RemoveItem(ctx context.Context, productID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(l entity.CartLine) bool { return l.ID == productID })
	s.commit(ctx)

	s.sync(ctx, SyncEvent{Op: SyncDelete, ProductID: productID}, func() error {
		return s.remote.DeleteCartLine(ctx, s.session, productID)
	})
	return s.snapshot()
}

func (s *Store) Clear(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked(ctx)
	return s.snapshot()
}

func (s *Store) clearLocked(ctx context.Context) {
	s.items = nil
	s.commit(ctx)

	s.sync(ctx, SyncEvent{Op: SyncClear}, func() error {
		return s.remote.DeleteCart(ctx, s.session)
	})
}

// commit is phase one: recompute derived totals and write the cache.
func (s *Store) commit(ctx context.Context) {
	s.recompute()
	s.persist(ctx)
}

// sync is phase two: mirror to the remote store. The outcome is only
// observed, never acted upon.
func (s *Store) sync(ctx context.Context, ev SyncEvent, call func() error) {
	ev.Session = s.session
	ev.Err = call()
	if ev.Err != nil {
		slog.WarnContext(ctx, "failed to sync cart with remote store",
			"session", s.session,
			"op", ev.Op,
			"product_id", ev.ProductID,
			"error", ev.Err,
		)
	}
	if s.observer != nil {
		s.observer(ev)
	}
}

func (s *Store) persist(ctx context.Context) {
	if len(s.items) == 0 {
		if err := s.local.Remove(ctx, ports.KeyCartItems); err != nil {
			slog.WarnContext(ctx, "failed to drop cached cart", "session", s.session, "error", err)
		}
		return
	}

	b, err := json.Marshal(s.items)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode cart", "session", s.session, "error", err)
		return
	}
	if err := s.local.Set(ctx, ports.KeyCartItems, string(b)); err != nil {
		slog.WarnContext(ctx, "failed to cache cart", "session", s.session, "error", err)
	}
}

func (s *Store) setItems(items []entity.CartLine) {
	s.items = items
	s.recompute()
}

func (s *Store) recompute() {
	total := decimal.Zero
	count := 0
	for _, l := range s.items {
		total = total.Add(l.Subtotal())
		count += l.Quantity
	}
	s.total = total
	s.itemCount = count
}

func (s *Store) indexOf(productID int64) int {
	return slices.IndexFunc(s.items, func(l entity.CartLine) bool { return l.ID == productID })
}

func (s *Store) snapshot() State {
	items := make([]entity.CartLine, len(s.items))
	copy(items, s.items)
	return State{
		Items:     items,
		Total:     s.total,
		ItemCount: s.itemCount,
	}
}
