package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

// Table names shared by every RemoteStore adapter.
const (
	TableProducts   = "products"
	TableCartItems  = "cart_items"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TableBookings   = "bookings"
	TableFeedback   = "feedback"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// CartRepository mirrors cart lines scoped by session token. Rows are unique
// by (product id, session).
type CartRepository interface {
	ListCartLines(ctx context.Context, session string) ([]entity.CartLine, error)
	UpsertCartLine(ctx context.Context, session string, productID int64, quantity int) error
	UpdateCartLineQuantity(ctx context.Context, session string, productID int64, quantity int) error
	DeleteCartLine(ctx context.Context, session string, productID int64) error
	DeleteCart(ctx context.Context, session string) error
}

type OrderRepository interface {
	// InsertOrder stores the order row and returns its identifier.
	InsertOrder(ctx context.Context, order *entity.Order) (int64, error)
	InsertOrderLines(ctx context.Context, lines []entity.OrderLine) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status entity.Status) error
}

type BookingRepository interface {
	InsertBooking(ctx context.Context, booking *entity.Booking) error
}

type FeedbackRepository interface {
	InsertFeedback(ctx context.Context, feedback *entity.Feedback) error
}

// RemoteStore is the hosted backend seen as a set of tables.
type RemoteStore interface {
	ProductRepository
	CartRepository
	OrderRepository
	BookingRepository
	FeedbackRepository

	Ping(ctx context.Context) error
}
