package ports

import "context"

// Keys held in a browser's local store.
const (
	KeySession   = "user_session"
	KeyCartItems = "cart_items"
)

// LocalStore is one browser's persistent key/value scope. Presence of a key is
// meaningful on its own, so Get reports it separately from the value.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
