package journal

import "context"

// Repository persists journal entries. Every Save appends a row.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}
