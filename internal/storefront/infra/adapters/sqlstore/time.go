package sqlstore

import (
	"fmt"
	"time"
)

// timeLayout keeps a fixed-width fraction so that SQLite, which compares the
// text, orders timestamps the same way the clock does.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the RFC3339 text written by formatTime as well as the
// value Postgres returns for TIMESTAMPTZ columns once scanned into a string.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlstore: parse time %q: %w", s, err)
	}
	return t, nil
}
