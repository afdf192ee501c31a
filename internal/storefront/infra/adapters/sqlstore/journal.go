package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
)

var _ journal.Repository = (*Store)(nil)

// Save appends a journal entry. Safe for concurrent use.
func (s *Store) Save(ctx context.Context, entry *journal.Entry) error {
	const q = `
		INSERT INTO checkout_journal
			(run_id, status, current_step, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	errs := entry.ErrorMessages
	if errs == "" {
		errs = "[]"
	}

	_, err := s.exec(ctx, q,
		entry.RunID,
		string(entry.Status),
		entry.CurrentStep,
		nullableString(entry.Payload),
		errs,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: save journal entry for %q: %w", entry.RunID, err)
	}
	return nil
}

// GetLatest returns the most recent journal entry of a checkout run.
func (s *Store) GetLatest(ctx context.Context, runID string) (*journal.Entry, error) {
	const q = `
		SELECT run_id, status, current_step, COALESCE(payload, ''), error_messages,
		       trace_id, span_id, updated_at
		FROM   checkout_journal
		WHERE  run_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	var (
		entry     journal.Entry
		updatedAt string
	)
	err := s.queryRow(ctx, q, runID).Scan(
		&entry.RunID,
		&entry.Status,
		&entry.CurrentStep,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlstore: checkout run %q: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get latest for %q: %w", runID, err)
	}

	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
