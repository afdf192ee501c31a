// Package journal defines the append-only record of checkout runs.
//
// Each row is a point-in-time snapshot of one run: which step just executed,
// whether the run completed or is compensating, and the trace it belongs to.
// Operators use it to find orders left half-written by a failed checkout.
package journal

import "time"

// Status is the lifecycle state of a run at the time an entry was written.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row in the checkout_journal table.
type Entry struct {
	// RunID identifies one checkout attempt.
	RunID string

	Status Status

	// CurrentStep is the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON input of the run, written once on STARTED.
	Payload string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	// TraceID and SpanID come from the OpenTelemetry span active when the
	// entry was written; both are empty when tracing is off.
	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
