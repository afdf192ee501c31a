package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront/internal/coordinator/journal"
)

// Step is a single unit of work in a multi-write operation.
// Compensate undoes Execute's effects as far as the backend allows.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs Steps in order and compensates completed ones on failure.
type Orchestrator struct {
	runID   string
	payload string
	steps   []Step
	journal journal.Repository // nil: transitions are not recorded
}

func NewOrchestrator(runID, payload string, steps []Step, repo journal.Repository) *Orchestrator {
	return &Orchestrator{
		runID:   runID,
		payload: payload,
		steps:   steps,
		journal: repo,
	}
}

// Start runs the steps sequentially. If a step fails, every previously
// successful step is compensated in reverse order and the step error is
// returned. Compensation and journal writes ignore cancellation of ctx: a
// run that has begun writing is always either finished or undone.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, journal.StatusStarted, "", o.payload, nil)

	var done []Step
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing step", "run_id", o.runID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			err = fmt.Errorf("%s: %w", step.Name(), err)
			slog.WarnContext(ctx, "step failed, compensating", "run_id", o.runID, "step", step.Name(), "error", err)

			msgs := []string{err.Error()}
			o.record(ctx, journal.StatusCompensating, step.Name(), "", msgs)
			msgs = append(msgs, o.rollback(ctx, done)...)
			o.record(ctx, journal.StatusFailed, step.Name(), "", msgs)
			return err
		}
		done = append(done, step)
		o.record(ctx, journal.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, journal.StatusCompleted, "", "", nil)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	ctx = context.WithoutCancel(ctx)
	var failures []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate step",
				"run_id", o.runID,
				"step", step.Name(),
				"error", err,
			)
			failures = append(failures, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
	return failures
}

func (o *Orchestrator) record(ctx context.Context, status journal.Status, step, payload string, errs []string) {
	if o.journal == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := o.journal.Save(ctx, o.entry(ctx, status, step, payload, errs)); err != nil {
		slog.WarnContext(ctx, "failed to write checkout journal", "run_id", o.runID, "status", status, "error", err)
	}
}

// entry snapshots the run for the journal, stamped with the span active in
// ctx so an operator can jump from a failed checkout to its trace.
func (o *Orchestrator) entry(ctx context.Context, status journal.Status, step, payload string, errs []string) *journal.Entry {
	e := &journal.Entry{
		RunID:         o.runID,
		Status:        status,
		CurrentStep:   step,
		Payload:       payload,
		ErrorMessages: "[]",
		UpdatedAt:     time.Now().UTC(),
	}
	if len(errs) > 0 {
		if b, err := json.Marshal(errs); err == nil {
			e.ErrorMessages = string(b)
		}
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		e.TraceID = sc.TraceID().String()
		e.SpanID = sc.SpanID().String()
	}
	return e
}
