package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/mystore/internal/checkout/auditlog"
)

// Step represents a single unit of work in the checkout pipeline. Each step
// must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs the checkout steps sequentially. If a step fails, it
// triggers the compensation of all previously successful steps in LIFO
// order, writing every transition to the audit log.
type Orchestrator struct {
	id    string
	steps []Step
	log   auditlog.Repository // nil-safe: audit skipped if nil
	errs  []string
}

func NewOrchestrator(id string, steps []Step, log auditlog.Repository) *Orchestrator {
	return &Orchestrator{id: id, steps: steps, log: log}
}

// Start runs the steps. The payload is recorded once on the STARTED entry so
// a run can be reconstructed from the log.
func (o *Orchestrator) Start(ctx context.Context, payload string) error {
	o.record(ctx, auditlog.StatusStarted, "", payload)

	var completed []Step
	for _, step := range o.steps {
		slog.InfoContext(ctx, "executing checkout step", "checkout_id", o.id, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "checkout step failed, rolling back",
				"checkout_id", o.id, "step", step.Name(), "error", err)
			o.errs = append(o.errs, fmt.Sprintf("step %s failed: %v", step.Name(), err))
			o.record(ctx, auditlog.StatusCompensating, step.Name(), "")
			o.rollback(ctx, completed)
			o.record(ctx, auditlog.StatusFailed, step.Name(), "")
			return err
		}
		completed = append(completed, step)
		o.record(ctx, auditlog.StatusStepDone, step.Name(), "")
	}

	o.record(ctx, auditlog.StatusCompleted, "", "")
	slog.InfoContext(ctx, "checkout completed", "checkout_id", o.id)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating checkout step", "checkout_id", o.id, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			// A failed compensation leaves state behind; log loudly, the
			// audit trail has the full history.
			slog.ErrorContext(ctx, "failed to compensate checkout step",
				"checkout_id", o.id, "step", step.Name(), "error", err)
			o.errs = append(o.errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
}

func (o *Orchestrator) record(ctx context.Context, status auditlog.Status, step, payload string) {
	if o.log == nil {
		return
	}
	entry := auditlog.NewEntry(ctx, o.id, status, step, payload, o.errs)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to write checkout audit entry",
			"checkout_id", o.id, "status", string(status), "error", err)
	}
}
