// Package auditlog defines the domain types for the checkout audit trail.
//
// The audit log is a durable record of every state transition a checkout run
// goes through. It serves two purposes:
//
//  1. Observability: you can query the DB to see exactly where a checkout is
//     (or was) and correlate it with a distributed trace via the trace_id
//     field.
//
//  2. Support: a declined or half-finished checkout can be reconstructed
//     after the fact from its transition history.
package auditlog

import "time"

// Status represents the lifecycle state of a checkout run.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row in the checkout_logs table: a point-in-time snapshot
// of a checkout run.
type Entry struct {
	// CheckoutID identifies the run. It is the order ID so the log can be
	// joined with business data.
	CheckoutID string

	// Status is the lifecycle state at the time this entry was written.
	Status Status

	// CurrentStep is the name of the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON-serialised input that started the run. Stored once
	// at creation.
	Payload string

	// ErrorMessages accumulates failure details, one per failed step, stored
	// as a JSON array.
	ErrorMessages string

	// TraceID is the W3C trace ID extracted from the OpenTelemetry span that
	// was active when this entry was written.
	TraceID string

	// SpanID pinpoints the exact span within the trace.
	SpanID string

	// UpdatedAt is the wall-clock time of this entry.
	UpdatedAt time.Time
}
