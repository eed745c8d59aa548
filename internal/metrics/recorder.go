package metrics

import "time"

// Outcome enumerates emit result categories for counters.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Recorder defines observability hooks for a single emit run.
type Recorder interface {
	ObserveEmitDuration(d time.Duration)
	IncEmitOutcome(outcome Outcome)
	SetDocumentBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveEmitDuration(time.Duration) {}
func (NoopRecorder) IncEmitOutcome(Outcome)            {}
func (NoopRecorder) SetDocumentBytes(int)              {}
