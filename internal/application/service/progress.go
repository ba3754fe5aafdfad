package service

import "context"

// ProgressStore keeps the aggregate counters the worker derives from profile
// events.
type ProgressStore interface {
	IncrementEvent(ctx context.Context, eventType ProfileEventType) error
	// SwapCompleteness stores pct for the session and returns the previous
	// value. found is false when the session had no value yet.
	SwapCompleteness(ctx context.Context, sessionID string, pct int) (prev int, found bool, err error)
	IncrementCompleted(ctx context.Context) error
}
