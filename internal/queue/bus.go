package queue

import "context"

// Handler consumes a delivered event.  Handlers must tolerate
// duplicate delivery; every subscriber in this codebase is an
// idempotent re-sync.
type Handler func(Event)

// Bus is the injected notification channel.  The orchestrator and
// the HTTP layer receive a Bus at construction time instead of
// reaching for a process-wide singleton, so tests substitute the
// synchronous in-memory implementation.
type Bus interface {
	// Publish sends an event.  Publish failures are reported to the
	// caller but are generally non-fatal to the triggering write.
	Publish(ctx context.Context, ev Event) error
	// Subscribe registers a handler for every event of a category
	// (all tours).  The returned cancel function removes the
	// subscription.
	Subscribe(category string, h Handler) (cancel func(), err error)
	// Close releases broker resources.
	Close() error
}
