package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/tour-operations/internal/queue"
)

// Resyncer listens for guide and participant change notifications
// and re-runs the consistency sweep and ticket recompute for the
// affected tour after a damping window.  Bursts of events for the
// same tour collapse into one re-sync; both operations are
// idempotent so duplicate delivery is harmless.
type Resyncer struct {
	orch     *Orchestrator
	debounce time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	pending map[string]bool
}

// NewResyncer returns a Resyncer with the given damping window.
// Non-positive windows fall back to 2s; anything above 5s is capped.
func NewResyncer(orch *Orchestrator, debounce time.Duration) *Resyncer {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if debounce > 5*time.Second {
		debounce = 5 * time.Second
	}
	return &Resyncer{
		orch:     orch,
		debounce: debounce,
		timeout:  30 * time.Second,
		pending:  make(map[string]bool),
	}
}

// Start subscribes to guide-change and participant-change events.
// The returned stop function cancels both subscriptions.
func (r *Resyncer) Start(bus queue.Bus) (func(), error) {
	handler := func(ev queue.Event) { r.schedule(ev.TourID) }

	cancelGuide, err := bus.Subscribe(queue.CategoryGuideChange, handler)
	if err != nil {
		return nil, err
	}
	cancelParticipant, err := bus.Subscribe(queue.CategoryParticipantChange, handler)
	if err != nil {
		cancelGuide()
		return nil, err
	}
	return func() {
		cancelGuide()
		cancelParticipant()
	}, nil
}

// schedule arms a one-shot re-sync for the tour unless one is
// already pending.
func (r *Resyncer) schedule(tourID string) {
	if tourID == "" {
		return
	}
	r.mu.Lock()
	if r.pending[tourID] {
		r.mu.Unlock()
		return
	}
	r.pending[tourID] = true
	r.mu.Unlock()

	time.AfterFunc(r.debounce, func() {
		r.mu.Lock()
		delete(r.pending, tourID)
		r.mu.Unlock()
		r.resync(tourID)
	})
}

// resync runs the sweep and ticket recompute.  Failures are logged;
// the next change notification gets another chance.
func (r *Resyncer) resync(tourID string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.orch.SweepGuideConsistency(ctx, tourID); err != nil {
		log.Printf("resync: sweep for tour %s failed: %v", tourID, err)
	}
	if _, err := r.orch.RecalculateTickets(ctx, tourID); err != nil {
		log.Printf("resync: ticket recompute for tour %s failed: %v", tourID, err)
	}
}
