package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tour-operations/internal/queue"
)

func (f *fakeStore) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

func TestResyncer_CollapsesEventBursts(t *testing.T) {
	tour := versaillesTour()
	tour.Groups[0].GuideID = strptr("uuid-A") // consistent: sweep is a no-op
	store := newFakeStore(tour, testGuides())
	orch, _, bus, _ := newTestOrchestrator(store)

	r := NewResyncer(orch, 20*time.Millisecond)
	stop, err := r.Start(bus)
	require.NoError(t, err)
	defer stop()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(ctx, queue.NewEvent(queue.CategoryGuideChange, "tour-1", nil)))
	}
	require.NoError(t, bus.Publish(ctx, queue.NewEvent(queue.CategoryParticipantChange, "tour-1", nil)))

	require.Eventually(t, func() bool { return store.upsertCount() == 1 },
		time.Second, 5*time.Millisecond, "burst collapses into a single re-sync")

	// Quiet period over: a new event schedules a fresh re-sync.
	require.NoError(t, bus.Publish(ctx, queue.NewEvent(queue.CategoryGuideChange, "tour-1", nil)))
	require.Eventually(t, func() bool { return store.upsertCount() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestResyncer_TracksToursIndependently(t *testing.T) {
	tour := versaillesTour()
	tour.Groups[0].GuideID = strptr("uuid-A")
	store := newFakeStore(tour, testGuides())
	orch, _, bus, _ := newTestOrchestrator(store)

	r := NewResyncer(orch, 20*time.Millisecond)
	stop, err := r.Start(bus)
	require.NoError(t, err)
	defer stop()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, queue.NewEvent(queue.CategoryGuideChange, "tour-1", nil)))
	// Unknown tour: the re-sync runs, fails against the store and is
	// only logged.  It must not disturb the known tour's schedule.
	require.NoError(t, bus.Publish(ctx, queue.NewEvent(queue.CategoryGuideChange, "tour-ghost", nil)))

	require.Eventually(t, func() bool { return store.upsertCount() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestResyncer_StopCancelsSubscriptions(t *testing.T) {
	tour := versaillesTour()
	tour.Groups[0].GuideID = strptr("uuid-A")
	store := newFakeStore(tour, testGuides())
	orch, _, bus, _ := newTestOrchestrator(store)

	r := NewResyncer(orch, 20*time.Millisecond)
	stop, err := r.Start(bus)
	require.NoError(t, err)
	stop()

	require.NoError(t, bus.Publish(context.Background(), queue.NewEvent(queue.CategoryGuideChange, "tour-1", nil)))
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, store.upsertCount(), "no re-sync after stop")
}

func TestNewResyncer_ClampsWindow(t *testing.T) {
	orchStore := newFakeStore(versaillesTour(), testGuides())
	orch, _, _, _ := newTestOrchestrator(orchStore)

	assert.Equal(t, 2*time.Second, NewResyncer(orch, 0).debounce)
	assert.Equal(t, 5*time.Second, NewResyncer(orch, time.Minute).debounce)
	assert.Equal(t, 50*time.Millisecond, NewResyncer(orch, 50*time.Millisecond).debounce)
}
