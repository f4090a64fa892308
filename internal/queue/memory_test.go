package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic_RoundTrip(t *testing.T) {
	ev := NewEvent(CategoryGuideChange, "tour-1", map[string]string{"group_id": "g1"})
	assert.Equal(t, "guide-change:tour-1", ev.Topic())

	cat, tourID := SplitTopic(ev.Topic())
	assert.Equal(t, CategoryGuideChange, cat)
	assert.Equal(t, "tour-1", tourID)

	cat, tourID = SplitTopic("bare")
	assert.Equal(t, "bare", cat)
	assert.Empty(t, tourID)
}

func TestMemoryBus_DeliversByCategory(t *testing.T) {
	b := NewMemoryBus()

	var guideEvents, participantEvents []Event
	_, err := b.Subscribe(CategoryGuideChange, func(ev Event) { guideEvents = append(guideEvents, ev) })
	require.NoError(t, err)
	_, err = b.Subscribe(CategoryParticipantChange, func(ev Event) { participantEvents = append(participantEvents, ev) })
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), NewEvent(CategoryGuideChange, "tour-1", nil)))
	require.NoError(t, b.Publish(context.Background(), NewEvent(CategoryGuideChange, "tour-2", nil)))

	assert.Len(t, guideEvents, 2)
	assert.Empty(t, participantEvents)
	assert.Equal(t, "tour-1", guideEvents[0].TourID)
}

func TestMemoryBus_Cancel(t *testing.T) {
	b := NewMemoryBus()

	calls := 0
	cancel, err := b.Subscribe(CategoryTicketRequirements, func(Event) { calls++ })
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), NewEvent(CategoryTicketRequirements, "tour-1", nil)))
	cancel()
	require.NoError(t, b.Publish(context.Background(), NewEvent(CategoryTicketRequirements, "tour-1", nil)))

	assert.Equal(t, 1, calls)
}
