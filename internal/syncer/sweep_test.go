package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_AttachesIdleSlotGuideToGuidelessGroup(t *testing.T) {
	// Alex sits in slot 1 but no group points at him.
	store := newFakeStore(versaillesTour(), testGuides())
	orch, _, _, _ := newTestOrchestrator(store)

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))

	require.Len(t, store.assignments, 1)
	assert.Equal(t, "g1", store.assignments[0].groupID, "first guideless group wins")
	assert.Equal(t, "uuid-A", *store.assignments[0].guideID)
	assert.Equal(t, "Group 1 - Alex", store.assignments[0].name)
}

func TestSweep_BackfillsGroupGuideIntoEmptySlot(t *testing.T) {
	tour := versaillesTour()
	tour.Guide1 = ""
	tour.Guide1ID = nil
	tour.Groups[0].GuideID = strptr("uuid-B")
	store := newFakeStore(tour, testGuides())
	orch, _, _, _ := newTestOrchestrator(store)

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))

	require.NotNil(t, store.slotIDs)
	require.NotNil(t, store.slotIDs[0])
	assert.Equal(t, "uuid-B", *store.slotIDs[0])
	assert.Equal(t, "Ben", store.slotNames[0])
	assert.Empty(t, store.assignments, "no group assignment needed")
}

func TestSweep_BothDirectionsAtOnce(t *testing.T) {
	// Slot 1 holds Alex (unassigned); g2 holds Ben (not in any slot).
	tour := versaillesTour()
	tour.Groups[1].GuideID = strptr("uuid-B")
	store := newFakeStore(tour, testGuides())
	orch, _, _, _ := newTestOrchestrator(store)

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))

	require.Len(t, store.assignments, 1)
	assert.Equal(t, "g1", store.assignments[0].groupID)
	assert.Equal(t, "uuid-A", *store.assignments[0].guideID)

	require.NotNil(t, store.slotIDs)
	require.NotNil(t, store.slotIDs[1])
	assert.Equal(t, "uuid-B", *store.slotIDs[1], "backfilled into the first empty slot")
	// Slot 1 keeps Alex.
	require.NotNil(t, store.slotIDs[0])
	assert.Equal(t, "uuid-A", *store.slotIDs[0])
}

func TestSweep_Idempotent(t *testing.T) {
	store := newFakeStore(versaillesTour(), testGuides())
	orch, _, _, _ := newTestOrchestrator(store)

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))
	firstAssignments := len(store.assignments)
	firstSlotWrites := store.slotIDs

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))
	assert.Equal(t, firstAssignments, len(store.assignments), "second sweep writes nothing")
	assert.Equal(t, firstSlotWrites, store.slotIDs)
}

func TestSweep_ConsistentTourUntouched(t *testing.T) {
	tour := versaillesTour()
	tour.Groups[0].GuideID = strptr("uuid-A") // Alex assigned and slotted
	store := newFakeStore(tour, testGuides())
	orch, _, _, _ := newTestOrchestrator(store)

	require.NoError(t, orch.SweepGuideConsistency(context.Background(), "tour-1"))
	assert.Empty(t, store.assignments)
	assert.Nil(t, store.slotIDs)
}
