package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tour-operations/internal/model"
)

func strptr(s string) *string { return &s }

func cachedTour() model.Tour {
	return model.Tour{
		ID: "tour-1",
		Groups: []model.Group{
			{
				ID:   "g1",
				Name: "Group 1",
				Size: 3,
				Participants: []model.Participant{
					{ID: "p1", Count: 1},
					{ID: "p2", Count: 1},
					{ID: "p3", Count: 1},
				},
			},
			{ID: "g2", Name: "Group 2", Size: 4},
		},
	}
}

func TestMergeGroups_PreservesParticipantsOnAbsentList(t *testing.T) {
	update := []model.Group{{ID: "g1", Name: "Group 1 - Alex", GuideID: strptr("uuid-A"), Size: 3}}
	merged := MergeGroups(cachedTour(), update)

	require.Len(t, merged.Groups, 2)
	g1 := merged.Groups[0]
	assert.Equal(t, "Group 1 - Alex", g1.Name)
	assert.Equal(t, "uuid-A", *g1.GuideID)
	assert.Len(t, g1.Participants, 3, "participants survive a payload without them")
}

func TestMergeGroups_EmptyListTreatedAsOmitted(t *testing.T) {
	update := []model.Group{{ID: "g1", Participants: []model.Participant{}}}
	merged := MergeGroups(cachedTour(), update)
	assert.Len(t, merged.Groups[0].Participants, 3)
}

func TestMergeGroups_NonEmptyListReplaces(t *testing.T) {
	update := []model.Group{{ID: "g1", Participants: []model.Participant{{ID: "p9", Count: 2}}}}
	merged := MergeGroups(cachedTour(), update)
	require.Len(t, merged.Groups[0].Participants, 1)
	assert.Equal(t, "p9", merged.Groups[0].Participants[0].ID)
}

func TestMergeGroups_Idempotent(t *testing.T) {
	update := []model.Group{{ID: "g2", Name: "Group 2 - Ben", GuideID: strptr("uuid-B")}}
	once := MergeGroups(cachedTour(), update)
	twice := MergeGroups(once, update)
	assert.Equal(t, once, twice)
}

func TestMergeGroups_AppendsUnknownGroup(t *testing.T) {
	update := []model.Group{{ID: "g3", Name: "Group 3"}}
	merged := MergeGroups(cachedTour(), update)
	require.Len(t, merged.Groups, 3)
	assert.Equal(t, "g3", merged.Groups[2].ID)
}

func TestMergeGroups_DoesNotMutateInput(t *testing.T) {
	orig := cachedTour()
	_ = MergeGroups(orig, []model.Group{{ID: "g1", Name: "changed"}})
	assert.Equal(t, "Group 1", orig.Groups[0].Name)
}

func TestTourCache_ApplyAndInvalidate(t *testing.T) {
	c := NewTourCache()

	// Updates before the first read are a no-op.
	c.ApplyGroupUpdates("tour-1", []model.Group{{ID: "g1", Name: "x"}})
	_, ok := c.Get("tour-1")
	assert.False(t, ok)

	c.Put(cachedTour())
	c.ApplyGroupUpdates("tour-1", []model.Group{{ID: "g2", GuideID: strptr("uuid-B")}})

	got, ok := c.Get("tour-1")
	require.True(t, ok)
	assert.Equal(t, "uuid-B", *got.Groups[1].GuideID)

	c.Invalidate("tour-1")
	_, ok = c.Get("tour-1")
	assert.False(t, ok)
}
