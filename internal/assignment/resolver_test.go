package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tour-operations/internal/model"
)

func strptr(s string) *string { return &s }

func testTour() *model.Tour {
	return &model.Tour{
		ID:       "tour-1",
		Location: "Versailles",
		Guide1:   "Alex",
		Guide1ID: strptr("uuid-A"),
		Guide2:   "Marie",
	}
}

func testDirectory() []model.Guide {
	return []model.Guide{
		{ID: "uuid-A", Name: "Alex", GuideType: model.GuideTypeTicket},
		{ID: "uuid-B", Name: "Ben", GuideType: model.GuideTypeFree},
	}
}

func TestResolve_Sentinels(t *testing.T) {
	assert.Equal(t, "Unassigned", ResolveName("", testTour(), testDirectory()))
	assert.Equal(t, "Unassigned", ResolveName(UnassignToken, testTour(), testDirectory()))
	assert.Nil(t, ResolveInfo("unassign", testTour(), testDirectory()))
}

func TestResolve_SlotToken(t *testing.T) {
	tour := testTour()
	dir := testDirectory()

	assert.Equal(t, "Alex", ResolveName("guide1", tour, dir))
	info := ResolveInfo("guide1", tour, dir)
	require.NotNil(t, info)
	assert.Equal(t, "uuid-A", info.ID)
	assert.Equal(t, model.GuideTypeTicket, info.GuideType)

	// Slot with a stored name but no foreign key (legacy row).
	assert.Equal(t, "Marie", ResolveName("guide2", tour, dir))
	info = ResolveInfo("guide2", tour, dir)
	require.NotNil(t, info)
	assert.Empty(t, info.ID)

	// Empty slot falls back to the generic label.
	assert.Equal(t, "Guide 3", ResolveName("guide3", tour, dir))
}

func TestResolve_IDMatchingSlotForeignKey(t *testing.T) {
	assert.Equal(t, "Alex", ResolveName("uuid-A", testTour(), testDirectory()))
}

func TestResolve_DirectoryMatch(t *testing.T) {
	name := ResolveName("uuid-B", testTour(), testDirectory())
	assert.Equal(t, "Ben", name)
	info := ResolveInfo("uuid-B", testTour(), testDirectory())
	require.NotNil(t, info)
	assert.Equal(t, model.GuideTypeFree, info.GuideType)
}

func TestResolve_UnknownIDTruncated(t *testing.T) {
	name := ResolveName("uuid-Z", testTour(), testDirectory())
	assert.Equal(t, "Guide (uuid-Z…)", name)
	assert.Nil(t, ResolveInfo("uuid-Z", testTour(), testDirectory()))

	name = ResolveName("9f2c1a77-0000-4000-8000-123456789abc", testTour(), testDirectory())
	assert.Equal(t, "Guide (9f2c1a…)", name)
}

func TestResolve_LegacyNameInSlot(t *testing.T) {
	// "Marie" is stored verbatim in guide2; short plain names are not
	// id-shaped so the cascade reaches the legacy-name step.
	name := ResolveName("Marie", testTour(), testDirectory())
	assert.Equal(t, "Marie", name)
	info := ResolveInfo("Marie", testTour(), testDirectory())
	require.NotNil(t, info)
	assert.Equal(t, "Marie", info.Name)
}

func TestResolve_Fallback(t *testing.T) {
	assert.Equal(t, "Someone Else", ResolveName("Someone Else", testTour(), testDirectory()))
	assert.Nil(t, ResolveInfo("Someone Else", testTour(), testDirectory()))
}

func TestResolve_NilTour(t *testing.T) {
	assert.Equal(t, "Ben", ResolveName("uuid-B", nil, testDirectory()))
	assert.Equal(t, "Guide 1", ResolveName("guide1", nil, nil))
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "Group 1", GroupLabel(0))
	assert.Equal(t, "Group 3", GroupLabel(2))
	assert.Equal(t, "Group 2 - Alex", GroupLabelWithGuide(1, "Alex"))
	assert.Equal(t, "Group 2", GroupLabelWithGuide(1, "  "))
}
