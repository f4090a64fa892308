package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/tour-operations/internal/model"
)

func TestParticipants_Sums(t *testing.T) {
	ps := []model.Participant{
		{ID: "p1", Name: "Smith family", Count: 2},
		{ID: "p2", Name: "Jones party", Count: 1, ChildCount: 1},
	}
	total, children := Participants(ps)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, children)
	assert.Equal(t, 2, Adults(total, children))
}

func TestParticipants_NilAndEmpty(t *testing.T) {
	total, children := Participants(nil)
	assert.Zero(t, total)
	assert.Zero(t, children)

	total, children = Participants([]model.Participant{})
	assert.Zero(t, total)
	assert.Zero(t, children)
}

func TestParticipants_ClampsBadValues(t *testing.T) {
	ps := []model.Participant{
		{Count: -4, ChildCount: -1}, // malformed import, counts as zero
		{Count: 2, ChildCount: 5},   // child count capped at head count
	}
	total, children := Participants(ps)
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, children)
}

func TestGroup_ParticipantListWins(t *testing.T) {
	g := model.Group{
		Size:       9,
		ChildCount: 4,
		Participants: []model.Participant{
			{Count: 2}, {Count: 1, ChildCount: 1},
		},
	}
	total, children := Group(g)
	assert.Equal(t, 3, total, "participant list overrides stored scalars")
	assert.Equal(t, 1, children)
}

func TestGroup_ScalarsStandInWhenListEmpty(t *testing.T) {
	g := model.Group{Size: 9, ChildCount: 4}
	total, children := Group(g)
	assert.Equal(t, 9, total)
	assert.Equal(t, 4, children)
}

func TestGroups_SumsAcrossGroups(t *testing.T) {
	gs := []model.Group{
		{Participants: []model.Participant{{Count: 2}, {Count: 1, ChildCount: 1}}},
		{Size: 5, ChildCount: 2},
		{Size: -3, ChildCount: -1}, // clamped
	}
	total, children := Groups(gs)
	assert.Equal(t, 8, total)
	assert.Equal(t, 3, children)

	total, children = Groups(nil)
	assert.Zero(t, total)
	assert.Zero(t, children)
}

func TestAdults_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, Adults(2, 5))
	assert.Equal(t, 0, Adults(-1, 0))
	assert.Equal(t, 3, Adults(5, 2))
}

func TestFormatParticipantCount(t *testing.T) {
	tests := []struct {
		total, children int
		want            string
	}{
		{5, 0, "5"},
		{5, 2, "3+2"},
		{0, 0, "0"},
		{-2, -1, "0"},
		{2, 5, "0+2"}, // child count capped at total
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatParticipantCount(tt.total, tt.children),
			"format(%d, %d)", tt.total, tt.children)
	}
}
