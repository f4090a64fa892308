package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/tour-operations/internal/model"
)

var noTicket = []string{"Sophie Miller"}

func TestEligibility_NonTicketedLocation(t *testing.T) {
	for _, gt := range []string{model.GuideTypeTicket, model.GuideTypeFree, model.GuideTypeConductor, ""} {
		kind := Eligibility(gt, "Alex", "Eiffel Tower", noTicket)
		assert.Equal(t, KindNone, kind, "guide type %q at non-ticketed location", gt)
	}
}

func TestEligibility_TicketedLocation(t *testing.T) {
	assert.Equal(t, KindAdult, Eligibility(model.GuideTypeTicket, "Alex", "Versailles", noTicket))
	assert.Equal(t, KindChild, Eligibility(model.GuideTypeFree, "Alex", "Versailles", noTicket))
	assert.Equal(t, KindNone, Eligibility(model.GuideTypeConductor, "Alex", "Versailles", noTicket))
	assert.Equal(t, KindNone, Eligibility("something else", "Alex", "Versailles", noTicket))
}

func TestEligibility_LocationSubstringMatch(t *testing.T) {
	assert.True(t, LocationRequiresGuideTickets("Versailles Palace & Gardens"))
	assert.True(t, LocationRequiresGuideTickets("paris - MONTMARTRE walk"))
	assert.False(t, LocationRequiresGuideTickets("Eiffel Tower"))
	assert.False(t, LocationRequiresGuideTickets(""))
}

func TestEligibility_ReservedNameOverride(t *testing.T) {
	// Applied before classification: a ticketed type still yields none.
	kind := Eligibility(model.GuideTypeTicket, "Sophie Miller", "Versailles", noTicket)
	assert.Equal(t, KindNone, kind)

	// Case-insensitive and whitespace-tolerant.
	kind = Eligibility(model.GuideTypeTicket, "  sophie miller ", "Versailles", noTicket)
	assert.Equal(t, KindNone, kind)

	// Without the override configured the same guide is ticketed.
	kind = Eligibility(model.GuideTypeTicket, "Sophie Miller", "Versailles", nil)
	assert.Equal(t, KindAdult, kind)
}

func TestCountGuideTickets_DeduplicatesByName(t *testing.T) {
	guides := []model.Guide{
		{ID: "uuid-1", Name: "Alex", GuideType: model.GuideTypeTicket},
		{ID: "uuid-2", Name: "alex", GuideType: model.GuideTypeTicket}, // same human, different ref
		{ID: "uuid-3", Name: "Marie", GuideType: model.GuideTypeFree},
	}
	adult, child := CountGuideTickets(guides, "Versailles", noTicket)
	assert.Equal(t, 1, adult, "same display name counts once")
	assert.Equal(t, 1, child)
}

func TestCountGuideTickets_SkipsBlankNames(t *testing.T) {
	guides := []model.Guide{
		{ID: "uuid-1", Name: "", GuideType: model.GuideTypeTicket},
		{ID: "uuid-2", Name: "  ", GuideType: model.GuideTypeTicket},
	}
	adult, child := CountGuideTickets(guides, "Versailles", noTicket)
	assert.Zero(t, adult)
	assert.Zero(t, child)
}

func TestCountGuideTickets_NonTicketedLocation(t *testing.T) {
	guides := []model.Guide{
		{ID: "uuid-1", Name: "Alex", GuideType: model.GuideTypeTicket},
	}
	adult, child := CountGuideTickets(guides, "Eiffel Tower", noTicket)
	assert.Zero(t, adult)
	assert.Zero(t, child)
}
