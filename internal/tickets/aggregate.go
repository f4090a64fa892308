package tickets

import "github.com/iliyamo/tour-operations/internal/model"

// Aggregate combines participant headcounts and guide ticket counts
// into the requirement record cached per tour.  Inputs below zero are
// treated as zero so a malformed source can never produce a negative
// requirement.  The caller stamps TourID and UpdatedAt when
// persisting.
func Aggregate(participantAdults, participantChildren, guideAdultTickets, guideChildTickets int) model.TicketRequirement {
	pa := nonNegative(participantAdults)
	pc := nonNegative(participantChildren)
	ga := nonNegative(guideAdultTickets)
	gc := nonNegative(guideChildTickets)
	return model.TicketRequirement{
		ParticipantAdults:   pa,
		ParticipantChildren: pc,
		GuideAdultTickets:   ga,
		GuideChildTickets:   gc,
		Total:               pa + pc + ga + gc,
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
