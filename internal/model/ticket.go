package model

import "time"

// TicketRequirement is the cached aggregate of tickets a tour needs:
// participant headcounts plus tickets consumed by guides themselves.
// It is recomputed whenever participants or guide assignments change
// and is never the source of truth; reads that matter re-derive it.
type TicketRequirement struct {
	TourID              string    `json:"tour_id"`              // ticket_requirements.tour_id
	ParticipantAdults   int       `json:"participant_adults"`   // ticket_requirements.participant_adults
	ParticipantChildren int       `json:"participant_children"` // ticket_requirements.participant_children
	GuideAdultTickets   int       `json:"guide_adult_tickets"`  // ticket_requirements.guide_adult_tickets
	GuideChildTickets   int       `json:"guide_child_tickets"`  // ticket_requirements.guide_child_tickets
	Total               int       `json:"total"`                // ticket_requirements.total
	UpdatedAt           time.Time `json:"updated_at"`           // ticket_requirements.updated_at
}

// TicketBucket is a pool of pre-purchased tickets for an attraction
// on a specific date.  Buckets cap how many tours can be scheduled
// against attractions with limited capacity.
type TicketBucket struct {
	ID         string    `json:"id"`         // ticket_buckets.id
	Attraction string    `json:"attraction"` // ticket_buckets.attraction
	Date       string    `json:"date"`       // ticket_buckets.bucket_date
	Capacity   int       `json:"capacity"`   // ticket_buckets.capacity
	Allocated  int       `json:"allocated"`  // ticket_buckets.allocated
	CreatedAt  time.Time `json:"created_at"` // ticket_buckets.created_at
	UpdatedAt  time.Time `json:"updated_at"` // ticket_buckets.updated_at
}

// Remaining returns how many tickets are still unallocated in the
// bucket, never below zero.
func (b TicketBucket) Remaining() int {
	if r := b.Capacity - b.Allocated; r > 0 {
		return r
	}
	return 0
}

// GuideAssignment pairs a group with its guide while persistence is
// in flight.  It lives only in the optimistic cache and keeps the UI
// consistent until the confirmed server state is re-read.
type GuideAssignment struct {
	GroupID    string
	GroupIndex int
	GroupName  string
	GuideID    string
	GuideName  string
}
