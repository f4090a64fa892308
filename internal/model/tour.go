package model

import "time"

// Tour represents a scheduled guided outing on a given date.  A tour
// carries up to three guide slots.  Each slot stores both a display
// name (legacy rows persisted names directly) and a nullable foreign
// key into the guides table; newer rows fill the id and the name is
// kept in sync as a denormalized copy for display.
//
// Fields:
//  ID            – primary key (UUID).
//  Date          – tour date in YYYY-MM-DD.
//  Location      – attraction or area visited (e.g. "Versailles").
//  TourType      – product category of the tour.
//  StartTime     – departure time as HH:MM.
//  ReferenceCode – operator booking reference.
//  Guide1..3     – denormalized guide display names per slot.
//  Guide1ID..3ID – guide foreign keys per slot (nil when empty).
//  HighSeason    – season flag toggled by operators.
//  Groups        – the tour's groups, ordered by position.
type Tour struct {
	ID            string    `json:"id"`             // tours.id
	Date          string    `json:"date"`           // tours.tour_date
	Location      string    `json:"location"`       // tours.location
	TourType      string    `json:"tour_type"`      // tours.tour_type
	StartTime     string    `json:"start_time"`     // tours.start_time
	ReferenceCode string    `json:"reference_code"` // tours.reference_code
	Guide1        string    `json:"guide1"`         // tours.guide1
	Guide2        string    `json:"guide2"`         // tours.guide2
	Guide3        string    `json:"guide3"`         // tours.guide3
	Guide1ID      *string   `json:"guide1_id"`      // tours.guide1_id
	Guide2ID      *string   `json:"guide2_id"`      // tours.guide2_id
	Guide3ID      *string   `json:"guide3_id"`      // tours.guide3_id
	HighSeason    bool      `json:"high_season"`    // tours.high_season
	Groups        []Group   `json:"groups"`         // owned groups, position order
	CreatedAt     time.Time `json:"created_at"`     // tours.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // tours.updated_at
}

// SlotName returns the denormalized guide name for a 1-based slot
// number, or the empty string for an out-of-range slot.
func (t *Tour) SlotName(slot int) string {
	switch slot {
	case 1:
		return t.Guide1
	case 2:
		return t.Guide2
	case 3:
		return t.Guide3
	}
	return ""
}

// SlotID returns the guide foreign key for a 1-based slot number, or
// nil when the slot is empty or out of range.
func (t *Tour) SlotID(slot int) *string {
	switch slot {
	case 1:
		return t.Guide1ID
	case 2:
		return t.Guide2ID
	case 3:
		return t.Guide3ID
	}
	return nil
}

// Group is a subdivision of a tour's participants with its own entry
// time and at most one assigned guide.  Size and ChildCount duplicate
// what is derivable from Participants; when the participant list is
// empty but the scalars are nonzero, the scalars stand in for missing
// booking data and are treated as authoritative.
type Group struct {
	ID           string        `json:"id"`           // tour_groups.id
	TourID       string        `json:"tour_id"`      // tour_groups.tour_id
	Name         string        `json:"name"`         // tour_groups.name
	EntryTime    string        `json:"entry_time"`   // tour_groups.entry_time
	GuideID      *string       `json:"guide_id"`     // tour_groups.guide_id (nullable)
	Size         int           `json:"size"`         // tour_groups.size (derived)
	ChildCount   int           `json:"child_count"`  // tour_groups.child_count (derived)
	Participants []Participant `json:"participants"` // owned participants
}

// Participant is a booking unit covering one or more people.  Count
// is the number of people in the party and ChildCount how many of
// them are children (0 <= ChildCount <= Count).
type Participant struct {
	ID         string `json:"id"`          // participants.id
	GroupID    string `json:"group_id"`    // participants.group_id
	Name       string `json:"name"`        // participants.display_name
	Count      int    `json:"count"`       // participants.head_count
	ChildCount int    `json:"child_count"` // participants.child_count
	BookingRef string `json:"booking_ref"` // participants.booking_ref
}
