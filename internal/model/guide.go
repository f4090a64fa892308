package model

// Guide type categories.  The category determines whether a guide
// consumes a ticket when entering a ticketed attraction:
// GA Ticket guides need an adult ticket, GA Free guides enter on a
// child ticket, and GC (guide-conductor) guides need none.
const (
	GuideTypeTicket    = "GA Ticket"
	GuideTypeFree      = "GA Free"
	GuideTypeConductor = "GC"
)

// Guide is a staff member who can be assigned to tour groups.  Guides
// are managed independently of tours and referenced both from a
// tour's guide slots and from individual groups.
type Guide struct {
	ID        string `json:"id"`         // guides.id
	Name      string `json:"name"`       // guides.name
	GuideType string `json:"guide_type"` // guides.guide_type (one of the categories above)
	Birthday  string `json:"birthday"`   // guides.birthday (YYYY-MM-DD, may be empty)
}
