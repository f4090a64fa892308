// Package tickets decides which tickets a tour needs: the guide
// ticket-eligibility rules and the aggregate requirement derived from
// participant and guide counts.
package tickets

import (
	"strings"

	"github.com/iliyamo/tour-operations/internal/model"
)

// Kind is the ticket a guide consumes at a ticketed attraction.
type Kind string

const (
	KindNone  Kind = "none"
	KindAdult Kind = "adult"
	KindChild Kind = "child"
)

// ticketedLocations are the attractions where guides themselves need
// tickets to enter.  The match is a case-insensitive substring test
// against the tour location so that variants like "Versailles Palace"
// or "Paris - Montmartre" still qualify.
var ticketedLocations = []string{"versailles", "montmartre"}

// LocationRequiresGuideTickets reports whether guides need their own
// tickets at the given tour location.
func LocationRequiresGuideTickets(location string) bool {
	loc := strings.ToLower(location)
	for _, t := range ticketedLocations {
		if strings.Contains(loc, t) {
			return true
		}
	}
	return false
}

// Eligibility classifies a single guide for a tour location.  Guides
// whose name appears in noTicketNames are forced to no-ticket before
// classification (a business-rule override kept data-driven so it can
// be changed without a deploy).  Non-ticketed locations always yield
// KindNone.
func Eligibility(guideType, guideName, location string, noTicketNames []string) Kind {
	if !LocationRequiresGuideTickets(location) {
		return KindNone
	}
	for _, n := range noTicketNames {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(guideName)) {
			return KindNone
		}
	}
	switch guideType {
	case model.GuideTypeTicket:
		return KindAdult
	case model.GuideTypeFree:
		return KindChild
	}
	return KindNone
}

// CountGuideTickets classifies a list of guides and returns how many
// adult and child tickets they consume.  A guide is counted at most
// once even when referenced from several slots; identity for
// deduplication is the display name, case-insensitively, because the
// same person can appear under both a slot token and a database id.
func CountGuideTickets(guides []model.Guide, location string, noTicketNames []string) (adult, child int) {
	seen := make(map[string]struct{}, len(guides))
	for _, g := range guides {
		key := strings.ToLower(strings.TrimSpace(g.Name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		switch Eligibility(g.GuideType, g.Name, location, noTicketNames) {
		case KindAdult:
			adult++
		case KindChild:
			child++
		}
	}
	return adult, child
}
