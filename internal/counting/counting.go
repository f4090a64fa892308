// Package counting derives participant totals from groups and
// participant lists.  It is the single home for headcount arithmetic;
// every caller that needs a total, a child count or a formatted count
// goes through these functions rather than re-summing inline.
package counting

import (
	"fmt"

	"github.com/iliyamo/tour-operations/internal/model"
)

// clamp normalizes a possibly bad numeric field to a usable count.
// Negative values come from malformed imports and count as zero.
func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Participants sums a participant list.  It returns the total number
// of people and how many of them are children.  Nil or empty lists
// yield zeroes.  A participant's child count never contributes more
// than its own head count.
func Participants(ps []model.Participant) (total, children int) {
	for _, p := range ps {
		count := clamp(p.Count)
		child := clamp(p.ChildCount)
		if child > count {
			child = count
		}
		total += count
		children += child
	}
	return total, children
}

// Group sums a single group.  When the group has participants their
// counts are authoritative; otherwise the group's persisted size and
// child count scalars stand in (the store tolerates incomplete
// participant data).
func Group(g model.Group) (total, children int) {
	if len(g.Participants) > 0 {
		return Participants(g.Participants)
	}
	return clamp(g.Size), clamp(g.ChildCount)
}

// Groups sums every group of a tour.  Nil input yields zeroes.
func Groups(gs []model.Group) (total, children int) {
	for _, g := range gs {
		t, c := Group(g)
		total += t
		children += c
	}
	return total, children
}

// Adults returns the adult share of a total, never below zero.
func Adults(total, children int) int {
	a := clamp(total) - clamp(children)
	if a < 0 {
		return 0
	}
	return a
}

// FormatParticipantCount renders a headcount for display.  With
// children present the count splits into "{adults}+{children}";
// otherwise the plain total is shown.
func FormatParticipantCount(total, children int) string {
	total = clamp(total)
	children = clamp(children)
	if children > total {
		children = total
	}
	if children > 0 {
		return fmt.Sprintf("%d+%d", total-children, children)
	}
	return fmt.Sprintf("%d", total)
}
