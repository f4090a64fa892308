// Package assignment resolves guide references into display names
// and guide records.  A reference can be a slot token, a guide id, a
// legacy stored name or a sentinel; the persisted model moved from
// names to ids without a migration, so both shapes must resolve.
package assignment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/tour-operations/internal/model"
)

// UnassignToken is the sentinel the UI sends to clear a group's guide.
const UnassignToken = "unassign"

// UnassignedLabel is shown for groups with no guide.
const UnassignedLabel = "Unassigned"

var slotTokens = map[string]int{"guide1": 1, "guide2": 2, "guide3": 3}

// GuideInfo is the resolved view of a guide reference.  ID may be
// empty for legacy name-only references.
type GuideInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GuideType string `json:"guide_type"`
}

// GroupLabel returns the canonical display name for a group at a
// zero-based index.  Group names are not independently meaningful
// state; the label always wins over whatever was stored.
func GroupLabel(index int) string {
	return fmt.Sprintf("Group %d", index+1)
}

// GroupLabelWithGuide returns the group label with the guide's name
// embedded, used when a guide is attached to the group.
func GroupLabelWithGuide(index int, guideName string) string {
	if strings.TrimSpace(guideName) == "" {
		return GroupLabel(index)
	}
	return fmt.Sprintf("%s - %s", GroupLabel(index), guideName)
}

// looksLikeID reports whether a reference is shaped like a stored
// identifier rather than a human name: a parseable UUID, or a
// hyphenated space-free token of at least six characters.
func looksLikeID(ref string) bool {
	if _, err := uuid.Parse(ref); err == nil {
		return true
	}
	return len(ref) >= 6 && !strings.ContainsAny(ref, " \t") && strings.Contains(ref, "-")
}

// slotFallbackLabel is the generic label for a slot with no stored name.
func slotFallbackLabel(slot int) string {
	return fmt.Sprintf("Guide %d", slot)
}

// ResolveName resolves a guide reference to a display name.  See
// ResolveInfo for the resolution order.
func ResolveName(ref string, tour *model.Tour, directory []model.Guide) string {
	name, _ := resolve(ref, tour, directory)
	return name
}

// ResolveInfo resolves a guide reference to guide details, or nil
// when the reference cannot be tied to a known guide.
func ResolveInfo(ref string, tour *model.Tour, directory []model.Guide) *GuideInfo {
	_, info := resolve(ref, tour, directory)
	return info
}

// resolve walks the reference cascade, first match wins:
//
//  1. empty / unassign sentinel        -> "Unassigned"
//  2. slot token ("guide1".."guide3")  -> the tour's stored slot name
//  3. id matching a slot foreign key   -> same as (2)
//  4. exact id match in the directory  -> that guide
//  5. id-shaped ref, no match anywhere -> truncated-id label, nil info
//  6. ref equal to a stored slot name  -> that name (legacy rows)
//  7. anything else                    -> the ref itself, nil info
func resolve(ref string, tour *model.Tour, directory []model.Guide) (string, *GuideInfo) {
	ref = strings.TrimSpace(ref)

	// 1. sentinel
	if ref == "" || ref == UnassignToken {
		return UnassignedLabel, nil
	}

	// 2. special slot token
	if slot, ok := slotTokens[strings.ToLower(ref)]; ok {
		return resolveSlot(slot, tour, directory)
	}

	if tour != nil && looksLikeID(ref) {
		// 3. id stored in one of the tour's slots
		for slot := 1; slot <= 3; slot++ {
			if id := tour.SlotID(slot); id != nil && *id == ref {
				return resolveSlot(slot, tour, directory)
			}
		}
	}

	// 4. directory lookup by id
	for _, g := range directory {
		if g.ID == ref {
			return g.Name, &GuideInfo{ID: g.ID, Name: g.Name, GuideType: g.GuideType}
		}
	}

	// 5. unknown identifier: show a truncated form rather than a raw UUID
	if looksLikeID(ref) {
		short := ref
		if len(short) > 6 {
			short = short[:6]
		}
		return fmt.Sprintf("Guide (%s…)", short), nil
	}

	// 6. legacy rows stored guide names directly in the slots
	if tour != nil {
		for slot := 1; slot <= 3; slot++ {
			if tour.SlotName(slot) == ref {
				info := slotInfo(slot, tour, directory)
				return ref, info
			}
		}
	}

	// 7. fall back to the reference itself
	return ref, nil
}

// resolveSlot resolves a 1-based slot to its name and info.
func resolveSlot(slot int, tour *model.Tour, directory []model.Guide) (string, *GuideInfo) {
	if tour != nil {
		if name := tour.SlotName(slot); name != "" {
			return name, slotInfo(slot, tour, directory)
		}
	}
	return slotFallbackLabel(slot), slotInfo(slot, tour, directory)
}

// slotInfo builds guide info from a tour slot, preferring directory
// data when the slot's foreign key is known.
func slotInfo(slot int, tour *model.Tour, directory []model.Guide) *GuideInfo {
	if tour == nil {
		return nil
	}
	if id := tour.SlotID(slot); id != nil {
		for _, g := range directory {
			if g.ID == *id {
				return &GuideInfo{ID: g.ID, Name: g.Name, GuideType: g.GuideType}
			}
		}
		if name := tour.SlotName(slot); name != "" {
			return &GuideInfo{ID: *id, Name: name}
		}
		return &GuideInfo{ID: *id}
	}
	if name := tour.SlotName(slot); name != "" {
		return &GuideInfo{Name: name}
	}
	return nil
}
