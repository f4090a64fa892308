package syncer

import (
	"context"
	"fmt"
	"log"

	"github.com/iliyamo/tour-operations/internal/assignment"
	"github.com/iliyamo/tour-operations/internal/model"
)

// SweepGuideConsistency reconciles a tour's three guide slots
// against the guides actually assigned to its groups, in both
// directions: a slot guide assigned to no group is attached to the
// first unassigned group, and a group guide missing from the slots
// is backfilled into the first empty slot.  The sweep is best-effort
// and idempotent; running it twice produces no further changes.
func (o *Orchestrator) SweepGuideConsistency(ctx context.Context, tourID string) error {
	tour, err := o.store.GetTour(ctx, tourID)
	if err != nil {
		return fmt.Errorf("sweep tour %s: %w", tourID, err)
	}
	directory, err := o.store.ListGuides(ctx)
	if err != nil {
		return fmt.Errorf("sweep tour %s: %w", tourID, err)
	}
	byID := make(map[string]model.Guide, len(directory))
	for _, g := range directory {
		byID[g.ID] = g
	}

	assigned := make(map[string]bool)
	for _, g := range tour.Groups {
		if g.GuideID != nil {
			assigned[*g.GuideID] = true
		}
	}

	// (a) slot guides with no group: attach to the first group that
	// has no guide yet, embedding the guide's name in the group name.
	changed := false
	for slot := 1; slot <= 3; slot++ {
		id := tour.SlotID(slot)
		if id == nil || assigned[*id] {
			continue
		}
		name := tour.SlotName(slot)
		if g, ok := byID[*id]; ok {
			name = g.Name
		}
		for i := range tour.Groups {
			if tour.Groups[i].GuideID != nil {
				continue
			}
			guideID := *id
			label := assignment.GroupLabelWithGuide(i, name)
			if err := o.store.AssignGuideDirect(ctx, tour.Groups[i].ID, &guideID, label); err != nil {
				log.Printf("syncer: sweep auto-assign of guide %s to group %s failed: %v", guideID, tour.Groups[i].ID, err)
				break
			}
			tour.Groups[i].GuideID = &guideID
			tour.Groups[i].Name = label
			assigned[guideID] = true
			changed = true
			break
		}
	}

	// (b) group guides missing from the slots: backfill the first
	// empty slot.
	slotIDs := [3]*string{tour.Guide1ID, tour.Guide2ID, tour.Guide3ID}
	slotNames := [3]string{tour.Guide1, tour.Guide2, tour.Guide3}
	inSlot := make(map[string]bool)
	for _, id := range slotIDs {
		if id != nil {
			inSlot[*id] = true
		}
	}
	slotsChanged := false
	for _, g := range tour.Groups {
		if g.GuideID == nil || inSlot[*g.GuideID] {
			continue
		}
		for s := 0; s < 3; s++ {
			if slotIDs[s] != nil {
				continue
			}
			guideID := *g.GuideID
			slotIDs[s] = &guideID
			if gd, ok := byID[guideID]; ok {
				slotNames[s] = gd.Name
			}
			inSlot[guideID] = true
			slotsChanged = true
			break
		}
	}
	if slotsChanged {
		if err := o.store.UpdateTourGuideSlots(ctx, tourID, slotIDs, slotNames); err != nil {
			return fmt.Errorf("sweep slot backfill for tour %s: %w", tourID, err)
		}
		changed = true
	}

	if changed {
		o.refreshCache(ctx, tourID)
	}
	return nil
}
