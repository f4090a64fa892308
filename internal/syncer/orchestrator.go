// Package syncer keeps the denormalized tour facts consistent:
// group membership, guide assignment, participant composition and
// cached ticket requirements.  It owns the retry protocol around
// store writes and publishes change notifications on success.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/iliyamo/tour-operations/internal/assignment"
	"github.com/iliyamo/tour-operations/internal/cache"
	"github.com/iliyamo/tour-operations/internal/counting"
	"github.com/iliyamo/tour-operations/internal/model"
	"github.com/iliyamo/tour-operations/internal/queue"
	"github.com/iliyamo/tour-operations/internal/repository"
	"github.com/iliyamo/tour-operations/internal/retry"
	"github.com/iliyamo/tour-operations/internal/tickets"
)

// Store is the persistence boundary the orchestrator writes through.
// The repository layer satisfies it in production; tests substitute
// scripted fakes.
type Store interface {
	GetTour(ctx context.Context, tourID string) (*model.Tour, error)
	ListGuides(ctx context.Context) ([]model.Guide, error)
	GetGroup(ctx context.Context, groupID string) (*model.Group, error)
	UpdateGroup(ctx context.Context, g model.Group) error
	AssignGuideDirect(ctx context.Context, groupID string, guideID *string, name string) error
	AssignGuideRaw(ctx context.Context, groupID string, guideID *string, name string) error
	ClearGroupGuide(ctx context.Context, groupID string) error
	UpdateTourGuideSlots(ctx context.Context, tourID string, ids [3]*string, names [3]string) error
	SyncAllGroups(ctx context.Context, tourID string) error
	MoveParticipant(ctx context.Context, participantID, toGroupID string) error
	UpsertTicketRequirement(ctx context.Context, req model.TicketRequirement) error
}

// OutOfBand is the last-resort write path tried once when every
// in-band attempt has failed: a direct call that bypasses the normal
// database client entirely.
type OutOfBand interface {
	AssignGuide(ctx context.Context, groupID string, guideID *string, name string) error
}

// ErrInvalid marks input rejected locally before any store call.
// Invalid input is never retried.
var ErrInvalid = errors.New("invalid input")

// Options tunes an Orchestrator.  Zero values fall back to the
// default retry policy, no out-of-band path and no name overrides.
type Options struct {
	// Policy governs retries for every store-touching operation.
	Policy retry.Policy
	// OutOfBand, when set, is attempted once after retries exhaust.
	OutOfBand OutOfBand
	// NoTicketGuideNames are guides forced to no-ticket regardless of
	// their stored type (see tickets.Eligibility).
	NoTicketGuideNames []string
}

// Orchestrator reconciles tour state against the store with bounded
// retry, keeps the optimistic cache coherent and notifies
// subscribers of confirmed changes.
type Orchestrator struct {
	store         Store
	cache         *cache.TourCache
	bus           queue.Bus
	policy        retry.Policy
	outOfBand     OutOfBand
	noTicketNames []string
}

// New constructs an Orchestrator.  store, tourCache and bus must be
// non-nil.
func New(store Store, tourCache *cache.TourCache, bus queue.Bus, opts Options) *Orchestrator {
	if store == nil || tourCache == nil || bus == nil {
		panic("nil dependency passed to syncer.New")
	}
	policy := opts.Policy
	if policy.MaxRetries == 0 && policy.BaseDelay == 0 {
		policy = retry.Default()
	}
	return &Orchestrator{
		store:         store,
		cache:         tourCache,
		bus:           bus,
		policy:        policy,
		outOfBand:     opts.OutOfBand,
		noTicketNames: opts.NoTicketGuideNames,
	}
}

// loadTour reads a tour through the cache, falling back to the store
// and priming the cache on a miss.
func (o *Orchestrator) loadTour(ctx context.Context, tourID string) (*model.Tour, error) {
	if t, ok := o.cache.Get(tourID); ok {
		return &t, nil
	}
	t, err := o.store.GetTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	o.cache.Put(*t)
	return t, nil
}

// AssignGuide assigns (or clears, with assignment.UnassignToken) a
// group's guide.  The optimistic cache is updated before
// persistence; on terminal failure the speculative state is left in
// place and the caller must invalidate the cache to reconcile.
func (o *Orchestrator) AssignGuide(ctx context.Context, tourID, groupID, guideRef string) error {
	if tourID == "" || groupID == "" {
		return fmt.Errorf("%w: tour and group ids are required", ErrInvalid)
	}
	tour, err := o.loadTour(ctx, tourID)
	if err != nil {
		return err
	}
	groupIdx := -1
	for i, g := range tour.Groups {
		if g.ID == groupID {
			groupIdx = i
			break
		}
	}
	if groupIdx < 0 {
		return fmt.Errorf("%w: group %s not in tour %s", ErrInvalid, groupID, tourID)
	}

	directory, err := o.store.ListGuides(ctx)
	if err != nil {
		return err
	}

	var guideID *string
	var groupName string
	if guideRef == "" || guideRef == assignment.UnassignToken {
		groupName = assignment.GroupLabel(groupIdx)
	} else {
		info := assignment.ResolveInfo(guideRef, tour, directory)
		if info == nil {
			// An unresolvable reference would persist a dangling id;
			// reject it before touching the store.
			return fmt.Errorf("%w: unknown guide reference %q", ErrInvalid, guideRef)
		}
		if info.ID != "" {
			id := info.ID
			guideID = &id
		}
		groupName = assignment.GroupLabelWithGuide(groupIdx, info.Name)
	}

	// Speculative update so the UI reflects the change immediately.
	updated := tour.Groups[groupIdx]
	updated.GuideID = guideID
	updated.Name = groupName
	o.cache.ApplyGroupUpdates(tourID, []model.Group{updated})

	if err := o.persistAssignment(ctx, groupID, guideID, groupName); err != nil {
		// Deliberately no rollback: the cache stays optimistic and the
		// UI forces a re-fetch to reconcile.
		return err
	}

	o.publish(ctx, queue.CategoryGuideChange, tourID, map[string]string{"group_id": groupID})
	if _, err := o.RecalculateTickets(ctx, tourID); err != nil {
		log.Printf("syncer: ticket recompute after guide change failed: %v", err)
	}
	return nil
}

// persistAssignment runs the guide-assignment protocol: per attempt
// try the direct update path then the raw statement path, back off
// between attempts, and at the last attempt try the out-of-band
// writer before giving up.
func (o *Orchestrator) persistAssignment(ctx context.Context, groupID string, guideID *string, name string) error {
	var last error
	for attempt := 0; attempt <= o.policy.MaxRetries; attempt++ {
		if last = o.store.AssignGuideDirect(ctx, groupID, guideID, name); last == nil {
			return nil
		}
		if err := o.store.AssignGuideRaw(ctx, groupID, guideID, name); err == nil {
			return nil
		} else {
			last = err
		}
		if errors.Is(last, repository.ErrNotFound) {
			// The row is gone; more attempts cannot bring it back.
			return last
		}
		if attempt == o.policy.MaxRetries {
			break
		}
		o.policy.Wait(o.policy.Backoff(attempt))
	}
	if o.outOfBand != nil {
		if err := o.outOfBand.AssignGuide(ctx, groupID, guideID, name); err == nil {
			return nil
		} else {
			last = err
		}
	}
	return fmt.Errorf("assign guide %s: %w", groupID, last)
}

// MoveParticipant reassigns a participant to another group of the
// same tour, then re-derives every group's counts and the tour's
// ticket requirement.
func (o *Orchestrator) MoveParticipant(ctx context.Context, tourID, participantID, toGroupID string) error {
	if tourID == "" || participantID == "" || toGroupID == "" {
		return fmt.Errorf("%w: tour, participant and target group ids are required", ErrInvalid)
	}

	// Speculative move so the UI updates before the round trip.
	o.applyOptimisticMove(tourID, participantID, toGroupID)

	err := o.policy.Do(ctx, func(ctx context.Context) error {
		return o.store.MoveParticipant(ctx, participantID, toGroupID)
	})
	if err != nil {
		return fmt.Errorf("move participant %s: %w", participantID, err)
	}

	if err := o.SyncGroupCounts(ctx, tourID); err != nil {
		log.Printf("syncer: count sync after move failed: %v", err)
	}
	o.publish(ctx, queue.CategoryParticipantChange, tourID, map[string]string{
		"participant_id": participantID,
		"group_id":       toGroupID,
	})
	if _, err := o.RecalculateTickets(ctx, tourID); err != nil {
		log.Printf("syncer: ticket recompute after move failed: %v", err)
	}
	return nil
}

// applyOptimisticMove relocates a participant inside the cached tour
// and re-derives the two affected groups' counts.  A cache miss is a
// no-op.
func (o *Orchestrator) applyOptimisticMove(tourID, participantID, toGroupID string) {
	tour, ok := o.cache.Get(tourID)
	if !ok {
		return
	}
	var moved *model.Participant
	updates := make([]model.Group, 0, 2)
	for _, g := range tour.Groups {
		for i, p := range g.Participants {
			if p.ID == participantID && g.ID != toGroupID {
				from := g
				from.Participants = append([]model.Participant{}, g.Participants[:i]...)
				from.Participants = append(from.Participants, g.Participants[i+1:]...)
				from.Size, from.ChildCount = counting.Participants(from.Participants)
				p.GroupID = toGroupID
				moved = &p
				updates = append(updates, from)
				break
			}
		}
	}
	if moved == nil {
		return
	}
	for _, g := range tour.Groups {
		if g.ID == toGroupID {
			to := g
			to.Participants = append(append([]model.Participant{}, g.Participants...), *moved)
			to.Size, to.ChildCount = counting.Participants(to.Participants)
			updates = append(updates, to)
			break
		}
	}
	o.cache.ApplyGroupUpdates(tourID, updates)
}

// SyncGroupCounts re-derives size and child_count for every group of
// a tour.  The server-side aggregate procedure is preferred; when it
// is unavailable for lack of privileges the manual per-group
// fallback runs instead.
func (o *Orchestrator) SyncGroupCounts(ctx context.Context, tourID string) error {
	err := o.store.SyncAllGroups(ctx, tourID)
	if err == nil {
		o.refreshCache(ctx, tourID)
		return nil
	}
	if !repository.IsPermissionDenied(err) {
		return fmt.Errorf("sync groups for tour %s: %w", tourID, err)
	}
	log.Printf("syncer: aggregate procedure unavailable for tour %s, using manual fallback", tourID)
	if err := o.manualCountSync(ctx, tourID); err != nil {
		return err
	}
	o.refreshCache(ctx, tourID)
	return nil
}

// manualCountSync iterates every group of the tour, re-sums its
// participants and writes the counts back.  Each write reads the
// current row first and merges the counts into it so concurrent
// edits to the group's name, guide or entry time survive.  Groups
// whose participant list is empty keep their persisted scalars; the
// store tolerates incomplete participant data and zeroing them would
// destroy the stand-in values.
func (o *Orchestrator) manualCountSync(ctx context.Context, tourID string) error {
	tour, err := o.store.GetTour(ctx, tourID)
	if err != nil {
		return err
	}
	for _, g := range tour.Groups {
		if len(g.Participants) == 0 {
			continue
		}
		size, children := counting.Participants(g.Participants)
		groupID := g.ID
		err := o.policy.Do(ctx, func(ctx context.Context) error {
			current, err := o.store.GetGroup(ctx, groupID)
			if err != nil {
				return err
			}
			merged := *current
			merged.Size = size
			merged.ChildCount = children
			return o.store.UpdateGroup(ctx, merged)
		})
		if err != nil {
			return fmt.Errorf("manual count sync for group %s: %w", groupID, err)
		}
	}
	return nil
}

// RecalculateTickets re-derives the tour's ticket requirement from
// authoritative store state, persists it and publishes the update.
// Dangling guide references found along the way are cleared rather
// than failing the recompute.
func (o *Orchestrator) RecalculateTickets(ctx context.Context, tourID string) (*model.TicketRequirement, error) {
	tour, err := o.store.GetTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	directory, err := o.store.ListGuides(ctx)
	if err != nil {
		return nil, err
	}

	total, children := counting.Groups(tour.Groups)
	adults := counting.Adults(total, children)

	guides := o.collectTourGuides(ctx, tour, directory)
	guideAdult, guideChild := tickets.CountGuideTickets(guides, tour.Location, o.noTicketNames)

	req := tickets.Aggregate(adults, children, guideAdult, guideChild)
	req.TourID = tourID

	err = o.policy.Do(ctx, func(ctx context.Context) error {
		return o.store.UpsertTicketRequirement(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("persist ticket requirement for tour %s: %w", tourID, err)
	}

	o.cache.Put(*tour)
	o.publish(ctx, queue.CategoryTicketRequirements, tourID, map[string]string{
		"total": strconv.Itoa(req.Total),
	})
	return &req, nil
}

// collectTourGuides gathers every guide attached to the tour, from
// the three slots and from group assignments.  A group pointing at a
// guide missing from the directory is self-healed by clearing the
// reference.
func (o *Orchestrator) collectTourGuides(ctx context.Context, tour *model.Tour, directory []model.Guide) []model.Guide {
	byID := make(map[string]model.Guide, len(directory))
	for _, g := range directory {
		byID[g.ID] = g
	}

	guides := make([]model.Guide, 0, 3+len(tour.Groups))
	for slot := 1; slot <= 3; slot++ {
		if id := tour.SlotID(slot); id != nil {
			if g, ok := byID[*id]; ok {
				guides = append(guides, g)
				continue
			}
		}
		if name := tour.SlotName(slot); name != "" {
			// Legacy slot without a usable id: name only, no type, so
			// it never consumes a ticket but still occupies the slot.
			guides = append(guides, model.Guide{Name: name})
		}
	}
	for _, grp := range tour.Groups {
		if grp.GuideID == nil {
			continue
		}
		g, ok := byID[*grp.GuideID]
		if !ok {
			log.Printf("syncer: group %s references missing guide %s, clearing", grp.ID, *grp.GuideID)
			if err := o.store.ClearGroupGuide(ctx, grp.ID); err != nil {
				log.Printf("syncer: clearing dangling guide on group %s failed: %v", grp.ID, err)
			}
			continue
		}
		guides = append(guides, g)
	}
	return guides
}

// publish sends a change notification.  Publish failures are logged
// and swallowed; a missed notification only delays the next re-sync.
func (o *Orchestrator) publish(ctx context.Context, category, tourID string, payload map[string]string) {
	if err := o.bus.Publish(ctx, queue.NewEvent(category, tourID, payload)); err != nil {
		log.Printf("syncer: publish %s for tour %s failed: %v", category, tourID, err)
	}
}

// refreshCache replaces the cached tour with confirmed store state.
func (o *Orchestrator) refreshCache(ctx context.Context, tourID string) {
	tour, err := o.store.GetTour(ctx, tourID)
	if err != nil {
		log.Printf("syncer: cache refresh for tour %s failed: %v", tourID, err)
		return
	}
	o.cache.Put(*tour)
}
