package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tour-operations/internal/model"
)

// Store bundles every repository and adapts them to the persistence
// interface the synchronization orchestrator writes through.  The
// handlers also use the individual repositories directly for plain
// CRUD that needs no retry protocol.
type Store struct {
	Tours        *TourRepo
	Groups       *GroupRepo
	Participants *ParticipantRepo
	Guides       *GuideRepo
	Requirements *TicketRequirementRepo
	Buckets      *TicketBucketRepo
}

// NewStore wires all repositories onto one database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Tours:        NewTourRepo(db),
		Groups:       NewGroupRepo(db),
		Participants: NewParticipantRepo(db),
		Guides:       NewGuideRepo(db),
		Requirements: NewTicketRequirementRepo(db),
		Buckets:      NewTicketBucketRepo(db),
	}
}

func (s *Store) GetTour(ctx context.Context, tourID string) (*model.Tour, error) {
	return s.Tours.GetByID(ctx, tourID)
}

func (s *Store) ListGuides(ctx context.Context) ([]model.Guide, error) {
	return s.Guides.List(ctx)
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	return s.Groups.GetByID(ctx, groupID)
}

func (s *Store) UpdateGroup(ctx context.Context, g model.Group) error {
	return s.Groups.Update(ctx, g)
}

func (s *Store) AssignGuideDirect(ctx context.Context, groupID string, guideID *string, name string) error {
	return s.Groups.AssignGuideDirect(ctx, groupID, guideID, name)
}

func (s *Store) AssignGuideRaw(ctx context.Context, groupID string, guideID *string, name string) error {
	return s.Groups.AssignGuideRaw(ctx, groupID, guideID, name)
}

func (s *Store) ClearGroupGuide(ctx context.Context, groupID string) error {
	return s.Groups.ClearGuide(ctx, groupID)
}

func (s *Store) UpdateTourGuideSlots(ctx context.Context, tourID string, ids [3]*string, names [3]string) error {
	return s.Tours.UpdateGuideSlots(ctx, tourID, ids, names)
}

func (s *Store) SyncAllGroups(ctx context.Context, tourID string) error {
	return s.Tours.SyncAllGroups(ctx, tourID)
}

func (s *Store) MoveParticipant(ctx context.Context, participantID, toGroupID string) error {
	return s.Participants.Move(ctx, participantID, toGroupID)
}

func (s *Store) UpsertTicketRequirement(ctx context.Context, req model.TicketRequirement) error {
	return s.Requirements.Upsert(ctx, req)
}
