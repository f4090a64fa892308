package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/tour-operations/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers infrastructure routes on the provided Echo
// instance.  At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers every dashboard endpoint under the /v1 prefix.
// The Handler carries the store, the reconciliation engine and the
// shared tour cache; there is no authentication layer, the API is
// deployed behind the operations network boundary.
func RegisterAPI(e *echo.Echo, h *handler.Handler) {
	v1 := e.Group("/v1")

	// Tours: creation, day listing and the cached single-tour read.
	v1.POST("/tours", h.CreateTour)
	v1.GET("/tours", h.ListTours)
	v1.GET("/tours/:id", h.GetTour)
	v1.DELETE("/tours/:id", h.DeleteTour)
	// Refresh drops the optimistic cache entry and re-reads confirmed
	// state; the dashboard calls it after a terminal sync failure.
	v1.POST("/tours/:id/refresh", h.RefreshTour)
	v1.PATCH("/tours/:id/high-season", h.SetHighSeason)
	// Guide slots and the reference resolver used for display labels.
	v1.PUT("/tours/:id/guides", h.UpdateGuideSlots)
	v1.GET("/tours/:id/guide-label", h.ResolveGuideLabel)
	// Group-level guide assignment goes through the retried write
	// protocol rather than plain CRUD.
	v1.POST("/tours/:id/groups/:groupId/guide", h.AssignGuide)
	// Manual trigger for the group count re-derivation.
	v1.POST("/tours/:id/sync-counts", h.SyncCounts)

	// Groups: plain CRUD.  Deletion refuses groups that still hold
	// participants.
	v1.POST("/tours/:id/groups", h.CreateGroup)
	v1.GET("/groups/:id", h.GetGroup)
	v1.PUT("/groups/:id", h.UpdateGroup)
	v1.DELETE("/groups/:id", h.DeleteGroup)

	// Participants: CRUD plus the cross-group move, which flows
	// through the reconciliation engine.
	v1.POST("/groups/:id/participants", h.CreateParticipant)
	v1.PUT("/participants/:id", h.UpdateParticipant)
	v1.DELETE("/participants/:id", h.DeleteParticipant)
	v1.POST("/tours/:id/participants/:participantId/move", h.MoveParticipant)

	// Guide directory, read-only from this service's point of view.
	v1.GET("/guides", h.ListGuides)
	v1.GET("/guides/:id", h.GetGuide)

	// Ticket requirements and pre-purchased ticket pools.
	v1.GET("/tours/:id/tickets", h.GetTicketRequirement)
	v1.POST("/tours/:id/tickets/recalculate", h.RecalculateTickets)
	v1.POST("/ticket-buckets", h.CreateTicketBucket)
	v1.GET("/ticket-buckets", h.ListTicketBuckets)
	v1.POST("/ticket-buckets/:id/allocate", h.AllocateTickets)
	v1.POST("/ticket-buckets/:id/release", h.ReleaseTickets)
}
