package handler // handler contains participant endpoints

import (
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/tour-operations/internal/model" // model holds domain records and validation
)

// CreateParticipant handles POST /v1/groups/:id/participants.  The
// record is validated locally before any store call; invalid bookings
// are rejected outright, never retried.
func (h *Handler) CreateParticipant(c echo.Context) error { // begin CreateParticipant handler
    var body struct { // anonymous struct to bind incoming JSON
        Name       string `json:"name"`        // display name of the booking party
        Count      int    `json:"count"`       // number of people in the party
        ChildCount int    `json:"child_count"` // how many of them are children
        BookingRef string `json:"booking_ref"` // external booking reference
    }
    if err := c.Bind(&body); err != nil { // attempt to bind the request body
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    groupID := c.Param("id")
    ctx := c.Request().Context()
    grp, err := h.Store.Groups.GetByID(ctx, groupID) // verify the parent group exists
    if err != nil {
        return fail(c, err)
    }
    p := model.Participant{ // instantiate the participant record
        GroupID:    groupID,
        Name:       strings.TrimSpace(body.Name),
        Count:      body.Count,
        ChildCount: body.ChildCount,
        BookingRef: strings.TrimSpace(body.BookingRef),
    }
    if err := model.ValidateParticipant(p); err != nil { // reject bad input before any store call
        return fail(c, err)
    }
    if err := h.Store.Participants.Create(ctx, &p); err != nil { // persist the participant
        return fail(c, err)
    }
    h.afterParticipantChange(c, grp.TourID)  // re-derive counts and tickets
    return c.JSON(http.StatusCreated, p)     // return 201 and the created participant
}

// UpdateParticipant handles PUT /v1/participants/:id.
func (h *Handler) UpdateParticipant(c echo.Context) error {
    var body struct {
        Name       string `json:"name"`
        Count      int    `json:"count"`
        ChildCount int    `json:"child_count"`
        BookingRef string `json:"booking_ref"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    existing, err := h.Store.Participants.GetByID(ctx, c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    p := *existing // merge the update over the stored row
    p.Name = strings.TrimSpace(body.Name)
    p.Count = body.Count
    p.ChildCount = body.ChildCount
    p.BookingRef = strings.TrimSpace(body.BookingRef)
    if err := model.ValidateParticipant(p); err != nil {
        return fail(c, err)
    }
    if err := h.Store.Participants.Update(ctx, p); err != nil {
        return fail(c, err)
    }
    grp, err := h.Store.Groups.GetByID(ctx, p.GroupID) // locate the tour for the re-sync
    if err == nil {
        h.afterParticipantChange(c, grp.TourID)
    }
    return c.JSON(http.StatusOK, p)
}

// DeleteParticipant handles DELETE /v1/participants/:id, removing a
// cancelled booking.
func (h *Handler) DeleteParticipant(c echo.Context) error {
    ctx := c.Request().Context()
    p, err := h.Store.Participants.GetByID(ctx, c.Param("id")) // fetch first to locate the tour
    if err != nil {
        return fail(c, err)
    }
    if err := h.Store.Participants.Delete(ctx, p.ID); err != nil {
        return fail(c, err)
    }
    if grp, err := h.Store.Groups.GetByID(ctx, p.GroupID); err == nil {
        h.afterParticipantChange(c, grp.TourID)
    }
    return c.NoContent(http.StatusNoContent)
}

// MoveParticipant handles POST /v1/tours/:id/participants/:participantId/move
// and routes the move through the reconciliation engine, which keeps
// the optimistic cache, group counts and ticket requirement coherent.
func (h *Handler) MoveParticipant(c echo.Context) error {
    var body struct {
        ToGroupID string `json:"to_group_id"` // target group within the same tour
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    tourID := c.Param("id")
    participantID := c.Param("participantId")
    if err := h.Sync.MoveParticipant(c.Request().Context(), tourID, participantID, body.ToGroupID); err != nil {
        return fail(c, err)
    }
    if tour, ok := h.Cache.Get(tourID); ok { // serve the state the move produced
        return c.JSON(http.StatusOK, tour)
    }
    return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// afterParticipantChange re-syncs counts and the ticket requirement
// after a direct participant mutation.  Failures are logged; the
// change-event consumer retries on the next notification.
func (h *Handler) afterParticipantChange(c echo.Context, tourID string) {
    ctx := c.Request().Context()
    h.Cache.Invalidate(tourID)
    if err := h.Sync.SyncGroupCounts(ctx, tourID); err != nil {
        c.Logger().Warnf("count sync for tour %s: %v", tourID, err)
    }
    if _, err := h.Sync.RecalculateTickets(ctx, tourID); err != nil {
        c.Logger().Warnf("ticket recompute for tour %s: %v", tourID, err)
    }
}
