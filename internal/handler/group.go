package handler // handler contains group endpoints

import (
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/tour-operations/internal/assignment" // assignment derives group labels
    "github.com/iliyamo/tour-operations/internal/model"      // model holds domain records
)

// CreateGroup handles POST /v1/tours/:id/groups and appends a group to
// the tour.
func (h *Handler) CreateGroup(c echo.Context) error { // begin CreateGroup handler
    var body struct { // anonymous struct to bind incoming JSON
        Name      string `json:"name"`       // optional display name
        EntryTime string `json:"entry_time"` // per-group entry time
        Position  int    `json:"position"`   // zero-based position within the tour
    }
    if err := c.Bind(&body); err != nil { // attempt to bind the request body
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    tourID := c.Param("id")
    ctx := c.Request().Context()
    if _, err := h.Store.Tours.GetByID(ctx, tourID); err != nil { // verify the parent tour exists
        return fail(c, err)
    }
    name := strings.TrimSpace(body.Name)
    if name == "" { // unnamed groups get the canonical label for their position
        name = assignment.GroupLabel(body.Position)
    }
    grp := &model.Group{TourID: tourID, Name: name, EntryTime: body.EntryTime}
    if err := h.Store.Groups.Create(ctx, grp, body.Position); err != nil { // persist the group row
        return fail(c, err)
    }
    h.Cache.Invalidate(tourID)             // the cached tour no longer matches
    return c.JSON(http.StatusCreated, grp) // return 201 and the created group
}

// GetGroup handles GET /v1/groups/:id and returns the group with its
// participants.
func (h *Handler) GetGroup(c echo.Context) error {
    grp, err := h.Store.Groups.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, grp)
}

// UpdateGroup handles PUT /v1/groups/:id and rewrites the group's
// mutable fields.  Counts are not writable here; they are derived
// from participants by the sync paths.
func (h *Handler) UpdateGroup(c echo.Context) error {
    var body struct {
        Name      string `json:"name"`       // new display name
        EntryTime string `json:"entry_time"` // new entry time
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    grp, err := h.Store.Groups.GetByID(ctx, c.Param("id")) // read the current row to merge into
    if err != nil {
        return fail(c, err)
    }
    if name := strings.TrimSpace(body.Name); name != "" { // only overwrite provided fields
        grp.Name = name
    }
    if body.EntryTime != "" {
        grp.EntryTime = body.EntryTime
    }
    if err := h.Store.Groups.Update(ctx, *grp); err != nil {
        return fail(c, err)
    }
    h.Cache.Invalidate(grp.TourID)
    return c.JSON(http.StatusOK, grp)
}

// DeleteGroup handles DELETE /v1/groups/:id.  Groups that still hold
// participants are refused with 409; move or delete them first.
func (h *Handler) DeleteGroup(c echo.Context) error {
    ctx := c.Request().Context()
    grp, err := h.Store.Groups.GetByID(ctx, c.Param("id")) // fetch first so the tour cache can be invalidated
    if err != nil {
        return fail(c, err)
    }
    if err := h.Store.Groups.Delete(ctx, grp.ID); err != nil {
        return fail(c, err)
    }
    h.Cache.Invalidate(grp.TourID)
    return c.NoContent(http.StatusNoContent)
}
