package handler // handler contains tour-level endpoints

import (
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities
    "time"     // time validates date parameters

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/tour-operations/internal/assignment" // assignment derives group labels
    "github.com/iliyamo/tour-operations/internal/model"      // model holds domain records
)

// CreateTour handles POST /v1/tours and creates a tour with its groups.
func (h *Handler) CreateTour(c echo.Context) error { // begin CreateTour handler
    var body struct { // anonymous struct to bind incoming JSON
        Date          string `json:"date"`           // tour date, YYYY-MM-DD, required
        Location      string `json:"location"`       // attraction or area, required
        TourType      string `json:"tour_type"`      // product category
        StartTime     string `json:"start_time"`     // departure time, HH:MM
        ReferenceCode string `json:"reference_code"` // operator booking reference
        HighSeason    bool   `json:"high_season"`    // season flag
        Groups        []struct {
            Name      string `json:"name"`       // optional display name
            EntryTime string `json:"entry_time"` // per-group entry time
        } `json:"groups"` // initial groups, created in order
    }
    if err := c.Bind(&body); err != nil { // attempt to bind the request body
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.Date) == "" || strings.TrimSpace(body.Location) == "" { // both fields are mandatory
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "date and location are required"})
    }
    if _, err := time.Parse("2006-01-02", body.Date); err != nil { // the date must be a calendar day
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
    }

    ctx := c.Request().Context()
    tour := &model.Tour{ // instantiate the tour record
        Date:          body.Date,
        Location:      strings.TrimSpace(body.Location),
        TourType:      strings.TrimSpace(body.TourType),
        StartTime:     body.StartTime,
        ReferenceCode: strings.TrimSpace(body.ReferenceCode),
        HighSeason:    body.HighSeason,
    }
    if err := h.Store.Tours.Create(ctx, tour); err != nil { // persist the tour row
        return fail(c, err)
    }
    for i, g := range body.Groups { // create the initial groups in order
        name := strings.TrimSpace(g.Name)
        if name == "" { // groups without a name get the canonical label
            name = assignment.GroupLabel(i)
        }
        grp := &model.Group{TourID: tour.ID, Name: name, EntryTime: g.EntryTime}
        if err := h.Store.Groups.Create(ctx, grp, i); err != nil {
            return fail(c, err)
        }
    }

    created, err := h.Store.Tours.GetByID(ctx, tour.ID) // re-read the assembled tour
    if err != nil {
        return fail(c, err)
    }
    h.Cache.Put(*created)                     // prime the read model
    return c.JSON(http.StatusCreated, created) // return 201 and the created tour
}

// GetTour handles GET /v1/tours/:id and serves the tour through the
// optimistic cache, falling back to the store on a miss.
func (h *Handler) GetTour(c echo.Context) error {
    tourID := c.Param("id")
    if cached, ok := h.Cache.Get(tourID); ok { // cache hit: serve the read model
        return c.JSON(http.StatusOK, cached)
    }
    tour, err := h.Store.Tours.GetByID(c.Request().Context(), tourID) // miss: read through
    if err != nil {
        return fail(c, err)
    }
    h.Cache.Put(*tour) // prime the cache for subsequent reads
    return c.JSON(http.StatusOK, tour)
}

// RefreshTour handles POST /v1/tours/:id/refresh.  It drops the cached
// tour and re-reads confirmed store state; the UI calls this after a
// terminal sync failure to reconcile a stale optimistic view.
func (h *Handler) RefreshTour(c echo.Context) error {
    tourID := c.Param("id")
    h.Cache.Invalidate(tourID) // discard whatever speculation is cached
    tour, err := h.Store.Tours.GetByID(c.Request().Context(), tourID)
    if err != nil {
        return fail(c, err)
    }
    h.Cache.Put(*tour)
    return c.JSON(http.StatusOK, tour)
}

// DeleteTour handles DELETE /v1/tours/:id.  Tours that still have
// groups are refused with 409.
func (h *Handler) DeleteTour(c echo.Context) error {
    tourID := c.Param("id")
    if err := h.Store.Tours.Delete(c.Request().Context(), tourID); err != nil {
        return fail(c, err)
    }
    h.Cache.Invalidate(tourID)
    return c.NoContent(http.StatusNoContent)
}

// ListTours handles GET /v1/tours?date=YYYY-MM-DD and lists the day's
// tour rows without their groups.
func (h *Handler) ListTours(c echo.Context) error {
    date := c.QueryParam("date")
    if _, err := time.Parse("2006-01-02", date); err != nil { // reject absent or malformed dates
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "date query parameter must be YYYY-MM-DD"})
    }
    tours, err := h.Store.Tours.ListByDate(c.Request().Context(), date)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]any{"items": tours}) // wrap the list in a JSON object
}

// SetHighSeason handles PATCH /v1/tours/:id/high-season.
func (h *Handler) SetHighSeason(c echo.Context) error {
    var body struct {
        HighSeason bool `json:"high_season"` // the new flag value
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    tourID := c.Param("id")
    if err := h.Store.Tours.SetHighSeason(c.Request().Context(), tourID, body.HighSeason); err != nil {
        return fail(c, err)
    }
    h.Cache.Invalidate(tourID) // the cached row is now stale
    return c.JSON(http.StatusOK, map[string]any{"id": tourID, "high_season": body.HighSeason})
}

// UpdateGuideSlots handles PUT /v1/tours/:id/guides and rewrites the
// three guide slots.  After the write the consistency sweep runs so
// new slot guides are attached to groups and the ticket requirement
// is brought up to date.
func (h *Handler) UpdateGuideSlots(c echo.Context) error {
    var body struct {
        Guide1   string  `json:"guide1"`    // slot 1 display name
        Guide2   string  `json:"guide2"`    // slot 2 display name
        Guide3   string  `json:"guide3"`    // slot 3 display name
        Guide1ID *string `json:"guide1_id"` // slot 1 guide foreign key
        Guide2ID *string `json:"guide2_id"` // slot 2 guide foreign key
        Guide3ID *string `json:"guide3_id"` // slot 3 guide foreign key
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    tourID := c.Param("id")
    ctx := c.Request().Context()
    ids := [3]*string{body.Guide1ID, body.Guide2ID, body.Guide3ID}
    names := [3]string{strings.TrimSpace(body.Guide1), strings.TrimSpace(body.Guide2), strings.TrimSpace(body.Guide3)}
    if err := h.Store.Tours.UpdateGuideSlots(ctx, tourID, ids, names); err != nil {
        return fail(c, err)
    }
    h.Cache.Invalidate(tourID) // force the next read through to the store
    if err := h.Sync.SweepGuideConsistency(ctx, tourID); err != nil { // attach new slot guides to groups
        c.Logger().Warnf("slot update sweep for tour %s: %v", tourID, err)
    }
    if _, err := h.Sync.RecalculateTickets(ctx, tourID); err != nil { // refresh the ticket aggregate
        c.Logger().Warnf("slot update recompute for tour %s: %v", tourID, err)
    }
    tour, err := h.Store.Tours.GetByID(ctx, tourID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, tour)
}

// AssignGuide handles POST /v1/tours/:id/groups/:groupId/guide and
// routes the assignment through the retried write protocol.  The
// reference may be a guide id, a slot token, a stored name or the
// "unassign" sentinel.
func (h *Handler) AssignGuide(c echo.Context) error {
    var body struct {
        GuideRef string `json:"guide_ref"` // the reference to resolve and assign
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    tourID := c.Param("id")
    groupID := c.Param("groupId")
    if err := h.Sync.AssignGuide(c.Request().Context(), tourID, groupID, body.GuideRef); err != nil {
        return fail(c, err)
    }
    if tour, ok := h.Cache.Get(tourID); ok { // serve the optimistic state the write produced
        return c.JSON(http.StatusOK, tour)
    }
    return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SyncCounts handles POST /v1/tours/:id/sync-counts and re-derives
// every group's size and child count from its participants.
func (h *Handler) SyncCounts(c echo.Context) error {
    tourID := c.Param("id")
    if err := h.Sync.SyncGroupCounts(c.Request().Context(), tourID); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
