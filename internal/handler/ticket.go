package handler // handler contains ticket endpoints

import (
    "errors"   // errors provides Is for sentinel matching
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities
    "time"     // time validates date parameters

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/tour-operations/internal/model"      // model holds domain records
    "github.com/iliyamo/tour-operations/internal/repository" // repository provides sentinel errors
)

// GetTicketRequirement handles GET /v1/tours/:id/tickets.  The stored
// aggregate is served when present; a missing record triggers a fresh
// computation so the first read after creating a tour still answers.
func (h *Handler) GetTicketRequirement(c echo.Context) error {
    tourID := c.Param("id")
    ctx := c.Request().Context()
    req, err := h.Store.Requirements.GetByTour(ctx, tourID)
    if errors.Is(err, repository.ErrNotFound) { // never computed yet: derive it now
        fresh, rerr := h.Sync.RecalculateTickets(ctx, tourID)
        if rerr != nil {
            return fail(c, rerr)
        }
        return c.JSON(http.StatusOK, fresh)
    }
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, req)
}

// RecalculateTickets handles POST /v1/tours/:id/tickets/recalculate
// and forces a recomputation from authoritative store state.
func (h *Handler) RecalculateTickets(c echo.Context) error {
    req, err := h.Sync.RecalculateTickets(c.Request().Context(), c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, req)
}

// CreateTicketBucket handles POST /v1/ticket-buckets and registers a
// pool of pre-purchased tickets for an attraction on a date.
func (h *Handler) CreateTicketBucket(c echo.Context) error {
    var body struct {
        Attraction string `json:"attraction"` // attraction the pool was bought for
        Date       string `json:"date"`       // pool date, YYYY-MM-DD
        Capacity   int    `json:"capacity"`   // number of tickets in the pool
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.Attraction) == "" {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "attraction is required"})
    }
    if _, err := time.Parse("2006-01-02", body.Date); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
    }
    if body.Capacity < 1 {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "capacity must be at least 1"})
    }
    b := &model.TicketBucket{
        Attraction: strings.TrimSpace(body.Attraction),
        Date:       body.Date,
        Capacity:   body.Capacity,
    }
    if err := h.Store.Buckets.Create(c.Request().Context(), b); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// ListTicketBuckets handles GET /v1/ticket-buckets?date=YYYY-MM-DD.
func (h *Handler) ListTicketBuckets(c echo.Context) error {
    date := c.QueryParam("date")
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "date query parameter must be YYYY-MM-DD"})
    }
    buckets, err := h.Store.Buckets.ListByDate(c.Request().Context(), date)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]any{"items": buckets})
}

// AllocateTickets handles POST /v1/ticket-buckets/:id/allocate.  An
// allocation that would exceed the pool's capacity is refused with
// 409; the guard is enforced in the store so concurrent allocations
// cannot both slip under the cap.
func (h *Handler) AllocateTickets(c echo.Context) error {
    var body struct {
        Count int `json:"count"` // tickets to draw from the pool
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    if body.Count < 1 {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "count must be at least 1"})
    }
    if err := h.Store.Buckets.Allocate(c.Request().Context(), c.Param("id"), body.Count); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReleaseTickets handles POST /v1/ticket-buckets/:id/release and
// returns tickets to the pool, clamping at zero.
func (h *Handler) ReleaseTickets(c echo.Context) error {
    var body struct {
        Count int `json:"count"` // tickets to return to the pool
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    if body.Count < 1 {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "count must be at least 1"})
    }
    if err := h.Store.Buckets.Release(c.Request().Context(), c.Param("id"), body.Count); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
