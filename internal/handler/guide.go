package handler // handler contains guide directory endpoints

import (
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/tour-operations/internal/assignment" // assignment resolves guide references
)

// ListGuides handles GET /v1/guides and returns the guide directory
// ordered by name.
func (h *Handler) ListGuides(c echo.Context) error {
    guides, err := h.Store.Guides.List(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, map[string]any{"items": guides})
}

// GetGuide handles GET /v1/guides/:id.
func (h *Handler) GetGuide(c echo.Context) error {
    guide, err := h.Store.Guides.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, guide)
}

// ResolveGuideLabel handles GET /v1/tours/:id/guide-label?ref=... and
// resolves a guide reference (id, slot token, stored name or sentinel)
// to the display name the dashboard should show.  Unresolvable ids
// come back as a truncated label rather than a raw identifier.
func (h *Handler) ResolveGuideLabel(c echo.Context) error {
    ctx := c.Request().Context()
    tour, err := h.Store.Tours.GetByID(ctx, c.Param("id"))
    if err != nil {
        return fail(c, err)
    }
    directory, err := h.Store.Guides.List(ctx)
    if err != nil {
        return fail(c, err)
    }
    ref := c.QueryParam("ref")
    name := assignment.ResolveName(ref, tour, directory)
    resp := map[string]any{"ref": ref, "label": name}
    if info := assignment.ResolveInfo(ref, tour, directory); info != nil { // attach guide details when the ref resolves fully
        resp["guide"] = info
    }
    return c.JSON(http.StatusOK, resp)
}
