package handler // handler defines http handlers

import (
    "errors"   // errors provides Is for sentinel matching
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/tour-operations/internal/cache"      // cache holds the optimistic tour read model
    "github.com/iliyamo/tour-operations/internal/model"      // model holds validation sentinels
    "github.com/iliyamo/tour-operations/internal/repository" // repository holds the data access layer
    "github.com/iliyamo/tour-operations/internal/syncer"     // syncer owns the reconciliation engine
)

// Handler bundles the store, the reconciliation engine and the shared
// tour cache for all HTTP endpoints.
type Handler struct {
    Store *repository.Store    // Store provides direct CRUD persistence
    Sync  *syncer.Orchestrator // Sync runs retried writes and recomputes
    Cache *cache.TourCache     // Cache is the optimistic read model
}

// NewHandler constructs a Handler and panics if any dependency is nil.
func NewHandler(store *repository.Store, sync *syncer.Orchestrator, tourCache *cache.TourCache) *Handler {
    if store == nil || sync == nil || tourCache == nil { // check for nil dependencies
        panic("nil dependency passed to NewHandler") // panic when a dependency is missing
    }
    return &Handler{Store: store, Sync: sync, Cache: tourCache}
}

// fail maps internal errors onto HTTP responses.  Validation errors
// carry their message through because they describe the caller's own
// input; everything else is collapsed to a generic message so store
// internals never leak to clients.
func fail(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, map[string]string{"error": "conflict"})
    case errors.Is(err, model.ErrValidation), errors.Is(err, syncer.ErrInvalid):
        return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
    }
    return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
