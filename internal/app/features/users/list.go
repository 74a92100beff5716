// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/app/system/paging"
	"github.com/dalemusser/staffhub/internal/app/system/search"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
)

// firstParam returns the first non-empty query parameter among keys.
func firstParam(r *http.Request, keys ...string) string {
	for _, k := range keys {
		if v := query.Get(r, k); v != "" {
			return v
		}
	}
	return ""
}

// ServeList handles GET /api/users.
//
// Query: search, role (or positionFilter) and status (or statusFilter) as
// comma separated lists, sort (newest|oldest|last_name), page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := staff.UserQuery{
		Search:   query.Get(r, "search"),
		Roles:    search.List(firstParam(r, "role", "positionFilter")),
		Statuses: search.List(firstParam(r, "status", "statusFilter")),
		Sort:     query.Get(r, "sort"),
		Page:     paging.ParseInt(r, "page", 1),
		Limit:    paging.ParseInt(r, "limit", 0),
	}

	page, err := h.Staff.ListUsers(ctx, q)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, page)
}

// ServeUser handles GET /api/users/{id}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Staff.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, u)
}

// HandleRefresh handles POST /api/users/refresh: reload the user cache
// from the store.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "refresh users")
	defer cancel()

	n, err := h.Staff.RefreshUsers(ctx)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]int{"total": n})
}
