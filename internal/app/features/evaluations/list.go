// internal/app/features/evaluations/list.go
package evaluations

import (
	"context"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/app/system/paging"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /api/evaluations?user_id=...
//
// user_id (or userId) is required. year filters to one evaluation year;
// page and page_size (or pageSize) select the window.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID := query.Get(r, "user_id")
	if userID == "" {
		userID = query.Get(r, "userId")
	}
	if userID == "" {
		uierrors.BadRequest(w, "user_id is required")
		return
	}

	q := staff.EvaluationQuery{
		UserID:   userID,
		Page:     paging.ParseInt(r, "page", 1),
		PageSize: paging.ParseInt(r, "page_size", paging.ParseInt(r, "pageSize", 0)),
	}
	if s := query.Get(r, "year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			uierrors.BadRequest(w, "year must be an integer")
			return
		}
		q.Year = &year
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Staff.ListEvaluationsByUser(ctx, q)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, page)
}

// ServeEvaluation handles GET /api/evaluations/{id}.
func (h *Handler) ServeEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Staff.FindEvaluationByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, e)
}
