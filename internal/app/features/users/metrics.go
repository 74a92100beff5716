// internal/app/features/users/metrics.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/staffhub/internal/app/dao"
	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleAddMetric handles POST /api/users/{id}/metrics.
//
// Body: { "metric_type": "merit"|"demerit", "comment": "...",
// "commenter": "...", "commenter_email": "..." }. commenter defaults to the
// acting identity.
func (h *Handler) HandleAddMetric(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	in, err := dao.DecodeMetricInput(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "add metric")
	defer cancel()

	m, err := h.Staff.AddMetric(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "metric": m})
}

// ServeMetrics handles GET /api/users/{id}/metrics.
func (h *Handler) ServeMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ms, err := h.Staff.ListMetrics(ctx, chi.URLParam(r, "id"))
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"data": ms})
}
