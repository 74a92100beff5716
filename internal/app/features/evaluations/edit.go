// internal/app/features/evaluations/edit.go
package evaluations

import (
	"context"
	"net/http"

	"github.com/dalemusser/staffhub/internal/app/dao"
	uierrors "github.com/dalemusser/staffhub/internal/app/features/errors"
	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/evaluations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	p, err := dao.DecodeEvaluationPatch(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Staff.CreateEvaluation(ctx, p)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, e)
}

// HandleUpdate handles PUT and PATCH /api/evaluations/{id}. A user_id in
// the body is ignored.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	p, err := dao.DecodeEvaluationPatch(body)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Staff.UpdateEvaluation(ctx, chi.URLParam(r, "id"), p)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, e)
}

// HandleDelete handles DELETE /api/evaluations/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	deleted, err := h.Staff.DeleteEvaluation(ctx, id)
	if err != nil {
		uierrors.Render(w, r, h.Log, err)
		return
	}
	if !deleted {
		uierrors.NotFound(w, "evaluation not found")
		return
	}
	h.Log.Info("evaluation removed via api", zap.String("evaluation_id", id))
	uierrors.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
